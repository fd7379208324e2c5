package planner

import (
	"fmt"

	"github.com/nhle/process-planner/internal/fixture"
	"github.com/nhle/process-planner/internal/model"
)

// Workspace wires every service over one seed.
type Workspace struct {
	Env       Env
	Members   []model.Person
	Me        model.Person
	Board     *Board
	Inbox     *Inbox
	Calendar  *Calendar
	Chat      *Chat
	Dashboard *Dashboard
}

// NewWorkspace builds the services from cfg and loads seed into them.
func NewWorkspace(env Env, cfg *model.AppConfig, seed *fixture.Seed) (*Workspace, error) {
	env = env.withDefaults()
	if seed == nil {
		seed = &fixture.Seed{}
	}

	ws := &Workspace{
		Env:     env,
		Members: seed.Members,
		Me:      model.Person{ID: cfg.User.ID, Name: cfg.User.Handle},
	}
	if p, ok := seed.Member(cfg.User.ID); ok {
		ws.Me = p
	}

	ws.Board = NewBoard(env, cfg.Categories)
	ws.Inbox = NewInbox(env)
	ws.Calendar = NewCalendar(env, seed.Rooms)
	ws.Chat = NewChat(env, ws.Inbox, ChatSettings{
		Handle:        cfg.User.Handle,
		MentionAlerts: cfg.Notifications.Mentions,
	})
	ws.Dashboard = NewDashboard(seed.Members, ws.Board, ws.Inbox, ws.Calendar)

	if err := ws.Board.Load(seed.Tasks); err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	if err := ws.Inbox.Load(seed.Notifications); err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	if err := ws.Calendar.Load(seed.Events); err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}
	if err := ws.Chat.Load(seed.Messages); err != nil {
		return nil, fmt.Errorf("workspace: %w", err)
	}

	env.Log.Info().
		Int("tasks", ws.Board.Len()).
		Int("notifications", ws.Inbox.Len()).
		Int("events", ws.Calendar.Len()).
		Msg("workspace loaded")
	return ws, nil
}

// Member returns the team member with the given id.
func (w *Workspace) Member(id int) (model.Person, bool) {
	for _, m := range w.Members {
		if m.ID == id {
			return m, true
		}
	}
	return model.Person{}, false
}
