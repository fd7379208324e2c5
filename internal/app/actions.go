package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/reminder"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui"
	"github.com/nhle/process-planner/internal/ui/command"
	"github.com/nhle/process-planner/internal/ui/detail"
	"github.com/nhle/process-planner/internal/ui/taskform"
)

// taskSavedMsg is sent after a task form submission was applied.
type taskSavedMsg struct {
	task    model.Task
	created bool
	err     error
}

// openDetail shows the task with the given id.
func (m *Model) openDetail(id string) tea.Cmd {
	t, ok := m.ws.Board.Get(id)
	if !ok {
		return status(ui.StatusMsg{Err: fmt.Errorf("task %s: %w", id, model.ErrNotFound)})
	}
	m.detail.SetTask(t)
	m.currentView = ViewDetail
	return nil
}

// startNewTask opens the task form in create mode.
func (m *Model) startNewTask() tea.Cmd {
	m.previousView = ViewPage
	m.currentView = ViewTaskForm
	m.taskForm.SetCategories(m.ws.Board.Categories())
	m.taskForm.SetLocation(m.now().Location())
	return m.taskForm.StartCreate()
}

// startEditTask opens the task form on an existing task.
func (m *Model) startEditTask(id string) tea.Cmd {
	t, ok := m.ws.Board.Get(id)
	if !ok {
		return status(ui.StatusMsg{Err: fmt.Errorf("task %s: %w", id, model.ErrNotFound)})
	}
	m.previousView = m.currentView
	m.currentView = ViewTaskForm
	m.taskForm.SetCategories(m.ws.Board.Categories())
	m.taskForm.SetLocation(m.now().Location())
	return m.taskForm.StartEdit(t)
}

// startNewEvent opens the event form.
func (m *Model) startNewEvent() tea.Cmd {
	m.currentView = ViewEventForm
	m.eventForm.SetRooms(m.ws.Calendar.AvailableRooms())
	return m.eventForm.StartCreate()
}

// closeTaskForm returns to wherever the form was opened from.
func (m *Model) closeTaskForm() {
	if m.previousView == ViewDetail && m.detail.TaskID() != "" {
		m.currentView = ViewDetail
		return
	}
	m.currentView = ViewPage
}

// handleDetailAction runs an action requested from the detail view.
func (m *Model) handleDetailAction(msg detail.ActionMsg) tea.Cmd {
	switch msg.Action {
	case detail.ActionAdvance:
		t, err := m.ws.Board.Advance(msg.TaskID)
		if err != nil {
			return status(ui.StatusMsg{Err: err})
		}
		m.detail.SetTask(t)
		return status(ui.StatusMsg{Text: fmt.Sprintf("%q moved to %s", t.Title, t.Status.Label())})

	case detail.ActionEdit:
		return m.startEditTask(msg.TaskID)

	case detail.ActionDelete:
		t, _ := m.ws.Board.Get(msg.TaskID)
		m.ws.Board.Delete(msg.TaskID)
		m.detail.Clear()
		m.currentView = ViewPage
		return status(ui.StatusMsg{Text: fmt.Sprintf("Deleted %q", t.Title)})
	}
	return nil
}

// saveTask applies a task form submission: create when no id is set,
// otherwise update.
func (m *Model) saveTask(msg taskform.SubmittedMsg) tea.Cmd {
	var res taskSavedMsg
	if msg.ID == "" {
		res.task, res.err = m.ws.Board.Create(msg.Input)
		res.created = true
	} else {
		res.task, res.err = m.ws.Board.Update(msg.ID, msg.Input.Patch())
	}
	return func() tea.Msg { return res }
}

func (m *Model) handleTaskSaved(msg taskSavedMsg) tea.Cmd {
	m.closeTaskForm()
	if msg.err != nil {
		return status(ui.StatusMsg{Err: msg.err})
	}
	if m.currentView == ViewDetail && m.detail.TaskID() == msg.task.ID {
		m.detail.SetTask(msg.task)
	}
	verb := "Updated"
	if msg.created {
		verb = "Created"
	}
	return status(ui.StatusMsg{Text: fmt.Sprintf("%s %q", verb, msg.task.Title)})
}

// createEvent schedules an event from the event form.
func (m *Model) createEvent(in planner.EventInput) tea.Cmd {
	e, err := m.ws.Calendar.Create(in)
	if err != nil {
		return status(ui.StatusMsg{Err: err})
	}
	return status(ui.StatusMsg{Text: fmt.Sprintf("Scheduled %q for %s", e.Title, e.Start.Format(m.cfg.Display.DateFormat))})
}

// handlePosted reacts to a chat message. A mention of the current user
// already landed in the inbox; surface it.
func (m *Model) handlePosted(res planner.PostResult) tea.Cmd {
	m.log.Debug().
		Str("author", res.Message.Author.Name).
		Strs("mentions", res.Message.Mentions).
		Msg("chat message posted")
	if res.Notification == nil {
		return m.reloadPages()
	}
	return tea.Batch(
		m.reloadPages(),
		status(ui.StatusMsg{Text: fmt.Sprintf("%s mentioned you", res.Message.Author.Name)}),
	)
}

// remindDeadlines runs the deadline sweep for a reminder tick.
func (m *Model) remindDeadlines(at time.Time) tea.Cmd {
	if !m.cfg.Notifications.DeadlineReminders {
		return nil
	}
	window := time.Duration(m.cfg.Notifications.DueSoonHours) * time.Hour
	pushed, err := m.ws.Inbox.RemindDeadlines(m.ws.Board.All(), at, window)
	if err != nil {
		m.log.Error().Err(err).Msg("deadline sweep failed")
		return status(ui.StatusMsg{Err: err})
	}
	if len(pushed) == 0 {
		return nil
	}
	m.log.Info().Int("reminders", len(pushed)).Msg("deadline reminders raised")
	return status(ui.StatusMsg{Text: fmt.Sprintf("%d new deadline reminder(s)", len(pushed))})
}

// applySettings makes saved settings take effect.
func (m *Model) applySettings(cfg *model.AppConfig) tea.Cmd {
	old := m.cfg
	m.cfg = cfg
	m.ws.Chat.SetMentionAlerts(cfg.Notifications.Mentions)
	theme.Use(cfg.Display.Theme)

	var cmds []tea.Cmd
	if cfg.Display.DateFormat != old.Display.DateFormat {
		m.buildDateViews(m.layout.ContentWidth(), m.layout.ContentHeight())
		cmds = append(cmds, m.reloadPages())
	}
	if cfg.Notifications.ReminderIntervalSec != old.Notifications.ReminderIntervalSec {
		m.scheduler.Stop()
		m.scheduler = reminder.New(reminderInterval(cfg), m.now)
		cmds = append(cmds, m.scheduler.Start())
	}

	m.log.Info().
		Str("theme", cfg.Display.Theme).
		Bool("mentions", cfg.Notifications.Mentions).
		Bool("deadline_reminders", cfg.Notifications.DeadlineReminders).
		Msg("settings applied")
	return tea.Batch(cmds...)
}

// executeCommand runs a command palette entry.
func (m *Model) executeCommand(msg command.CommandMsg) tea.Cmd {
	if !msg.Known {
		return status(ui.StatusMsg{Err: fmt.Errorf("unknown command %q", msg.Name)})
	}

	switch msg.Name {
	case command.CmdDashboard, command.CmdTasks, command.CmdNotifications, command.CmdCalendar, command.CmdChat:
		return m.switchPage(pageIndex(msg.Name))
	case command.CmdNewTask:
		return m.startNewTask()
	case command.CmdNewEvent:
		return m.startNewEvent()
	case command.CmdMarkAllRead:
		n := m.ws.Inbox.MarkAllRead()
		return status(ui.StatusMsg{Text: fmt.Sprintf("Marked %d notifications read", n)})
	case command.CmdRemind:
		m.scheduler.Trigger()
		return nil
	case command.CmdSettings:
		m.previousView = ViewPage
		m.currentView = ViewSettings
		return nil
	case command.CmdHelp:
		m.previousView = ViewPage
		m.currentView = ViewHelp
		return nil
	case command.CmdQuit:
		return m.quit()
	}
	return nil
}

func status(s ui.StatusMsg) tea.Cmd {
	return func() tea.Msg { return s }
}
