package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/reminder"
	"github.com/nhle/process-planner/internal/ui"
	"github.com/nhle/process-planner/internal/ui/agenda"
	"github.com/nhle/process-planner/internal/ui/board"
	"github.com/nhle/process-planner/internal/ui/chat"
	"github.com/nhle/process-planner/internal/ui/command"
	"github.com/nhle/process-planner/internal/ui/dashboard"
	"github.com/nhle/process-planner/internal/ui/detail"
	"github.com/nhle/process-planner/internal/ui/eventform"
	helpview "github.com/nhle/process-planner/internal/ui/help"
	"github.com/nhle/process-planner/internal/ui/inbox"
	"github.com/nhle/process-planner/internal/ui/settings"
	"github.com/nhle/process-planner/internal/ui/taskform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewPage ViewState = iota
	ViewDetail
	ViewTaskForm
	ViewEventForm
	ViewSettings
	ViewHelp
	ViewCommand
)

// Options configures the root model.
type Options struct {
	Workspace  *planner.Workspace
	Config     *model.AppConfig
	ConfigPath string
	Log        zerolog.Logger
}

// Model is the root Bubble Tea model that manages page routing, overlays
// and the deadline reminder loop.
type Model struct {
	currentView  ViewState
	previousView ViewState
	page         int
	layout       ui.Layout
	ws           *planner.Workspace
	cfg          *model.AppConfig
	cfgPath      string
	log          zerolog.Logger
	keys         *keys.KeyMap
	now          func() time.Time
	scheduler    *reminder.Scheduler

	dashboardView dashboard.Model
	boardView     board.Model
	inboxView     inbox.Model
	agendaView    agenda.Model
	chatView      chat.Model
	detail        detail.Model
	taskForm      taskform.Model
	eventForm     eventform.Model
	settingsView  settings.Model
	helpView      helpview.Model
	commandView   command.Model

	ready       bool
	unreadCount int
	status      ui.StatusMsg
}

// New creates the root application model.
func New(opts Options) Model {
	ws := opts.Workspace
	cfg := opts.Config
	k := keys.DefaultKeyMap()
	now := ws.Env.Now
	w, h := 80, 24

	m := Model{
		currentView: ViewPage,
		page:        pageIndex(cfg.Display.Page),
		layout:      ui.NewLayout(w, h),
		ws:          ws,
		cfg:         cfg,
		cfgPath:     opts.ConfigPath,
		log:         opts.Log,
		keys:        k,
		now:         now,
		scheduler:   reminder.New(reminderInterval(cfg), now),

		inboxView:    inbox.New(ws.Inbox, k, now, w, h),
		chatView:     chat.New(ws.Chat, ws.Members, ws.Me, now, w, h),
		eventForm:    eventform.New(ws.Members, now, w, h),
		taskForm:     taskform.New(ws.Members, w, h),
		settingsView: settings.New(cfg, opts.ConfigPath, k, w, h),
		helpView:     helpview.New(k, w, h),
		commandView:  command.New(w, h),
		unreadCount:  ws.Inbox.Summary().Unread,
	}
	m.buildDateViews(w, h)
	m.eventForm.SetRooms(ws.Calendar.AvailableRooms())
	return m
}

// buildDateViews (re)creates the views that render dates with the
// configured format.
func (m *Model) buildDateViews(w, h int) {
	df := m.cfg.Display.DateFormat
	m.dashboardView = dashboard.New(m.ws.Dashboard, m.ws.Calendar, m.now, df, w, h)
	m.boardView = board.New(m.ws.Board, m.keys, m.now, df, w, h)
	m.agendaView = agenda.New(m.ws.Calendar, m.keys, m.now, df, w, h)
	m.detail = detail.New(m.keys, m.now, df, w, h)
}

// Init loads every page and starts the reminder loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.reloadPages(),
		m.chatView.Init(),
		m.scheduler.Start(),
	)
}

// Shutdown stops background work. It is safe to call more than once.
func (m Model) Shutdown() {
	m.scheduler.Stop()
}

// Page returns the name of the active page.
func (m Model) Page() string { return model.Pages[m.page] }

// CurrentView returns the active view.
func (m Model) CurrentView() ViewState { return m.currentView }

// Status returns the last status message.
func (m Model) Status() ui.StatusMsg { return m.status }

// UnreadCount returns the unread notification count shown in the header.
func (m Model) UnreadCount() int { return m.unreadCount }

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case ui.StatusMsg:
		m.setStatus(msg)
		return m, m.reloadPages()

	case reminder.TickMsg:
		if !m.scheduler.Owns(msg) {
			m.log.Debug().Time("at", msg.At).Msg("stale reminder tick dropped")
			return m, nil
		}
		cmd := m.remindDeadlines(msg.At)
		return m, tea.Batch(cmd, m.scheduler.WaitForNextTick())

	// Loaded data goes to its page whatever is on screen.
	case board.TasksLoadedMsg:
		var cmd tea.Cmd
		m.boardView, cmd = m.boardView.Update(msg)
		return m, cmd

	case inbox.NotificationsLoadedMsg:
		m.unreadCount = msg.Summary.Unread
		var cmd tea.Cmd
		m.inboxView, cmd = m.inboxView.Update(msg)
		return m, cmd

	case agenda.EventsLoadedMsg:
		var cmd tea.Cmd
		m.agendaView, cmd = m.agendaView.Update(msg)
		return m, cmd

	case dashboard.SnapshotMsg:
		var cmd tea.Cmd
		m.dashboardView, cmd = m.dashboardView.Update(msg)
		return m, cmd

	case inbox.ChangedMsg:
		return m, m.reloadPages()

	case chat.PostedMsg:
		cmd := m.handlePosted(msg.Result)
		return m, cmd

	case chat.BlurMsg:
		return m, nil

	case board.SelectedTaskMsg:
		cmd := m.openDetail(msg.TaskID)
		return m, cmd

	case board.NewTaskMsg:
		cmd := m.startNewTask()
		return m, cmd

	case agenda.NewEventMsg:
		cmd := m.startNewEvent()
		return m, cmd

	case detail.BackMsg:
		m.detail.Clear()
		m.currentView = ViewPage
		return m, nil

	case detail.ActionMsg:
		cmd := m.handleDetailAction(msg)
		return m, cmd

	case taskform.SubmittedMsg:
		cmd := m.saveTask(msg)
		return m, cmd

	case taskform.CancelMsg:
		m.closeTaskForm()
		return m, nil

	case taskSavedMsg:
		cmd := m.handleTaskSaved(msg)
		return m, cmd

	case eventform.SubmittedMsg:
		m.currentView = ViewPage
		cmd := m.createEvent(msg.Input)
		return m, cmd

	case eventform.CancelMsg:
		m.currentView = ViewPage
		return m, nil

	case settings.SavedMsg:
		cmd := m.applySettings(msg.Config)
		return m, cmd

	case settings.DoneMsg:
		m.currentView = m.previousView
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(msg)
		return m, cmd

	case tea.KeyMsg:
		// Any key dismisses the last status message.
		m.status = ui.StatusMsg{}
		if handled, next, cmd := m.handleGlobalKeys(msg); handled {
			return next, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewPage:
		return m.updatePage(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewTaskForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	case ViewEventForm:
		m.eventForm, cmd = m.eventForm.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	}

	return m, cmd
}

// updatePage dispatches the message to the active page.
func (m Model) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch model.Pages[m.page] {
	case model.PageDashboard:
		m.dashboardView, cmd = m.dashboardView.Update(msg)
	case model.PageTasks:
		m.boardView, cmd = m.boardView.Update(msg)
	case model.PageNotifications:
		m.inboxView, cmd = m.inboxView.Update(msg)
	case model.PageCalendar:
		m.agendaView, cmd = m.agendaView.Update(msg)
	case model.PageChat:
		m.chatView, cmd = m.chatView.Update(msg)
	}

	return m, cmd
}

// reloadPages refreshes every page from the services.
func (m Model) reloadPages() tea.Cmd {
	return tea.Batch(
		m.boardView.LoadTasks(),
		m.inboxView.Load(),
		m.agendaView.Load(),
		m.dashboardView.Refresh(),
	)
}

// resize propagates the content area size to every view.
func (m *Model) resize() {
	w := m.layout.ContentWidth()
	h := m.layout.ContentHeight()
	m.dashboardView.SetSize(w, h)
	m.boardView.SetSize(w, h)
	m.inboxView.SetSize(w, h)
	m.agendaView.SetSize(w, h)
	m.chatView.SetSize(w, h)
	m.detail.SetSize(w, h)
	m.taskForm.SetSize(w, h)
	m.eventForm.SetSize(w, h)
	m.settingsView.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
}

// switchPage activates the page at index i, wrapping around.
func (m *Model) switchPage(i int) tea.Cmd {
	n := len(model.Pages)
	m.page = ((i % n) + n) % n
	m.currentView = ViewPage
	if model.Pages[m.page] == model.PageDashboard {
		return m.dashboardView.Refresh()
	}
	return nil
}

func (m *Model) setStatus(s ui.StatusMsg) {
	m.status = s
	if s.Err != nil {
		m.log.Warn().Err(s.Err).Msg("action failed")
		return
	}
	if s.Text != "" {
		m.log.Debug().Str("status", s.Text).Msg("action")
	}
}

func pageIndex(name string) int {
	for i, p := range model.Pages {
		if p == name {
			return i
		}
	}
	return 0
}

func reminderInterval(cfg *model.AppConfig) time.Duration {
	return time.Duration(cfg.Notifications.ReminderIntervalSec) * time.Second
}
