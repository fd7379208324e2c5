package app

import (
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/ui"
	"github.com/nhle/process-planner/internal/ui/settings"
)

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.header())
	tabs := m.layout.RenderTabs(model.Pages, m.page, map[string]int{model.PageNotifications: m.unreadCount})
	statusBar := m.layout.RenderStatusBar(m.status, m.keyHints())

	return m.layout.Render(header, tabs, m.renderContent(), statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewDetail:
		return m.detail.View()
	case ViewTaskForm:
		return m.taskForm.View()
	case ViewEventForm:
		return m.eventForm.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	}

	switch model.Pages[m.page] {
	case model.PageTasks:
		return m.boardView.View()
	case model.PageNotifications:
		return m.inboxView.View()
	case model.PageCalendar:
		return m.agendaView.View()
	case model.PageChat:
		return m.chatView.View()
	default:
		return m.dashboardView.View()
	}
}

// header reports unread count and the reminder loop.
func (m Model) header() ui.Header {
	h := ui.Header{Handle: m.cfg.User.Handle, Unread: m.unreadCount}
	if m.cfg.Notifications.DeadlineReminders {
		h.Reminders = m.scheduler.Interval()
		h.LastCheck = m.scheduler.LastTick()
	}
	return h
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | tab complete | esc back"
	case ViewDetail:
		return "x advance | e edit | d delete | j/k scroll | esc back"
	case ViewTaskForm, ViewEventForm:
		return "enter next | shift+tab previous | esc cancel"
	case ViewSettings:
		if m.settingsView.Mode() == settings.ModeForm {
			return "enter next | esc cancel"
		}
		return "e edit | esc back"
	}

	switch model.Pages[m.page] {
	case model.PageTasks:
		if m.boardView.Searching() {
			return "enter apply | esc clear"
		}
		return "n new | enter open | x advance | d delete | s/p/g filter | / search | tab page | q quit"
	case model.PageNotifications:
		if m.inboxView.Confirming() {
			return "enter confirm | esc cancel"
		}
		return "m read | M all read | d delete | D delete all | s filter | / search | tab page | q quit"
	case model.PageCalendar:
		return "n new | d cancel | s kind | a past | tab page | q quit"
	case model.PageChat:
		if m.chatView.Focused() {
			return "enter send | ctrl+a author | esc leave | tab page"
		}
		return "i type | j/k scroll | tab page | q quit"
	default:
		return "tab page | 1-5 jump | : command | , settings | ? help | q quit"
	}
}
