package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/process-planner/internal/model"
)

// capturingInput reports whether the active page owns the keyboard, such
// as a search box or the chat input.
func (m Model) capturingInput() bool {
	switch model.Pages[m.page] {
	case model.PageTasks:
		return m.boardView.Searching()
	case model.PageNotifications:
		return m.inboxView.Searching() || m.inboxView.Confirming()
	case model.PageChat:
		return m.chatView.Focused()
	}
	return false
}

// handleGlobalKeys processes keys that work across views. It reports
// whether the key was consumed.
func (m Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m, m.quit()
	}
	switch m.currentView {
	case ViewTaskForm, ViewEventForm, ViewSettings:
		return false, m, nil

	case ViewCommand:
		if key.Matches(msg, m.keys.Back) {
			m.commandView.Reset()
			m.currentView = m.previousView
			return true, m, nil
		}
		return false, m, nil

	case ViewHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Back, m.keys.Quit) {
			m.currentView = m.previousView
			return true, m, nil
		}
		return true, m, nil

	case ViewDetail:
		return m.handleOverlayKeys(msg)
	}

	if m.capturingInput() {
		// Tab still leaves the chat so the input never traps the user.
		if model.Pages[m.page] == model.PageChat && key.Matches(msg, m.keys.NextTab, m.keys.PrevTab) {
			return m.handlePageKeys(msg)
		}
		return false, m, nil
	}

	if key.Matches(msg, m.keys.Quit) {
		return true, m, m.quit()
	}
	if handled, next, cmd := m.handlePageKeys(msg); handled {
		return true, next, cmd
	}
	return m.handleOverlayKeys(msg)
}

// handlePageKeys switches pages.
func (m Model) handlePageKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.NextTab):
		cmd := m.switchPage(m.page + 1)
		return true, m, cmd
	case key.Matches(msg, m.keys.PrevTab):
		cmd := m.switchPage(m.page - 1)
		return true, m, cmd
	}

	switch s := msg.String(); s {
	case "1", "2", "3", "4", "5":
		cmd := m.switchPage(int(s[0] - '1'))
		return true, m, cmd
	}
	return false, m, nil
}

// handleOverlayKeys opens help, the command palette or settings.
func (m Model) handleOverlayKeys(msg tea.KeyMsg) (bool, tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return true, m, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		cmd := m.commandView.Focus()
		return true, m, cmd

	case key.Matches(msg, m.keys.Settings):
		m.previousView = m.currentView
		m.currentView = ViewSettings
		return true, m, nil
	}
	return false, m, nil
}

// quit stops the reminder loop and exits.
func (m Model) quit() tea.Cmd {
	m.scheduler.Stop()
	m.log.Info().Msg("shutting down")
	return tea.Quit
}
