package inbox

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui"
)

// NotificationsLoadedMsg carries the filtered notifications.
type NotificationsLoadedMsg struct {
	Notifications []model.Notification
	Summary       planner.NotificationSummary
}

// ChangedMsg is sent after the inbox was mutated so the app can refresh
// the unread counter.
type ChangedMsg struct{}

// Model is the notifications page.
type Model struct {
	list        list.Model
	inbox       *planner.Inbox
	keys        *keys.KeyMap
	filter      string
	search      string
	summary     planner.NotificationSummary
	searchMode  bool
	searchInput textinput.Model

	confirm      *huh.Form
	confirmValue *bool

	width  int
	height int
}

// New creates the notifications page.
func New(in *planner.Inbox, k *keys.KeyMap, now func() time.Time, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{now: now}, width, height-3)
	l.Title = "Notifications"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search notifications..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		inbox:       in,
		keys:        k,
		filter:      planner.FilterAll,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init loads the notifications.
func (m Model) Init() tea.Cmd {
	return m.Load()
}

// Filter returns the active page filter name.
func (m Model) Filter() string { return m.filter }

// Confirming reports whether the delete-all confirmation is open.
func (m Model) Confirming() bool { return m.confirm != nil }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searchMode }

// Update handles messages for the notifications page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}

	switch msg := msg.(type) {
	case NotificationsLoadedMsg:
		m.summary = msg.Summary
		items := make([]list.Item, len(msg.Notifications))
		for i, n := range msg.Notifications {
			items[i] = NotificationItem{Notification: n}
		}
		idx := m.list.Index()
		cmd := m.list.SetItems(items)
		if idx < len(items) {
			m.list.Select(idx)
		}
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.search = strings.TrimSpace(m.searchInput.Value())
		return m, m.Load()
	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.search = ""
		return m, m.Load()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.search)
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleStatus):
		m.filter = ui.Cycle(planner.InboxFilters, m.filter)
		return m, m.Load()

	case key.Matches(msg, m.keys.ClearFilters):
		m.filter = planner.FilterAll
		m.search = ""
		m.searchInput.Reset()
		return m, m.Load()

	case key.Matches(msg, m.keys.MarkRead), key.Matches(msg, m.keys.Select):
		n, ok := m.selected()
		if !ok || n.Read {
			return m, nil
		}
		if err := m.inbox.MarkRead(n.ID); err != nil {
			return m, status(ui.StatusMsg{Err: err})
		}
		return m, tea.Batch(m.Load(), changed)

	case key.Matches(msg, m.keys.MarkAllRead):
		count := m.inbox.MarkAllRead()
		return m, tea.Batch(
			m.Load(),
			changed,
			status(ui.StatusMsg{Text: fmt.Sprintf("Marked %d notifications read", count)}),
		)

	case key.Matches(msg, m.keys.Delete):
		n, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.inbox.Delete(n.ID)
		return m, tea.Batch(m.Load(), changed)

	case key.Matches(msg, m.keys.DeleteAll):
		if m.inbox.Len() == 0 {
			return m, nil
		}
		m.confirmValue = new(bool)
		m.confirm = m.buildDeleteAllForm()
		cmd := m.confirm.Init()
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// --- Delete-all confirmation ---

func (m *Model) buildDeleteAllForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all %d notifications?", m.inbox.Len())).
				Description("This cannot be undone.").
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(m.confirmValue),
		),
	).WithWidth(ui.FormWidth(m.width))
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Back) {
		m.confirm = nil
		return m, nil
	}

	mdl, cmd := m.confirm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		m.confirm = nil
		if !*m.confirmValue {
			return m, nil
		}
		count := m.inbox.DeleteAll()
		return m, tea.Batch(
			m.Load(),
			changed,
			status(ui.StatusMsg{Text: fmt.Sprintf("Deleted %d notifications", count)}),
		)
	case huh.StateAborted:
		m.confirm = nil
		return m, nil
	}

	return m, cmd
}

func (m Model) selected() (model.Notification, bool) {
	item, ok := m.list.SelectedItem().(NotificationItem)
	if !ok {
		return model.Notification{}, false
	}
	return item.Notification, true
}

// --- View ---

// View renders the notifications page.
func (m Model) View() string {
	if m.confirm != nil {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Width(m.width).
			Render(m.confirm.View())
	}

	header := lipgloss.JoinVertical(lipgloss.Left,
		summaryLine(m.summary),
		m.filterLine(),
	)

	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, header, searchBar, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, m.renderEmptyState())
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

func (m Model) filterLine() string {
	tabs := make([]string, len(planner.InboxFilters))
	for i, f := range planner.InboxFilters {
		if f == m.filter {
			tabs[i] = theme.ActiveTabStyle.Render(f)
		} else {
			tabs[i] = theme.TabStyle.Render(f)
		}
	}
	line := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	if m.search != "" {
		line += theme.HelpStyle.Render(fmt.Sprintf("  search: %q", m.search))
	}
	return line
}

func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height - 3).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.filter != planner.FilterAll || m.search != "" {
		return style.Render("No matching notifications.\nPress 0 to clear filters.")
	}
	return style.Render("You're all caught up.")
}

// Load returns a tea.Cmd that lists the notifications for the current filter.
func (m Model) Load() tea.Cmd {
	crit := planner.InboxFilter(m.filter)
	crit.SearchText = m.search
	msg := NotificationsLoadedMsg{
		Notifications: m.inbox.List(crit),
		Summary:       m.inbox.Summary(),
	}
	return func() tea.Msg { return msg }
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
}

func changed() tea.Msg { return ChangedMsg{} }

func status(s ui.StatusMsg) tea.Cmd {
	return func() tea.Msg { return s }
}
