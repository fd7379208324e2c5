package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/query"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui"
)

// TasksLoadedMsg carries the board columns for the current filter.
type TasksLoadedMsg struct {
	Columns query.Buckets[model.Task]
	Summary planner.TaskSummary
}

// SelectedTaskMsg is sent when a user selects a task to view details.
type SelectedTaskMsg struct {
	TaskID string
}

// NewTaskMsg asks the app to open the task form.
type NewTaskMsg struct{}

// Model is the task board view: tasks grouped into status columns.
type Model struct {
	list        list.Model
	board       *planner.Board
	keys        *keys.KeyMap
	now         func() time.Time
	criteria    query.Criteria
	summary     planner.TaskSummary
	searchMode  bool
	searchInput textinput.Model
	width       int
	height      int
}

// New creates a new board view.
func New(b *planner.Board, k *keys.KeyMap, now func() time.Time, dateFormat string, width, height int) Model {
	delegate := ItemDelegate{now: now, dateFormat: dateFormat}
	l := list.New([]list.Item{}, delegate, width, height-3)
	l.Title = "Tasks"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search title or description..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:        l,
		board:       b,
		keys:        k,
		now:         now,
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the board.
func (m Model) Init() tea.Cmd {
	return m.LoadTasks()
}

// Criteria returns the active filter.
func (m Model) Criteria() query.Criteria { return m.criteria }

// Searching reports whether the search input has focus.
func (m Model) Searching() bool { return m.searchMode }

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksLoadedMsg:
		m.summary = msg.Summary
		idx := m.list.Index()
		cmd := m.list.SetItems(columnItems(msg.Columns))
		if idx < len(m.list.Items()) {
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

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		m.criteria.SearchText = strings.TrimSpace(m.searchInput.Value())
		return m, m.LoadTasks()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.criteria.SearchText = ""
		return m, m.LoadTasks()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedTaskMsg{TaskID: task.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.SetValue(m.criteria.SearchText)
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.CycleStatus):
		m.criteria.Status = ui.Cycle(append([]string{""}, model.StatusKeys()...), m.criteria.Status)
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.CyclePriority):
		m.criteria.Priority = ui.Cycle(priorityOptions(), m.criteria.Priority)
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.CycleCategory):
		m.criteria.Category = ui.Cycle(append([]string{""}, m.board.Categories()...), m.criteria.Category)
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.ClearFilters):
		m.criteria = query.Criteria{}
		m.searchInput.Reset()
		return m, m.LoadTasks()

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewTaskMsg{} }

	case key.Matches(msg, m.keys.Advance):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		return m, tea.Batch(m.advance(task.ID), m.LoadTasks())

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.SelectedTask()
		if !ok {
			return m, nil
		}
		m.board.Delete(task.ID)
		return m, tea.Batch(
			m.LoadTasks(),
			func() tea.Msg {
				return ui.StatusMsg{Text: fmt.Sprintf("Deleted %q", task.Title)}
			},
		)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) advance(id string) tea.Cmd {
	t, err := m.board.Advance(id)
	return func() tea.Msg {
		if err != nil {
			return ui.StatusMsg{Err: err}
		}
		return ui.StatusMsg{Text: fmt.Sprintf("%q moved to %s", t.Title, t.Status.Label())}
	}
}

// SelectedTask returns the task under the cursor, if any.
func (m Model) SelectedTask() (model.Task, bool) {
	item, ok := m.list.SelectedItem().(TaskItem)
	if !ok {
		return model.Task{}, false
	}
	return item.Task, true
}

// View renders the board view.
func (m Model) View() string {
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

	if m.summary.Total == 0 && m.criteria.IsZero() {
		return m.renderEmptyState()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

func (m Model) filterLine() string {
	line := fmt.Sprintf("status: %s  priority: %s  category: %s",
		ui.FilterLabel(m.criteria.Status),
		ui.FilterLabel(m.criteria.Priority),
		ui.FilterLabel(m.criteria.Category),
	)
	if m.criteria.SearchText != "" {
		line += fmt.Sprintf("  search: %q", m.criteria.SearchText)
	}
	return theme.HelpStyle.Render(line)
}

// renderEmptyState shows guidance text when the board is empty.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	return style.Render("No tasks yet.\n\nPress n to create one.")
}

// LoadTasks returns a tea.Cmd delivering the filtered tasks grouped into
// columns. The board is read before returning since services are only
// touched from the update loop.
func (m Model) LoadTasks() tea.Cmd {
	msg := TasksLoadedMsg{
		Columns: m.board.Columns(m.criteria),
		Summary: m.board.Summary(),
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

func priorityOptions() []string {
	opts := []string{""}
	for _, p := range model.Priorities {
		opts = append(opts, string(p))
	}
	return opts
}
