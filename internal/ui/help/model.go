package help

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui/command"
)

// section is one titled row of bindings.
type section struct {
	title    string
	bindings []key.Binding
}

// Model is the help overlay. It lists keys page by page, then the
// command palette entries.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates the help overlay.
func New(k *keys.KeyMap, width, height int) Model {
	m := Model{keys: k, help: help.New()}
	m.SetSize(width, height)
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd { return nil }

// Update is a no-op; the app closes the overlay.
func (m Model) Update(tea.Msg) (Model, tea.Cmd) { return m, nil }

func (m Model) sections() []section {
	k := m.keys
	return []section{
		{"Everywhere", []key.Binding{k.NextTab, k.PrevTab, k.Command, k.Settings, k.Help, k.Quit}},
		{"Tasks", []key.Binding{k.New, k.Select, k.Advance, k.Delete, k.CycleStatus, k.CyclePriority, k.CycleCategory, k.ClearFilters, k.Search}},
		{"Task detail", []key.Binding{k.Advance, k.Edit, k.Delete, k.Up, k.Down, k.Back}},
		{"Notifications", []key.Binding{k.MarkRead, k.MarkAllRead, k.Delete, k.DeleteAll, k.CycleStatus, k.Search}},
		{"Calendar", []key.Binding{k.New, k.Delete, k.CycleStatus, k.TogglePast}},
	}
}

// View renders the overlay.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render("Help"))
	b.WriteString("\n\n")

	for _, s := range m.sections() {
		b.WriteString(theme.SectionStyle.Render(s.title) + "\n")
		b.WriteString(m.help.FullHelpView(slices.Collect(slices.Chunk(s.bindings, 3))) + "\n\n")
	}
	b.WriteString(theme.SectionStyle.Render("Chat") + "\n")
	b.WriteString(theme.HelpStyle.Render("i type | enter send | ctrl+a switch author | esc leave") + "\n\n")

	b.WriteString(theme.SectionStyle.Render("Commands (press :)") + "\n")
	b.WriteString(commandList())

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(b.String())
}

func commandList() string {
	names := make([]string, len(command.Commands))
	width := 0
	for i, c := range command.Commands {
		names[i] = c.Name
		if len(c.Aliases) > 0 {
			names[i] += " (" + strings.Join(c.Aliases, ", ") + ")"
		}
		width = max(width, len(names[i]))
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(width + 2)
	var b strings.Builder
	for i, c := range command.Commands {
		b.WriteString(nameStyle.Render(names[i]) + theme.DimmedStyle.Render(c.Description) + "\n")
	}
	return b.String()
}

// SetSize updates the overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
