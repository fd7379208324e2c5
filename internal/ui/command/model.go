package command

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/theme"
)

// Command names understood by the app.
const (
	CmdDashboard     = "dashboard"
	CmdTasks         = "tasks"
	CmdNotifications = "notifications"
	CmdCalendar      = "calendar"
	CmdChat          = "chat"
	CmdNewTask       = "new-task"
	CmdNewEvent      = "new-event"
	CmdMarkAllRead   = "mark-all-read"
	CmdRemind        = "remind"
	CmdSettings      = "settings"
	CmdHelp          = "help"
	CmdQuit          = "quit"
)

// Command describes a palette entry.
type Command struct {
	Name        string
	Aliases     []string
	Description string
}

// Commands lists every palette command in display order.
var Commands = []Command{
	{Name: CmdDashboard, Aliases: []string{"home"}, Description: "Show the dashboard"},
	{Name: CmdTasks, Aliases: []string{"board"}, Description: "Show the task board"},
	{Name: CmdNotifications, Aliases: []string{"inbox"}, Description: "Show notifications"},
	{Name: CmdCalendar, Aliases: []string{"agenda"}, Description: "Show upcoming events"},
	{Name: CmdChat, Description: "Open team chat"},
	{Name: CmdNewTask, Description: "Create a task"},
	{Name: CmdNewEvent, Description: "Schedule an event"},
	{Name: CmdMarkAllRead, Description: "Mark every notification read"},
	{Name: CmdRemind, Description: "Check deadlines now"},
	{Name: CmdSettings, Aliases: []string{"config"}, Description: "Edit settings"},
	{Name: CmdHelp, Description: "Show keyboard shortcuts"},
	{Name: CmdQuit, Aliases: []string{"q", "exit"}, Description: "Quit"},
}

// CommandMsg is emitted when the user executes a command. Name is the
// canonical command name, or the raw input when nothing matched.
type CommandMsg struct {
	Name  string
	Args  []string
	Known bool
}

// Parse resolves input to a command. A unique prefix selects a command.
func Parse(input string) CommandMsg {
	fields := strings.Fields(strings.ToLower(input))
	if len(fields) == 0 {
		return CommandMsg{}
	}
	word, args := fields[0], fields[1:]

	for _, c := range Commands {
		if c.Name == word {
			return CommandMsg{Name: c.Name, Args: args, Known: true}
		}
		for _, a := range c.Aliases {
			if a == word {
				return CommandMsg{Name: c.Name, Args: args, Known: true}
			}
		}
	}

	if matches := Complete(word); len(matches) == 1 {
		return CommandMsg{Name: matches[0], Args: args, Known: true}
	}
	return CommandMsg{Name: word, Args: args}
}

// Complete returns the command names starting with prefix, sorted.
func Complete(prefix string) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	var out []string
	for _, c := range Commands {
		if strings.HasPrefix(c.Name, prefix) {
			out = append(out, c.Name)
		}
	}
	sort.Strings(out)
	return out
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			parsed := Parse(m.input.Value())
			m.input.Reset()
			if parsed.Name != "" {
				return m, func() tea.Msg { return parsed }
			}
			return m, nil
		case "tab":
			if matches := Complete(m.input.Value()); len(matches) == 1 {
				m.input.SetValue(matches[0])
				m.input.CursorEnd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Value returns the text typed so far.
func (m Model) Value() string { return m.input.Value() }

// Reset clears the input.
func (m *Model) Reset() { m.input.Reset() }

// View renders the command palette.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Command Palette")
	input := m.input.View()

	lines := []string{title, input, ""}
	nameStyle := lipgloss.NewStyle().Foreground(theme.ColorBlue).Width(16)
	for _, name := range Complete(firstWord(m.input.Value())) {
		lines = append(lines, nameStyle.Render(name)+theme.DimmedStyle.Render(describe(name)))
	}

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func describe(name string) string {
	for _, c := range Commands {
		if c.Name == name {
			return c.Description
		}
	}
	return ""
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return ""
}
