package chat

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/mention"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui"
)

// PostedMsg is sent after a message was stored.
type PostedMsg struct {
	Result planner.PostResult
}

// BlurMsg tells the parent the input gave up focus.
type BlurMsg struct{}

// Model is the team chat page: the conversation above an input box.
type Model struct {
	chat     *planner.Chat
	members  []model.Person
	known    map[string]bool
	author   int
	input    textarea.Model
	viewport viewport.Model
	now      func() time.Time
	width    int
	height   int
}

// New creates the chat page posting as me. Other members can be picked
// with ctrl+a to simulate their messages.
func New(c *planner.Chat, members []model.Person, me model.Person, now func() time.Time, width, height int) Model {
	ta := textarea.New()
	ta.Placeholder = "Message the team, @handle to mention..."
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetWidth(width - 4)
	ta.SetHeight(2)
	ta.CharLimit = 2000

	vp := viewport.New(width-4, max(height-7, 4))
	vp.Style = lipgloss.NewStyle()

	authors := []model.Person{me}
	known := map[string]bool{strings.ToLower(me.Handle()): true}
	for _, p := range members {
		if p.ID != me.ID {
			authors = append(authors, p)
		}
		known[strings.ToLower(p.Handle())] = true
	}

	m := Model{
		chat:     c,
		members:  authors,
		known:    known,
		input:    ta,
		viewport: vp,
		now:      now,
		width:    width,
		height:   height,
	}
	m.refreshViewport()
	return m
}

// Init returns the initial command for the chat page.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Focused reports whether the input has keyboard focus.
func (m Model) Focused() bool { return m.input.Focused() }

// Focus gives keyboard focus to the input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Author returns the person messages are posted as.
func (m Model) Author() model.Person { return m.members[m.author] }

// Update handles messages for the chat page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(msg)
	}

	var cmds []tea.Cmd

	var taCmd tea.Cmd
	m.input, taCmd = m.input.Update(msg)
	if taCmd != nil {
		cmds = append(cmds, taCmd)
	}

	var vpCmd tea.Cmd
	m.viewport, vpCmd = m.viewport.Update(msg)
	if vpCmd != nil {
		cmds = append(cmds, vpCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.input.Focused() {
		switch msg.String() {
		case "enter", "i":
			cmd := m.input.Focus()
			return m, cmd
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.input.Blur()
		return m, func() tea.Msg { return BlurMsg{} }

	case "ctrl+a":
		m.author = (m.author + 1) % len(m.members)
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		res, err := m.chat.Post(m.Author(), text)
		if err != nil {
			return m, func() tea.Msg { return ui.StatusMsg{Err: err} }
		}
		m.input.Reset()
		m.refreshViewport()
		return m, func() tea.Msg { return PostedMsg{Result: res} }
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// Refresh re-renders the conversation, e.g. after messages were loaded.
func (m *Model) Refresh() {
	m.refreshViewport()
}

// refreshViewport re-renders the conversation content and scrolls to bottom.
func (m *Model) refreshViewport() {
	m.viewport.SetContent(m.renderConversation())
	m.viewport.GotoBottom()
}

// renderConversation builds the conversation display string.
func (m Model) renderConversation() string {
	msgs := m.chat.Messages()
	if len(msgs) == 0 {
		return lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No messages yet. Say hello, or @everyone to reach the whole team.")
	}

	now := m.now()
	authorStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	mentionStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorOrange)
	contentStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	var sections []string
	for _, msg := range msgs {
		header := fmt.Sprintf("%s  %s",
			authorStyle.Render(msg.Author.Name),
			theme.DimmedStyle.Render(planner.RelativeTime(msg.Sent, now)),
		)
		body := mention.Highlight(msg.Text, func(h string) string {
			if m.known[strings.ToLower(strings.TrimPrefix(h, "@"))] || strings.EqualFold(h, "@"+mention.Everyone) {
				return mentionStyle.Render(h)
			}
			return h
		})
		sections = append(sections, header, contentStyle.Render(body))
		if known := mention.Known(msg.Mentions, m.known); len(known) > 0 {
			sections = append(sections, theme.DimmedStyle.Render("mentions: @"+strings.Join(known, ", @")))
		}
		sections = append(sections, "")
	}
	return strings.Join(sections, "\n")
}

// View renders the chat page.
func (m Model) View() string {
	settings := m.chat.Settings()
	alerts := "on"
	if !settings.MentionAlerts {
		alerts = "off"
	}
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		Render("Team Chat")
	info := theme.HelpStyle.Render(fmt.Sprintf(
		"posting as %s (ctrl+a to switch) | you are @%s | mention alerts %s",
		m.Author().Name, settings.Handle, alerts,
	))

	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", max(min(m.width-6, 80), 0)))

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		info,
		m.viewport.View(),
		separator,
		m.input.View(),
	)

	return theme.DetailPanelStyle.
		Width(max(m.width-4, 0)).
		Render(content)
}

// SetSize updates the chat page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.SetWidth(width - 4)
	m.viewport.Width = width - 4
	m.viewport.Height = max(height-7, 4)
	m.refreshViewport()
}
