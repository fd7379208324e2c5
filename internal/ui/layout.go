package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/theme"
)

// AppTitle is shown at the left of the header.
const AppTitle = "Process Planner"

// Header is what the top bar reports about the session.
type Header struct {
	Handle string
	Unread int

	// Reminders is the sweep interval, zero when deadline reminders are off.
	Reminders time.Duration
	LastCheck time.Time
}

// Title returns the header title with the unread count, if any.
func (h Header) Title() string {
	if h.Unread > 0 {
		return fmt.Sprintf("%s [%d unread]", AppTitle, h.Unread)
	}
	return AppTitle
}

// Session returns the right-hand side of the header.
func (h Header) Session() string {
	parts := []string{"@" + h.Handle}
	if h.Reminders <= 0 {
		parts = append(parts, "reminders off")
	} else {
		parts = append(parts, "reminders every "+h.Reminders.String())
		if !h.LastCheck.IsZero() {
			parts = append(parts, "checked "+h.LastCheck.Format("15:04"))
		}
	}
	return strings.Join(parts, " | ")
}

// Layout splits the terminal into header, page tabs, content and status bar,
// one line each except the content.
type Layout struct {
	Width  int
	Height int
}

const chromeLines = 3

// NewLayout creates a Layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentWidth returns the width available to pages.
func (l Layout) ContentWidth() int { return l.Width }

// ContentHeight returns the lines left for pages once the chrome is drawn.
func (l Layout) ContentHeight() int {
	return max(l.Height-chromeLines, 0)
}

// RenderHeader renders the title on the left and the session on the right.
func (l Layout) RenderHeader(h Header) string {
	title := theme.HeaderStyle.Render(h.Title())
	session := theme.HeaderStyle.Render(h.Session())
	return title + l.fill(theme.HeaderStyle, title, session) + session
}

// RenderTabs renders numbered page tabs. A page with a badge count shows it
// after its name.
func (l Layout) RenderTabs(pages []string, active int, badges map[string]int) string {
	tabs := make([]string, len(pages))
	for i, p := range pages {
		label := fmt.Sprintf("%d %s", i+1, p)
		if n := badges[p]; n > 0 {
			label += " " + theme.UnreadBadgeStyle.Render(fmt.Sprintf("(%d)", n))
		}
		style := theme.TabStyle
		if i == active {
			style = theme.ActiveTabStyle
		}
		tabs[i] = style.Render(label)
	}
	return lipgloss.NewStyle().
		Width(l.Width).
		MaxWidth(l.Width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// RenderStatusBar shows the last action outcome, or hints when there is none.
func (l Layout) RenderStatusBar(st StatusMsg, hints string) string {
	text := hints
	switch {
	case st.Err != nil:
		text = lipgloss.NewStyle().Foreground(theme.ColorRed).Render("Error: " + st.Err.Error())
	case st.Text != "":
		text = st.Text
	}
	bar := theme.StatusBarStyle.Render(text)
	return bar + l.fill(theme.StatusBarStyle, bar)
}

// Render stacks the frame around content clipped to the content height.
func (l Layout) Render(header, tabs, content, statusBar string) string {
	content = lipgloss.NewStyle().
		Height(l.ContentHeight()).
		MaxHeight(l.ContentHeight()).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, tabs, content, statusBar)
}

// fill pads a bar to the full width with the bar's background.
func (l Layout) fill(style lipgloss.Style, used ...string) string {
	gap := l.Width
	for _, s := range used {
		gap -= lipgloss.Width(s)
	}
	if gap <= 0 {
		return ""
	}
	return lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")
}
