package inbox

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/theme"
)

// NotificationItem wraps a model.Notification for the list.
type NotificationItem struct {
	Notification model.Notification
}

// FilterValue implements list.Item.
func (i NotificationItem) FilterValue() string { return i.Notification.Content }

// ItemDelegate renders one notification per line.
type ItemDelegate struct {
	now func() time.Time
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws a notification line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(NotificationItem)
	if !ok {
		return
	}
	n := it.Notification

	marker := " "
	if !n.Read {
		marker = theme.UnreadBadgeStyle.Render("•")
	}
	typ := theme.NotificationStyle(n.Type).Render(fmt.Sprintf("%-8s", n.Type))
	when := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(planner.RelativeTime(n.Time, d.now()))

	content := n.Content
	if n.Read {
		content = theme.DimmedStyle.Render(content)
	}

	line := fmt.Sprintf("%s %s %s  %s", marker, typ, content, when)
	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

func summaryLine(s planner.NotificationSummary) string {
	return theme.DimmedStyle.Render(fmt.Sprintf(
		"%d notifications | %d unread | %d mentions | %d deadlines | %d updates",
		s.Total, s.Unread,
		s.ByType.Get(string(model.NotificationMention)),
		s.ByType.Get(string(model.NotificationDeadline)),
		s.ByType.Get(string(model.NotificationUpdate)),
	))
}
