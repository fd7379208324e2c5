package board

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/query"
	"github.com/nhle/process-planner/internal/theme"
)

// ColumnItem is the header row of one status column.
type ColumnItem struct {
	Status model.Status
	Count  int
}

// FilterValue implements list.Item.
func (c ColumnItem) FilterValue() string { return "" }

// TaskItem wraps a model.Task so it can be used in a bubbles/list.
type TaskItem struct {
	Task model.Task
}

// FilterValue returns the string used for fuzzy filtering.
func (i TaskItem) FilterValue() string { return i.Task.Title }

// Title returns the task title for the list.
func (i TaskItem) Title() string { return i.Task.Title }

// Description returns a short summary line for the list.
func (i TaskItem) Description() string {
	parts := []string{
		i.Task.Category,
		string(i.Task.Priority),
		fmt.Sprintf("%d%%", i.Task.Progress),
	}
	return strings.Join(parts, " | ")
}

// ItemDelegate implements list.ItemDelegate for rendering board rows.
type ItemDelegate struct {
	now        func() time.Time
	dateFormat string
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single list row.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	switch it := item.(type) {
	case ColumnItem:
		d.renderColumn(w, it)
	case TaskItem:
		d.renderTask(w, it.Task, index == m.Index())
	}
}

func (d ItemDelegate) renderColumn(w io.Writer, c ColumnItem) {
	label := theme.StatusStyle(c.Status).Render(c.Status.Label())
	count := theme.DimmedStyle.Render(fmt.Sprintf("(%d)", c.Count))
	fmt.Fprint(w, label+" "+count)
}

func (d ItemDelegate) renderTask(w io.Writer, t model.Task, isSelected bool) {
	now := d.now()

	var prefix string
	if t.IsCompleted() {
		prefix = "✓"
	} else {
		prefix = "○"
	}

	priBadge := theme.PriorityStyle(t.Priority).Render(priorityLabel(t.Priority))
	category := lipgloss.NewStyle().
		Foreground(theme.ColorMagenta).
		Render(t.Category)

	due := " " + t.DueDate.Format(d.dateFormat)
	if t.IsOverdue(now) {
		due = theme.OverdueStyle.Render(due + " OVERDUE")
	} else {
		due = theme.DueDateStyle.Render(due)
	}

	progress := theme.DimmedStyle.Render(fmt.Sprintf(" %3d%%", t.Progress))

	assignees := ""
	if len(t.Assignees) > 0 {
		initials := make([]string, len(t.Assignees))
		for i, a := range t.Assignees {
			initials[i] = a.Avatar
		}
		assignees = theme.DimmedStyle.Render(" [" + strings.Join(initials, ",") + "]")
	}

	line := fmt.Sprintf(
		"%s %s %s %s%s%s%s",
		prefix, priBadge, t.Title, category, due, progress, assignees,
	)

	if t.IsCompleted() {
		line = theme.DimmedStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

// priorityLabel returns a short label for the given priority.
func priorityLabel(p model.Priority) string {
	switch p {
	case model.PriorityHigh:
		return "HI"
	case model.PriorityMedium:
		return "MD"
	case model.PriorityLow:
		return "LO"
	default:
		return "??"
	}
}

// columnItems flattens the status buckets into list rows: one header per
// column followed by its tasks.
func columnItems(cols query.Buckets[model.Task]) []list.Item {
	items := make([]list.Item, 0, len(cols)+cols.Len())
	for _, col := range cols {
		items = append(items, ColumnItem{Status: model.Status(col.Key), Count: len(col.Items)})
		for _, t := range col.Items {
			items = append(items, TaskItem{Task: t})
		}
	}
	return items
}

// summaryLine renders the task counts shown above the board.
func summaryLine(s planner.TaskSummary) string {
	return theme.DimmedStyle.Render(fmt.Sprintf(
		"%d tasks | %d done | %d in progress | %d overdue | %.0f%% complete",
		s.Total, s.Completed, s.InProgress, s.Overdue, s.CompletionRate,
	))
}
