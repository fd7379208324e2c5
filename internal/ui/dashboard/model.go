package dashboard

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/theme"
)

// SnapshotMsg carries a freshly computed dashboard.
type SnapshotMsg struct {
	Snapshot planner.Snapshot
}

const barWidth = 20

// Model is the dashboard page. It only reads from the services.
type Model struct {
	dashboard  *planner.Dashboard
	calendar   *planner.Calendar
	now        func() time.Time
	dateFormat string
	snap       planner.Snapshot
	width      int
	height     int
}

// New creates the dashboard page.
func New(d *planner.Dashboard, c *planner.Calendar, now func() time.Time, dateFormat string, width, height int) Model {
	return Model{
		dashboard:  d,
		calendar:   c,
		now:        now,
		dateFormat: dateFormat,
		width:      width,
		height:     height,
	}
}

// Init computes the first snapshot.
func (m Model) Init() tea.Cmd { return m.Refresh() }

// Refresh returns a tea.Cmd that recomputes the snapshot.
func (m Model) Refresh() tea.Cmd {
	msg := SnapshotMsg{Snapshot: m.dashboard.Snapshot(m.now())}
	return func() tea.Msg { return msg }
}

// Snapshot returns the snapshot currently shown.
func (m Model) Snapshot() planner.Snapshot { return m.snap }

// Update handles messages for the dashboard.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(SnapshotMsg); ok {
		m.snap = msg.Snapshot
	}
	return m, nil
}

// View renders the dashboard as two columns of panels.
func (m Model) View() string {
	colWidth := max(m.width/2-2, 30)
	panel := theme.BorderStyle.Padding(0, 1).Width(colWidth)

	left := lipgloss.JoinVertical(lipgloss.Left,
		panel.Render(m.renderTasks()),
		panel.Render(m.renderNotifications()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		panel.Render(m.renderEvents()),
		panel.Render(m.renderWorkload()),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderTasks() string {
	s := m.snap.Tasks
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Tasks") + "\n")
	fmt.Fprintf(&b, "%d total, %d completed, %d in progress\n", s.Total, s.Completed, s.InProgress)
	if s.Overdue > 0 {
		b.WriteString(theme.OverdueStyle.Render(fmt.Sprintf("%d overdue", s.Overdue)) + "\n")
	} else {
		b.WriteString(theme.DimmedStyle.Render("nothing overdue") + "\n")
	}
	fmt.Fprintf(&b, "%s %.1f%%\n", bar(s.CompletionRate/100, barWidth, theme.ColorGreen), s.CompletionRate)

	b.WriteString("\n")
	for _, st := range model.Statuses {
		n := s.ByStatus.Get(string(st))
		fmt.Fprintf(&b, "%s %d\n", theme.StatusStyle(st).Width(14).Render(st.Label()), n)
	}
	b.WriteString("\n")
	for _, p := range model.Priorities {
		fmt.Fprintf(&b, "%s %d\n", theme.PriorityStyle(p).Width(8).Render(string(p)), m.snap.ByPriority.Get(string(p)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderNotifications() string {
	s := m.snap.Notifications
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Notifications") + "\n")
	fmt.Fprintf(&b, "%s of %d\n", theme.UnreadBadgeStyle.Render(fmt.Sprintf("%d unread", s.Unread)), s.Total)
	for _, t := range model.NotificationTypes {
		fmt.Fprintf(&b, "%s %d\n", theme.NotificationStyle(t).Width(12).Render(string(t)), s.ByType.Get(string(t)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderEvents() string {
	s := m.snap.Events
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Upcoming events") + "\n")
	fmt.Fprintf(&b, "%d upcoming of %d (%d virtual, %d in person)\n", s.Upcoming, s.Total, s.Virtual, s.InPerson)
	if len(m.snap.NextEvents) == 0 {
		b.WriteString(theme.DimmedStyle.Render("nothing scheduled"))
		return b.String()
	}
	for _, e := range m.snap.NextEvents {
		where := "Virtual"
		if !e.IsVirtual && e.Room != nil {
			if room, ok := m.calendar.Room(*e.Room); ok {
				where = room.Name
			}
		}
		fmt.Fprintf(&b, "%s %s\n  %s, %s\n",
			theme.EventKindStyle(e.Kind).Render("●"),
			e.Title,
			theme.DueDateStyle.Render(e.Start.Format(m.dateFormat)),
			theme.DimmedStyle.Render(where),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderWorkload() string {
	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Workload") + "\n")
	most := 0
	for _, w := range m.snap.Workload {
		most = max(most, w.Open)
	}
	for _, w := range m.snap.Workload {
		ratio := 0.0
		if most > 0 {
			ratio = float64(w.Open) / float64(most)
		}
		fmt.Fprintf(&b, "%-16s %s %d\n", w.Person.Name, bar(ratio, barWidth/2, theme.ColorBlue), w.Open)
	}
	return strings.TrimRight(b.String(), "\n")
}

// bar draws a horizontal gauge filled to ratio (0..1).
func bar(ratio float64, width int, color lipgloss.TerminalColor) string {
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		theme.DimmedStyle.Render(strings.Repeat("░", width-filled))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
