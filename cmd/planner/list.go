package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/query"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui/agenda"
)

var (
	outputFormat string

	taskStatus   string
	taskPriority string
	taskCategory string
	taskSearch   string

	onlyUnread bool
	notifType  string

	showPast bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List tasks",
	Args:  cobra.NoArgs,
	RunE: withSession(func(s *session, w io.Writer) error {
		crit := query.Criteria{
			Status:     taskStatus,
			Priority:   taskPriority,
			Category:   taskCategory,
			SearchText: taskSearch,
		}
		return writeTasks(w, boardOrder(s.ws.Board, crit), s.ws.Env.Now(), s.cfg.Display.DateFormat)
	}),
}

// boardOrder lists the tasks matching crit column by column.
func boardOrder(b *planner.Board, crit query.Criteria) []model.Task {
	return b.Columns(crit).Items()
}

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"inbox"},
	Short:   "List notifications, newest first",
	Args:    cobra.NoArgs,
	RunE: withSession(func(s *session, w io.Writer) error {
		crit := planner.InboxFilter(notifType)
		if onlyUnread {
			crit.ReadState = query.ReadUnread
		}
		return writeNotifications(w, s.ws.Inbox.List(crit), s.ws.Env.Now())
	}),
}

var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "List upcoming events",
	Args:  cobra.NoArgs,
	RunE: withSession(func(s *session, w io.Writer) error {
		events := s.ws.Calendar.Upcoming(s.ws.Env.Now())
		if showPast {
			events = query.SortStable(s.ws.Calendar.All(), func(a, b model.CalendarEvent) int {
				return a.Start.Compare(b.Start)
			})
		}
		return writeAgenda(w, s.ws.Calendar, events, s.cfg.Display.DateFormat)
	}),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print the dashboard summary",
	Args:  cobra.NoArgs,
	RunE: withSession(func(s *session, w io.Writer) error {
		return writeStats(w, s.ws.Dashboard.Snapshot(s.ws.Env.Now()))
	}),
}

func init() {
	for _, c := range []*cobra.Command{tasksCmd, notificationsCmd, agendaCmd, statsCmd} {
		c.Flags().StringVarP(&outputFormat, "output", "o", "text", "output format (text, yaml)")
	}

	tasksCmd.Flags().StringVar(&taskStatus, "status", "", "filter by status (todo, in_progress, review, done)")
	tasksCmd.Flags().StringVar(&taskPriority, "priority", "", "filter by priority (high, medium, low)")
	tasksCmd.Flags().StringVar(&taskCategory, "category", "", "filter by category")
	tasksCmd.Flags().StringVarP(&taskSearch, "search", "s", "", "search title and description")

	notificationsCmd.Flags().BoolVarP(&onlyUnread, "unread", "u", false, "only unread notifications")
	notificationsCmd.Flags().StringVarP(&notifType, "type", "t", "", "filter by type (mention, deadline, update)")

	agendaCmd.Flags().BoolVarP(&showPast, "all", "a", false, "include past events")
}

// withSession opens a session for a listing command.
func withSession(fn func(s *session, w io.Writer) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case "text", "yaml":
		default:
			return fmt.Errorf("unknown output format %q", outputFormat)
		}
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()
		return fn(s, cmd.OutOrStdout())
	}
}

// --- rows ---

type taskRow struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Status    string   `yaml:"status"`
	Priority  string   `yaml:"priority"`
	Category  string   `yaml:"category"`
	Due       string   `yaml:"due"`
	Progress  int      `yaml:"progress"`
	Overdue   bool     `yaml:"overdue,omitempty"`
	Assignees []string `yaml:"assignees,omitempty"`
}

type notificationRow struct {
	ID      string `yaml:"id"`
	Type    string `yaml:"type"`
	Content string `yaml:"content"`
	When    string `yaml:"when"`
	Read    bool   `yaml:"read"`
}

type eventRow struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	Kind      string `yaml:"kind"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Where     string `yaml:"where"`
	Attendees int    `yaml:"attendees"`
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func writeTasks(w io.Writer, tasks []model.Task, now time.Time, dateFormat string) error {
	rows := make([]taskRow, len(tasks))
	for i, t := range tasks {
		rows[i] = taskRow{
			ID:       t.ID,
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			Category: t.Category,
			Due:      t.DueDate.Format(time.RFC3339),
			Progress: t.Progress,
			Overdue:  t.IsOverdue(now),
		}
		for _, a := range t.Assignees {
			rows[i].Assignees = append(rows[i].Assignees, a.Name)
		}
	}
	if outputFormat == "yaml" {
		return writeYAML(w, rows)
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, theme.DimmedStyle.Render("No tasks match."))
		return err
	}
	for _, t := range tasks {
		due := theme.DueDateStyle.Render(t.DueDate.Format(dateFormat))
		if t.IsOverdue(now) {
			due = theme.OverdueStyle.Render(t.DueDate.Format(dateFormat) + " overdue")
		}
		line := fmt.Sprintf("%s %s %s  %s  %s %3d%%",
			theme.StatusStyle(t.Status).Width(12).Render(t.Status.Label()),
			theme.PriorityStyle(t.Priority).Width(7).Render(string(t.Priority)),
			lipgloss.NewStyle().Bold(true).Render(t.Title),
			lipgloss.NewStyle().Foreground(theme.ColorMagenta).Render(t.Category),
			due,
			t.Progress,
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeNotifications(w io.Writer, ns []model.Notification, now time.Time) error {
	if outputFormat == "yaml" {
		rows := make([]notificationRow, len(ns))
		for i, n := range ns {
			rows[i] = notificationRow{ID: n.ID, Type: string(n.Type), Content: n.Content, When: n.Time.Format(time.RFC3339), Read: n.Read}
		}
		return writeYAML(w, rows)
	}

	if len(ns) == 0 {
		_, err := fmt.Fprintln(w, theme.DimmedStyle.Render("You're all caught up."))
		return err
	}
	for _, n := range ns {
		dot := " "
		if !n.Read {
			dot = theme.UnreadBadgeStyle.Render("•")
		}
		line := fmt.Sprintf("%s %s %s  %s",
			dot,
			theme.NotificationStyle(n.Type).Width(9).Render(string(n.Type)),
			n.Content,
			theme.DimmedStyle.Render(planner.RelativeTime(n.Time, now)),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeAgenda(w io.Writer, c *planner.Calendar, events []model.CalendarEvent, dateFormat string) error {
	if outputFormat == "yaml" {
		rows := make([]eventRow, len(events))
		for i, e := range events {
			rows[i] = eventRow{
				ID: e.ID, Title: e.Title, Kind: string(e.Kind),
				Start: e.Start.Format(time.RFC3339), End: e.End.Format(time.RFC3339),
				Where: agenda.Location(c, e), Attendees: len(e.Attendees),
			}
		}
		return writeYAML(w, rows)
	}

	if len(events) == 0 {
		_, err := fmt.Fprintln(w, theme.DimmedStyle.Render("Nothing scheduled."))
		return err
	}
	for _, e := range events {
		line := fmt.Sprintf("%s-%s %s %s  %s",
			theme.DueDateStyle.Render(e.Start.Format(dateFormat)),
			theme.DueDateStyle.Render(e.End.Format("15:04")),
			theme.EventKindStyle(e.Kind).Width(10).Render(string(e.Kind)),
			lipgloss.NewStyle().Bold(true).Render(e.Title),
			theme.DimmedStyle.Render(agenda.Location(c, e)),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

type statsDoc struct {
	Tasks struct {
		Total          int     `yaml:"total"`
		Completed      int     `yaml:"completed"`
		InProgress     int     `yaml:"in_progress"`
		Overdue        int     `yaml:"overdue"`
		CompletionRate float64 `yaml:"completion_rate"`
	} `yaml:"tasks"`
	Notifications struct {
		Total  int `yaml:"total"`
		Unread int `yaml:"unread"`
	} `yaml:"notifications"`
	Events struct {
		Total    int `yaml:"total"`
		Upcoming int `yaml:"upcoming"`
	} `yaml:"events"`
	Workload map[string]int `yaml:"workload"`
}

func writeStats(w io.Writer, snap planner.Snapshot) error {
	if outputFormat == "yaml" {
		var doc statsDoc
		doc.Tasks.Total = snap.Tasks.Total
		doc.Tasks.Completed = snap.Tasks.Completed
		doc.Tasks.InProgress = snap.Tasks.InProgress
		doc.Tasks.Overdue = snap.Tasks.Overdue
		doc.Tasks.CompletionRate = snap.Tasks.CompletionRate
		doc.Notifications.Total = snap.Notifications.Total
		doc.Notifications.Unread = snap.Notifications.Unread
		doc.Events.Total = snap.Events.Total
		doc.Events.Upcoming = snap.Events.Upcoming
		doc.Workload = make(map[string]int, len(snap.Workload))
		for _, wl := range snap.Workload {
			doc.Workload[wl.Person.Name] = wl.Open
		}
		return writeYAML(w, doc)
	}

	var b strings.Builder
	b.WriteString(theme.SectionStyle.Render("Tasks") + "\n")
	fmt.Fprintf(&b, "  %d total, %d completed, %d in progress, %d overdue (%.1f%% done)\n",
		snap.Tasks.Total, snap.Tasks.Completed, snap.Tasks.InProgress, snap.Tasks.Overdue, snap.Tasks.CompletionRate)
	for _, c := range snap.Tasks.ByStatus {
		fmt.Fprintf(&b, "  %-12s %d\n", model.Status(c.Key).Label(), c.N)
	}
	b.WriteString(theme.SectionStyle.Render("Notifications") + "\n")
	fmt.Fprintf(&b, "  %d total, %d unread\n", snap.Notifications.Total, snap.Notifications.Unread)
	b.WriteString(theme.SectionStyle.Render("Events") + "\n")
	fmt.Fprintf(&b, "  %d total, %d upcoming\n", snap.Events.Total, snap.Events.Upcoming)
	b.WriteString(theme.SectionStyle.Render("Workload") + "\n")
	for _, wl := range snap.Workload {
		fmt.Fprintf(&b, "  %-20s %d open\n", wl.Person.Name, wl.Open)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
