package agenda

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/query"
	"github.com/nhle/process-planner/internal/theme"
	"github.com/nhle/process-planner/internal/ui"
)

// EventsLoadedMsg carries the events for the current filter.
type EventsLoadedMsg struct {
	Events  []model.CalendarEvent
	Summary planner.EventSummary
}

// NewEventMsg asks the app to open the event form.
type NewEventMsg struct{}

// EventItem wraps a model.CalendarEvent for the list.
type EventItem struct {
	Event model.CalendarEvent
}

// FilterValue implements list.Item.
func (i EventItem) FilterValue() string { return i.Event.Title }

// ItemDelegate renders one event per line.
type ItemDelegate struct {
	calendar   *planner.Calendar
	now        func() time.Time
	dateFormat string
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

// Render draws an event line.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(EventItem)
	if !ok {
		return
	}
	e := it.Event
	now := d.now()

	when := fmt.Sprintf("%s-%s", e.Start.Format(d.dateFormat), e.End.Format("15:04"))
	kind := theme.EventKindStyle(e.Kind).Render(fmt.Sprintf("%-7s", e.Kind))
	place := lipgloss.NewStyle().
		Foreground(theme.ColorGray).
		Render(Location(d.calendar, e))
	rel := theme.DueDateStyle.Render(planner.RelativeTime(e.Start, now))
	if e.Start.Before(now) {
		rel = theme.DimmedStyle.Render(planner.RelativeTime(e.Start, now))
	}

	line := fmt.Sprintf("%s %s %s  %s  %s", when, kind, e.Title, place, rel)
	if len(e.Attendees) > 0 {
		line += theme.DimmedStyle.Render(fmt.Sprintf("  %d attendees", len(e.Attendees)))
	}

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}
	fmt.Fprint(w, line)
}

// Location describes where an event happens: "Virtual" or the room name.
func Location(c *planner.Calendar, e model.CalendarEvent) string {
	if e.IsVirtual || e.Room == nil {
		return "Virtual"
	}
	if room, ok := c.Room(*e.Room); ok {
		return room.Name
	}
	return fmt.Sprintf("Room %d", *e.Room)
}

// Model is the calendar page: events ordered by start.
type Model struct {
	list     list.Model
	calendar *planner.Calendar
	keys     *keys.KeyMap
	now      func() time.Time
	kind     string
	showPast bool
	summary  planner.EventSummary
	width    int
	height   int
}

// New creates the calendar page.
func New(c *planner.Calendar, k *keys.KeyMap, now func() time.Time, dateFormat string, width, height int) Model {
	delegate := ItemDelegate{calendar: c, now: now, dateFormat: dateFormat}
	l := list.New([]list.Item{}, delegate, width, height-3)
	l.Title = "Calendar"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:     l,
		calendar: c,
		keys:     k,
		now:      now,
		width:    width,
		height:   height,
	}
}

// Init loads the events.
func (m Model) Init() tea.Cmd { return m.Load() }

// Kind returns the active event kind filter, "" for all.
func (m Model) Kind() string { return m.kind }

// ShowPast reports whether past events are listed.
func (m Model) ShowPast() bool { return m.showPast }

// Update handles messages for the calendar page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventsLoadedMsg:
		m.summary = msg.Summary
		items := make([]list.Item, len(msg.Events))
		for i, e := range msg.Events {
			items[i] = EventItem{Event: e}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.CycleStatus):
			m.kind = ui.Cycle(kindOptions(), m.kind)
			return m, m.Load()

		case key.Matches(msg, m.keys.TogglePast):
			m.showPast = !m.showPast
			return m, m.Load()

		case key.Matches(msg, m.keys.ClearFilters):
			m.kind = ""
			m.showPast = false
			return m, m.Load()

		case key.Matches(msg, m.keys.New):
			return m, func() tea.Msg { return NewEventMsg{} }

		case key.Matches(msg, m.keys.Delete):
			item, ok := m.list.SelectedItem().(EventItem)
			if !ok {
				return m, nil
			}
			m.calendar.Delete(item.Event.ID)
			return m, tea.Batch(m.Load(), func() tea.Msg {
				return ui.StatusMsg{Text: fmt.Sprintf("Cancelled %q", item.Event.Title)}
			})
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the calendar page.
func (m Model) View() string {
	s := m.summary
	header := theme.DimmedStyle.Render(fmt.Sprintf(
		"%d events | %d upcoming | %d virtual | %d in person",
		s.Total, s.Upcoming, s.Virtual, s.InPerson,
	))
	scope := "upcoming"
	if m.showPast {
		scope = "all"
	}
	filters := theme.HelpStyle.Render(fmt.Sprintf("showing: %s  kind: %s", scope, ui.FilterLabel(m.kind)))

	if len(m.list.Items()) == 0 {
		empty := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height-3).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray).
			Render("No events scheduled.\n\nPress n to schedule one.")
		return lipgloss.JoinVertical(lipgloss.Left, header, filters, empty)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, filters, m.list.View())
}

// Load returns a tea.Cmd that lists the events for the current filter.
func (m Model) Load() tea.Cmd {
	c := m.calendar
	crit := query.Criteria{Type: m.kind}
	if !m.showPast {
		now := m.now()
		crit.OnOrAfter = &now
	}
	events := query.SortStable(c.List(crit), func(a, b model.CalendarEvent) int {
		return a.Start.Compare(b.Start)
	})
	msg := EventsLoadedMsg{Events: events, Summary: c.Summary()}
	return func() tea.Msg { return msg }
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
}

func kindOptions() []string {
	opts := []string{""}
	for _, k := range model.EventKinds {
		opts = append(opts, string(k))
	}
	return opts
}
