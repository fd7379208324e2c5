package planner

import (
	"cmp"
	"slices"
	"time"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/query"
)

// Workload is the number of open tasks assigned to one person.
type Workload struct {
	Person model.Person
	Open   int
}

// Snapshot is everything the dashboard page shows, computed at one instant.
type Snapshot struct {
	At            time.Time
	Tasks         TaskSummary
	ByPriority    query.Counts
	Notifications NotificationSummary
	Events        EventSummary
	NextEvents    []model.CalendarEvent
	Workload      []Workload
}

// Dashboard reads from the other services and never mutates them.
type Dashboard struct {
	members  []model.Person
	board    *Board
	inbox    *Inbox
	calendar *Calendar
}

// maxNextEvents bounds Snapshot.NextEvents.
const maxNextEvents = 3

// NewDashboard creates a dashboard over the given services.
func NewDashboard(members []model.Person, board *Board, inbox *Inbox, calendar *Calendar) *Dashboard {
	return &Dashboard{
		members:  slices.Clone(members),
		board:    board,
		inbox:    inbox,
		calendar: calendar,
	}
}

// Snapshot computes the dashboard at now.
func (d *Dashboard) Snapshot(now time.Time) Snapshot {
	tasks := d.board.All()
	events := d.calendar.All()

	next := d.calendar.Upcoming(now)
	if len(next) > maxNextEvents {
		next = next[:maxNextEvents]
	}

	return Snapshot{
		At:            now,
		Tasks:         SummarizeTasks(tasks, now),
		ByPriority:    query.CountBy(tasks, model.AttrPriority, priorityKeys()),
		Notifications: d.inbox.Summary(),
		Events:        SummarizeEvents(events, now),
		NextEvents:    next,
		Workload:      ComputeWorkload(d.members, tasks),
	}
}

// ComputeWorkload counts open tasks per person, ordered by person id.
// Members without tasks are listed with zero; assignees missing from
// members are added.
func ComputeWorkload(members []model.Person, tasks []model.Task) []Workload {
	byID := make(map[int]*Workload, len(members))
	var out []*Workload
	add := func(p model.Person) *Workload {
		if w, ok := byID[p.ID]; ok {
			return w
		}
		w := &Workload{Person: p}
		byID[p.ID] = w
		out = append(out, w)
		return w
	}

	for _, m := range members {
		add(m)
	}
	for _, t := range tasks {
		for _, a := range t.Assignees {
			w := add(a)
			if !t.IsCompleted() {
				w.Open++
			}
		}
	}

	slices.SortFunc(out, func(a, b *Workload) int { return cmp.Compare(a.Person.ID, b.Person.ID) })
	result := make([]Workload, len(out))
	for i, w := range out {
		result[i] = *w
	}
	return result
}

func priorityKeys() []string {
	keys := make([]string, len(model.Priorities))
	for i, p := range model.Priorities {
		keys[i] = string(p)
	}
	return keys
}
