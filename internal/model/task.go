package model

import (
	"slices"
	"strings"
	"time"
)

// Attribute names understood by the query engine.
const (
	AttrStatus   = "status"
	AttrPriority = "priority"
	AttrCategory = "category"
	AttrType     = "type"
	AttrRead     = "read"
)

// Status is the board column a task sits in.
type Status string

// Task statuses in board order.
const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Statuses lists every status in declaration order.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusReview, StatusDone}

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Label returns the human-readable column title.
func (s Status) Label() string {
	switch s {
	case StatusTodo:
		return "To Do"
	case StatusInProgress:
		return "In Progress"
	case StatusReview:
		return "In Review"
	case StatusDone:
		return "Done"
	}
	return string(s)
}

// Next returns the following status in board order, wrapping after done.
// Transitions are unrestricted; this only drives the "advance" shortcut.
func (s Status) Next() Status {
	for i, st := range Statuses {
		if st == s {
			return Statuses[(i+1)%len(Statuses)]
		}
	}
	return StatusTodo
}

// StatusKeys returns the statuses as plain strings, for grouping.
func StatusKeys() []string {
	keys := make([]string, len(Statuses))
	for i, s := range Statuses {
		keys[i] = string(s)
	}
	return keys
}

// Priority is the urgency of a task.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities numerically, higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// DefaultCategories is the known subset of the open category set.
var DefaultCategories = []string{
	"Development",
	"Design",
	"Bug Fix",
	"Marketing",
	"Research",
	"Documentation",
	"Management",
}

// Person is a team member that can be assigned to tasks or invited to events.
type Person struct {
	ID         int    `json:"id" yaml:"id"`
	Name       string `json:"name" yaml:"name"`
	Department string `json:"department" yaml:"department"`
	Avatar     string `json:"avatar" yaml:"avatar"`
}

// Handle is the @mention handle for the person: the name lowercased with
// spaces removed ("John Smith" -> "johnsmith").
func (p Person) Handle() string {
	return strings.ToLower(strings.Join(strings.Fields(p.Name), ""))
}

// Task is a unit of work shown on the task board.
type Task struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id"`

	Title       string `json:"title"`
	Description string `json:"description"`

	Status   Status   `json:"status"`
	Priority Priority `json:"priority"`

	// DueDate is the deadline; a task past it and not done is overdue.
	DueDate time.Time `json:"due_date"`

	// Category is a free-form tag, usually one of DefaultCategories.
	Category string `json:"category"`

	// Progress is a percentage in [0,100]. Done tasks are always at 100.
	Progress int `json:"progress"`

	// Assignees is ordered and unique by person ID.
	Assignees []Person `json:"assignees,omitempty"`
}

// RecordID implements query.Record.
func (t Task) RecordID() string { return t.ID }

// Attr implements query.Queryable.
func (t Task) Attr(name string) (string, bool) {
	switch name {
	case AttrStatus:
		return string(t.Status), true
	case AttrPriority:
		return string(t.Priority), true
	case AttrCategory:
		return t.Category, true
	}
	return "", false
}

// SearchFields implements query.Queryable.
func (t Task) SearchFields() []string { return []string{t.Title, t.Description} }

// Timestamp implements query.Queryable.
func (t Task) Timestamp() time.Time { return t.DueDate }

// IsCompleted reports whether the task is done.
func (t Task) IsCompleted() bool { return t.Status == StatusDone }

// IsOverdue reports whether the due date has passed at now and the task is not done.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate.Before(now) && t.Status != StatusDone
}

// HasAssignee reports whether the person with the given id is assigned.
func (t Task) HasAssignee(personID int) bool {
	for _, a := range t.Assignees {
		if a.ID == personID {
			return true
		}
	}
	return false
}

// Validate checks required fields and value ranges.
func (t Task) Validate() error {
	var errs fieldErrors
	if strings.TrimSpace(t.Title) == "" {
		errs.add("title", "must not be empty")
	}
	if !t.Status.IsValid() {
		errs.add("status", "unknown status "+quote(string(t.Status)))
	}
	if !t.Priority.IsValid() {
		errs.add("priority", "unknown priority "+quote(string(t.Priority)))
	}
	if t.DueDate.IsZero() {
		errs.add("due_date", "is required")
	}
	if t.Progress < 0 || t.Progress > 100 {
		errs.add("progress", "must be between 0 and 100")
	}
	if t.Status == StatusDone && t.Progress != 100 {
		errs.add("progress", "must be 100 when status is done")
	}
	seen := make(map[int]bool, len(t.Assignees))
	for _, a := range t.Assignees {
		if seen[a.ID] {
			errs.add("assignees", "duplicate person "+a.Name)
			continue
		}
		seen[a.ID] = true
	}
	return errs.err()
}

// Clone returns a copy of t that shares no memory with it.
func (t Task) Clone() Task {
	t.Assignees = slices.Clone(t.Assignees)
	return t
}

// NormalizeTask enforces the done/progress invariant and trims text fields.
func NormalizeTask(t Task) Task {
	t.Title = strings.TrimSpace(t.Title)
	t.Category = strings.TrimSpace(t.Category)
	if t.Status == StatusDone {
		t.Progress = 100
	}
	return t.Clone()
}

// TaskPatch is a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
	Category    *string
	Progress    *int
	Assignees   *[]Person
}

// Apply merges the patch into t and returns the result.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if p.Assignees != nil {
		t.Assignees = append([]Person(nil), (*p.Assignees)...)
	}
	return t
}

func quote(s string) string { return `"` + s + `"` }
