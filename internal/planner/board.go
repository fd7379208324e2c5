package planner

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/query"
)

// Defaults applied by Board.Create.
const (
	DefaultTaskCategory = "Development"
	DefaultDueIn        = 7 * 24 * time.Hour
)

// TaskInput holds the fields of a new task. Empty fields take defaults.
type TaskInput struct {
	Title       string
	Description string
	Status      model.Status
	Priority    model.Priority
	Category    string
	DueDate     time.Time
	Progress    int
	Assignees   []model.Person
}

// Patch turns the input into a full replacement of the editable fields.
// Empty status, priority, category and due date leave the task's value.
func (in TaskInput) Patch() model.TaskPatch {
	p := model.TaskPatch{
		Title:       &in.Title,
		Description: &in.Description,
		Progress:    &in.Progress,
		Assignees:   &in.Assignees,
	}
	if in.Status != "" {
		p.Status = &in.Status
	}
	if in.Priority != "" {
		p.Priority = &in.Priority
	}
	if strings.TrimSpace(in.Category) != "" {
		p.Category = &in.Category
	}
	if !in.DueDate.IsZero() {
		p.DueDate = &in.DueDate
	}
	return p
}

// TaskSummary is the derived view of a task list at one instant.
type TaskSummary struct {
	Total          int
	ByStatus       query.Counts
	Completed      int
	InProgress     int
	Overdue        int
	CompletionRate float64
}

// SummarizeTasks computes the task summary. now is used for every overdue
// check so the counts are consistent.
func SummarizeTasks(tasks []model.Task, now time.Time) TaskSummary {
	byStatus := query.CountBy(tasks, model.AttrStatus, model.StatusKeys())
	completed := byStatus.Get(string(model.StatusDone))
	return TaskSummary{
		Total:          len(tasks),
		ByStatus:       byStatus,
		Completed:      completed,
		InProgress:     byStatus.Get(string(model.StatusInProgress)),
		Overdue:        query.CountWhere(tasks, func(t model.Task) bool { return t.IsOverdue(now) }),
		CompletionRate: query.Percent(completed, len(tasks)),
	}
}

// Board is the task board.
type Board struct {
	env        Env
	store      *query.Store[model.Task]
	categories []string
	log        zerolog.Logger
}

// NewBoard creates an empty board. categories is the known category list;
// nil means model.DefaultCategories.
func NewBoard(env Env, categories []string) *Board {
	env = env.withDefaults()
	if len(categories) == 0 {
		categories = model.DefaultCategories
	}
	log := env.Log.With().Str("component", "board").Logger()
	return &Board{
		env: env,
		store: query.NewStore(
			query.WithNormalizer(model.NormalizeTask),
			query.WithLogger[model.Task](log),
		),
		categories: slices.Clone(categories),
		log:        log,
	}
}

// Load inserts existing tasks as they are.
func (b *Board) Load(tasks []model.Task) error {
	for _, t := range tasks {
		if err := b.store.Insert(t); err != nil {
			return fmt.Errorf("loading task %q: %w", t.Title, err)
		}
	}
	return nil
}

// Create adds a new task with a fresh ID.
func (b *Board) Create(in TaskInput) (model.Task, error) {
	t := model.Task{
		ID:          b.env.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Priority:    in.Priority,
		Category:    in.Category,
		DueDate:     in.DueDate,
		Progress:    in.Progress,
		Assignees:   in.Assignees,
	}
	if t.Status == "" {
		t.Status = model.StatusTodo
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if strings.TrimSpace(t.Category) == "" {
		t.Category = DefaultTaskCategory
	}
	if t.DueDate.IsZero() {
		t.DueDate = b.env.Now().Add(DefaultDueIn)
	}

	if err := b.store.Insert(t); err != nil {
		return model.Task{}, fmt.Errorf("creating task: %w", err)
	}
	created, _ := b.store.Get(t.ID)
	b.log.Info().Str("id", created.ID).Str("title", created.Title).Msg("task created")
	return created, nil
}

// Get returns the task with the given id.
func (b *Board) Get(id string) (model.Task, bool) { return b.store.Get(id) }

// Update applies a partial update.
func (b *Board) Update(id string, patch model.TaskPatch) (model.Task, error) {
	t, err := b.store.Update(id, patch.Apply)
	if err != nil {
		return model.Task{}, fmt.Errorf("updating task %s: %w", id, err)
	}
	return t, nil
}

// SetStatus moves a task to any status. Moving to done sets progress to 100.
func (b *Board) SetStatus(id string, status model.Status) (model.Task, error) {
	return b.Update(id, model.TaskPatch{Status: &status})
}

// Advance moves a task to the next board column, wrapping after done.
func (b *Board) Advance(id string) (model.Task, error) {
	t, ok := b.store.Get(id)
	if !ok {
		return model.Task{}, fmt.Errorf("advancing task %s: %w", id, model.ErrNotFound)
	}
	return b.SetStatus(id, t.Status.Next())
}

// AddAssignee assigns p to the task. Assigning someone twice is a no-op.
func (b *Board) AddAssignee(id string, p model.Person) (model.Task, error) {
	t, err := b.store.Update(id, func(t model.Task) model.Task {
		if !t.HasAssignee(p.ID) {
			t.Assignees = append(t.Assignees, p)
		}
		return t
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("assigning %s to task %s: %w", p.Name, id, err)
	}
	return t, nil
}

// RemoveAssignee unassigns the person with the given id.
func (b *Board) RemoveAssignee(id string, personID int) (model.Task, error) {
	t, err := b.store.Update(id, func(t model.Task) model.Task {
		t.Assignees = slices.DeleteFunc(slices.Clone(t.Assignees), func(p model.Person) bool { return p.ID == personID })
		return t
	})
	if err != nil {
		return model.Task{}, fmt.Errorf("unassigning %d from task %s: %w", personID, id, err)
	}
	return t, nil
}

// Delete removes a task. Unknown ids are ignored.
func (b *Board) Delete(id string) bool {
	ok := b.store.Delete(id)
	if ok {
		b.log.Info().Str("id", id).Msg("task deleted")
	}
	return ok
}

// All returns every task in board order.
func (b *Board) All() []model.Task { return b.store.All() }

// Len returns the number of tasks.
func (b *Board) Len() int { return b.store.Len() }

// List returns the tasks matching c.
func (b *Board) List(c query.Criteria) []model.Task {
	return query.Filter(b.store.All(), c)
}

// Columns returns the tasks matching c bucketed by status in board order.
func (b *Board) Columns(c query.Criteria) query.Buckets[model.Task] {
	return query.Group(b.List(c), model.AttrStatus, model.StatusKeys())
}

// Summary summarizes every task at the current time.
func (b *Board) Summary() TaskSummary {
	return SummarizeTasks(b.store.All(), b.env.Now())
}

// Categories returns the known categories followed by any other category
// in use, sorted.
func (b *Board) Categories() []string {
	out := slices.Clone(b.categories)
	known := make(map[string]bool, len(out))
	for _, c := range out {
		known[c] = true
	}
	var extra []string
	for _, t := range b.store.All() {
		if t.Category != "" && !known[t.Category] {
			known[t.Category] = true
			extra = append(extra, t.Category)
		}
	}
	slices.Sort(extra)
	return append(out, extra...)
}

// DueSoon returns the open tasks due within window of now, overdue ones
// included, earliest first.
func (b *Board) DueSoon(now time.Time, window time.Duration) []model.Task {
	return DueSoon(b.store.All(), now, window)
}

// DueSoon selects the open tasks of tasks due before now+window.
func DueSoon(tasks []model.Task, now time.Time, window time.Duration) []model.Task {
	limit := now.Add(window)
	var due []model.Task
	for _, t := range tasks {
		if !t.IsCompleted() && !t.DueDate.After(limit) {
			due = append(due, t)
		}
	}
	return query.SortStable(due, func(a, b model.Task) int { return a.DueDate.Compare(b.DueDate) })
}
