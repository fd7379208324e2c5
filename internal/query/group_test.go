package query

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
)

func TestGroup_StatusBuckets(t *testing.T) {
	t.Parallel()

	items := []model.Task{
		task("t1", model.StatusTodo),
		task("t2", model.StatusDone),
		task("t3", model.StatusTodo),
	}

	got := Group(items, model.AttrStatus, model.StatusKeys())

	assert.Equal(t, []string{"todo", "in_progress", "review", "done"}, got.Keys())
	assert.Equal(t, []string{"t1", "t3"}, ids(got.Get("todo")))
	assert.Empty(t, got.Get("in_progress"))
	assert.NotNil(t, got.Get("in_progress"), "empty buckets are renderable")
	assert.Empty(t, got.Get("review"))
	assert.Equal(t, []string{"t2"}, ids(got.Get("done")))
	assert.Equal(t, len(items), got.Len())
}

func TestGroup_PartitionsExactly(t *testing.T) {
	t.Parallel()

	items := sampleTasks()
	items = append(items, task("5", model.StatusTodo, func(tk *model.Task) { tk.Category = "Sales" }))

	got := Group(items, model.AttrCategory, []string{"Development", "Design"})

	assert.Equal(t, []string{"Development", "Design", "Bug Fix", "Documentation", "Sales"}, got.Keys())
	assert.Equal(t, len(items), got.Len())

	seen := map[string]int{}
	for _, b := range got {
		for _, it := range b.Items {
			seen[it.ID]++
		}
	}
	for _, it := range items {
		assert.Equal(t, 1, seen[it.ID], "task %s appears exactly once", it.ID)
	}
}

func TestBuckets_Items(t *testing.T) {
	t.Parallel()

	tasks := []model.Task{
		task("1", model.StatusDone),
		task("2", model.StatusTodo),
		task("3", model.StatusReview),
		task("4", model.StatusTodo),
	}
	got := Group(tasks, model.AttrStatus, model.StatusKeys())
	assert.Equal(t, []string{"2", "4", "3", "1"}, ids(got.Items()))
}

func TestGroup_MissingAttribute(t *testing.T) {
	t.Parallel()

	got := Group(sampleNotifications(), model.AttrStatus, model.StatusKeys())
	require.Len(t, got, 5)
	assert.Equal(t, "", got[4].Key)
	assert.Len(t, got[4].Items, 3)
}

func TestGroup_WithinBucket(t *testing.T) {
	t.Parallel()

	items := []model.Task{
		task("a", model.StatusTodo, func(tk *model.Task) { tk.Priority = model.PriorityLow }),
		task("b", model.StatusTodo, func(tk *model.Task) { tk.Priority = model.PriorityHigh }),
		task("c", model.StatusTodo, func(tk *model.Task) { tk.Priority = model.PriorityLow }),
	}

	byPriority := func(x, y model.Task) int { return y.Priority.Rank() - x.Priority.Rank() }
	got := Group(items, model.AttrStatus, model.StatusKeys(), WithinBucket(byPriority))

	assert.Equal(t, []string{"b", "a", "c"}, ids(got.Get("todo")))
	assert.Equal(t, []string{"a", "b", "c"}, ids(items), "input order is untouched")
}

func TestSortStable_TieBreaksOnID(t *testing.T) {
	t.Parallel()

	start := refNow.Add(time.Hour)
	events := []model.CalendarEvent{
		{ID: "e3", Title: "Standup", Start: start, End: start.Add(time.Hour), IsVirtual: true, Kind: model.EventTeam},
		{ID: "e1", Title: "Review", Start: start, End: start.Add(time.Hour), IsVirtual: true, Kind: model.EventDesign},
		{ID: "e2", Title: "Kickoff", Start: refNow, End: refNow.Add(time.Hour), IsVirtual: true, Kind: model.EventClient},
	}

	got := SortStable(events, func(a, b model.CalendarEvent) int { return a.Start.Compare(b.Start) })
	assert.Equal(t, []string{"e2", "e1", "e3"}, ids(got))
	assert.Equal(t, "e3", events[0].ID, "input is not reordered")

	byTitle := SortStable(events, func(a, b model.CalendarEvent) int { return strings.Compare(a.Title, b.Title) })
	assert.Equal(t, []string{"e2", "e1", "e3"}, ids(byTitle))
}
