package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
)

func sampleTasks() []model.Task {
	return []model.Task{
		task("1", model.StatusTodo, func(tk *model.Task) {
			tk.Title = "Fix Authentication Bug"
			tk.Priority = model.PriorityHigh
			tk.Category = "Bug Fix"
		}),
		task("2", model.StatusDone, func(tk *model.Task) {
			tk.Title = "Design UI"
			tk.Description = "Mockups for the dashboard"
			tk.Category = "Design"
		}),
		task("3", model.StatusTodo, func(tk *model.Task) {
			tk.Title = "Write API docs"
			tk.Priority = model.PriorityLow
			tk.Category = "Documentation"
			tk.DueDate = refNow.Add(-48 * time.Hour)
		}),
		task("4", model.StatusReview, func(tk *model.Task) {
			tk.Title = "Payment integration"
			tk.Description = "bug bash before release"
			tk.Priority = model.PriorityHigh
		}),
	}
}

func sampleNotifications() []model.Notification {
	return []model.Notification{
		{ID: "n1", Type: model.NotificationMention, Content: "Sarah mentioned you", Time: refNow.Add(-10 * time.Minute)},
		{ID: "n2", Type: model.NotificationDeadline, Content: "Project deadline tomorrow", Time: refNow.Add(-time.Hour), Read: true},
		{ID: "n3", Type: model.NotificationUpdate, Content: "Task status updated", Time: refNow.Add(-2 * time.Hour)},
	}
}

func TestFilter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		criteria Criteria
		want     []string
	}{
		{name: "zero criteria is identity", criteria: Criteria{}, want: []string{"1", "2", "3", "4"}},
		{name: "all values are identity", criteria: Criteria{Status: "all", Priority: "ALL", Category: "All"}, want: []string{"1", "2", "3", "4"}},
		{name: "status", criteria: Criteria{Status: "todo"}, want: []string{"1", "3"}},
		{name: "status and priority", criteria: Criteria{Status: "todo", Priority: "high"}, want: []string{"1"}},
		{name: "category", criteria: Criteria{Category: "Design"}, want: []string{"2"}},
		{name: "search matches title", criteria: Criteria{SearchText: "bug"}, want: []string{"1", "4"}},
		{name: "search is case-insensitive", criteria: Criteria{SearchText: "MOCKUPS"}, want: []string{"2"}},
		{name: "search spans fields", criteria: Criteria{SearchText: "ui mockups"}, want: []string{"2"}},
		{name: "unknown enum value", criteria: Criteria{Status: "archived"}, want: []string{}},
		{name: "unknown category", criteria: Criteria{Category: "Sales"}, want: []string{}},
		{name: "attribute tasks lack", criteria: Criteria{Type: "mention"}, want: []string{}},
		{name: "on or after", criteria: Criteria{OnOrAfter: &refNow}, want: []string{"1", "2", "4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Filter(sampleTasks(), tt.criteria)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilter_SearchScenario(t *testing.T) {
	t.Parallel()

	items := []model.Task{
		task("1", model.StatusTodo, func(tk *model.Task) { tk.Title = "Fix Authentication Bug" }),
		task("2", model.StatusTodo, func(tk *model.Task) { tk.Title = "Design UI" }),
	}
	got := Filter(items, Criteria{SearchText: "bug"})
	require.Len(t, got, 1)
	assert.Equal(t, "Fix Authentication Bug", got[0].Title)
}

func TestFilter_Notifications(t *testing.T) {
	t.Parallel()

	items := sampleNotifications()

	assert.Equal(t, []string{"n1", "n3"}, ids(Filter(items, Criteria{ReadState: ReadUnread})))
	assert.Equal(t, []string{"n2"}, ids(Filter(items, Criteria{Type: "deadline"})))
	assert.Empty(t, Filter(items, Criteria{Type: "deadline", ReadState: ReadUnread}))
	assert.Equal(t, []string{"n3"}, ids(Filter(items, Criteria{SearchText: "status"})))
	assert.Empty(t, Filter(items, Criteria{Status: "todo"}), "notifications have no status")
}

func TestFilter_Properties(t *testing.T) {
	t.Parallel()

	items := sampleTasks()
	before := sampleTasks()
	criteria := []Criteria{
		{}, {Status: "todo"}, {Priority: "high"}, {SearchText: "a"}, {Status: "review", SearchText: "bug"},
	}

	for _, c := range criteria {
		got := Filter(items, c)

		// stable subsequence of the input
		j := 0
		for _, g := range got {
			for j < len(items) && items[j].ID != g.ID {
				j++
			}
			require.Less(t, j, len(items), "result is not a subsequence for %+v", c)
			j++
		}

		assert.Equal(t, got, Filter(items, c), "filter is idempotent")
		assert.Equal(t, len(got), CountBy(got, model.AttrStatus, model.StatusKeys()).Total())
	}
	assert.Equal(t, before, items, "input is not mutated")
}

func TestFilter_EmptyInput(t *testing.T) {
	t.Parallel()

	got := Filter([]model.Task(nil), Criteria{Status: "todo"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCriteria_IsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Criteria{}.IsZero())
	assert.True(t, Criteria{Status: "all", Category: "All", SearchText: "  "}.IsZero())
	assert.False(t, Criteria{Priority: "low"}.IsZero())
	assert.False(t, Criteria{ReadState: ReadUnread}.IsZero())
	assert.False(t, Criteria{OnOrAfter: &refNow}.IsZero())
}

func TestMatch(t *testing.T) {
	t.Parallel()

	tk := sampleTasks()[0]
	assert.True(t, Match(tk, Criteria{SearchText: "AUTH"}))
	assert.False(t, Match(tk, Criteria{Status: "done"}))
}
