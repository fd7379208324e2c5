package detail_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/ui/detail"
	"github.com/nhle/process-planner/tests/testutil"
)

func TestDetail_RendersTask(t *testing.T) {
	t.Parallel()

	clock := testutil.NewClock()
	m := detail.New(keys.DefaultKeyMap(), clock.Now, "Jan 02 15:04", 100, 40)
	assert.Contains(t, m.View(), "No task selected")

	m.SetTask(model.Task{
		ID:          "t1",
		Title:       "Fix Authentication Bug",
		Description: "Resolve the login issue",
		Status:      model.StatusTodo,
		Priority:    model.PriorityHigh,
		Category:    "Bug Fix",
		DueDate:     clock.Now().Add(-24 * time.Hour),
		Assignees:   []model.Person{{ID: 1, Name: "John Smith", Department: "Engineering"}},
	})

	view := m.View()
	assert.Contains(t, view, "Fix Authentication Bug")
	assert.Contains(t, view, "OVERDUE")
	assert.Contains(t, view, "John Smith")
	assert.Contains(t, view, "Resolve the login issue")
	assert.Equal(t, "t1", m.TaskID())
}

func TestDetail_Actions(t *testing.T) {
	t.Parallel()

	clock := testutil.NewClock()
	m := detail.New(keys.DefaultKeyMap(), clock.Now, "Jan 02", 100, 40)

	// Nothing to act on yet.
	_, cmd := m.Update(testutil.Key("x"))
	assert.Nil(t, cmd)

	m.SetTask(model.Task{ID: "t1", Title: "x", Status: model.StatusTodo, Priority: model.PriorityLow, DueDate: clock.Now()})

	tests := []struct {
		key  string
		want any
	}{
		{"x", detail.ActionMsg{Action: detail.ActionAdvance, TaskID: "t1"}},
		{"e", detail.ActionMsg{Action: detail.ActionEdit, TaskID: "t1"}},
		{"d", detail.ActionMsg{Action: detail.ActionDelete, TaskID: "t1"}},
		{"esc", detail.BackMsg{}},
	}
	for _, tt := range tests {
		_, cmd := m.Update(testutil.Key(tt.key))
		require.NotNil(t, cmd, tt.key)
		assert.Equal(t, tt.want, cmd(), tt.key)
	}
}
