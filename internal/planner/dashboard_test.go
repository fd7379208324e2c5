package planner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/tests/testutil"
)

func TestDashboard_Snapshot(t *testing.T) {
	t.Parallel()

	ws, clock := testutil.NewTestWorkspace(t)
	snap := ws.Dashboard.Snapshot(clock.Now())

	assert.Equal(t, clock.Now(), snap.At)
	assert.Equal(t, 8, snap.Tasks.Total)
	assert.Equal(t, 1, snap.Tasks.Overdue)
	assert.Equal(t, 3, snap.ByPriority.Get("high"))
	assert.Equal(t, 3, snap.ByPriority.Get("medium"))
	assert.Equal(t, 2, snap.ByPriority.Get("low"))
	assert.Equal(t, 2, snap.Notifications.Unread)
	assert.Equal(t, 3, snap.Events.Upcoming)
	assert.Equal(t, []string{"Product Review", "Design Workshop", "Client Meeting"}, titles(snap.NextEvents))

	open := map[string]int{}
	var order []int
	for _, w := range snap.Workload {
		open[w.Person.Name] = w.Open
		order = append(order, w.Person.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, order)
	assert.Equal(t, map[string]int{
		"John Smith":      3,
		"Sarah Williams":  2,
		"Michael Johnson": 1,
		"Emily Davis":     2,
		"Robert Brown":    3,
		"Lisa Anderson":   1,
	}, open)
}

func TestDashboard_SnapshotDoesNotMutate(t *testing.T) {
	t.Parallel()

	ws, clock := testutil.NewTestWorkspace(t)
	before := ws.Board.All()

	first := ws.Dashboard.Snapshot(clock.Now())
	second := ws.Dashboard.Snapshot(clock.Now())

	assert.Equal(t, first, second)
	assert.Equal(t, before, ws.Board.All())
}

func TestComputeWorkload(t *testing.T) {
	t.Parallel()

	guest := model.Person{ID: 9, Name: "Guest"}
	tasks := []model.Task{
		{ID: "a", Status: model.StatusTodo, Assignees: []model.Person{guest, john}},
		{ID: "b", Status: model.StatusDone, Assignees: []model.Person{john}},
	}

	got := planner.ComputeWorkload([]model.Person{sarah, john}, tasks)
	require.Len(t, got, 3)
	assert.Equal(t, planner.Workload{Person: john, Open: 1}, got[0])
	assert.Equal(t, planner.Workload{Person: sarah, Open: 0}, got[1])
	assert.Equal(t, planner.Workload{Person: guest, Open: 1}, got[2])
}
