package dashboard_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/ui/dashboard"
	"github.com/nhle/process-planner/tests/testutil"
)

func TestDashboard_RendersSnapshot(t *testing.T) {
	t.Parallel()

	ws, clock := testutil.NewTestWorkspace(t)
	m := dashboard.New(ws.Dashboard, ws.Calendar, clock.Now, "Jan 02 15:04", 140, 40)

	msgs := testutil.Drain(m.Init())
	require.Len(t, msgs, 1)
	m, _ = m.Update(msgs[0])

	assert.Equal(t, 8, m.Snapshot().Tasks.Total)

	view := m.View()
	assert.Contains(t, view, "8 total, 1 completed, 2 in progress")
	assert.Contains(t, view, "1 overdue")
	assert.Contains(t, view, "12.5%")
	assert.Contains(t, view, "2 unread")
	assert.Contains(t, view, "Product Review")
	assert.Contains(t, view, "Robert Brown")
}
