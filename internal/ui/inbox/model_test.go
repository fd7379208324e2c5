package inbox_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/ui"
	"github.com/nhle/process-planner/internal/ui/inbox"
	"github.com/nhle/process-planner/tests/testutil"
)

func newInboxView(t *testing.T) (inbox.Model, *planner.Workspace) {
	t.Helper()
	ws, clock := testutil.NewTestWorkspace(t)
	m := inbox.New(ws.Inbox, keys.DefaultKeyMap(), clock.Now, 100, 40)
	m, _ = feed(m, m.Init())
	return m, ws
}

func feed(m inbox.Model, cmd tea.Cmd) (inbox.Model, []tea.Msg) {
	var rest []tea.Msg
	for _, msg := range testutil.Drain(cmd) {
		if _, ok := msg.(inbox.NotificationsLoadedMsg); ok {
			m, _ = m.Update(msg)
			continue
		}
		rest = append(rest, msg)
	}
	return m, rest
}

func press(m inbox.Model, k string) (inbox.Model, []tea.Msg) {
	m, cmd := m.Update(testutil.Key(k))
	return feed(m, cmd)
}

func TestInbox_CycleFilter(t *testing.T) {
	t.Parallel()

	m, _ := newInboxView(t)
	assert.Equal(t, planner.FilterAll, m.Filter())

	var got []string
	for range planner.InboxFilters {
		m, _ = press(m, "s")
		got = append(got, m.Filter())
	}
	assert.Equal(t, []string{"unread", "mention", "deadline", "update", "all"}, got)
}

func TestInbox_MarkRead(t *testing.T) {
	t.Parallel()

	m, ws := newInboxView(t)
	m, _ = press(m, "s") // unread
	require.Equal(t, 2, ws.Inbox.Summary().Unread)

	m, msgs := press(m, "m")
	assert.Contains(t, msgs, tea.Msg(inbox.ChangedMsg{}))
	assert.Equal(t, 1, ws.Inbox.Summary().Unread)

	_, msgs = press(m, "M")
	assert.Equal(t, 0, ws.Inbox.Summary().Unread)
	assert.Contains(t, msgs, tea.Msg(ui.StatusMsg{Text: "Marked 1 notifications read"}))
}

func TestInbox_Delete(t *testing.T) {
	t.Parallel()

	m, ws := newInboxView(t)
	before := ws.Inbox.Len()

	_, _ = press(m, "d")
	assert.Equal(t, before-1, ws.Inbox.Len())
}

func TestInbox_DeleteAllCanBeCancelled(t *testing.T) {
	t.Parallel()

	m, ws := newInboxView(t)
	before := ws.Inbox.Len()

	m, _ = m.Update(testutil.Key("D"))
	require.True(t, m.Confirming())
	assert.Contains(t, m.View(), "Delete all")

	m, _ = m.Update(testutil.Key("esc"))
	assert.False(t, m.Confirming())
	assert.Equal(t, before, ws.Inbox.Len())
}
