package chat_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/ui/chat"
	"github.com/nhle/process-planner/tests/testutil"
)

func newChat(t *testing.T) (chat.Model, *planner.Workspace) {
	t.Helper()
	ws, clock := testutil.NewTestWorkspace(t)
	m := chat.New(ws.Chat, ws.Members, ws.Me, clock.Now, 100, 30)
	m, _ = m.Update(testutil.Key("i"))
	require.True(t, m.Focused())
	return m, ws
}

func update(m chat.Model, msg tea.Msg) (chat.Model, tea.Cmd) { return m.Update(msg) }

func post(t *testing.T, m chat.Model, text string) (chat.Model, chat.PostedMsg) {
	t.Helper()
	m = testutil.Type(m, update, text)
	m, cmd := m.Update(testutil.Key("enter"))
	require.NotNil(t, cmd)
	posted, ok := cmd().(chat.PostedMsg)
	require.True(t, ok)
	return m, posted
}

func TestChat_PostAsMe(t *testing.T) {
	t.Parallel()

	m, ws := newChat(t)
	before := ws.Chat.Len()
	assert.Equal(t, "John Smith", m.Author().Name)

	m, posted := post(t, m, "hello @johnsmith")
	assert.Equal(t, before+1, ws.Chat.Len())
	assert.Equal(t, []string{"johnsmith"}, posted.Result.Message.Mentions)
	assert.Nil(t, posted.Result.Notification, "no alert for your own mention")
	assert.Contains(t, m.View(), "hello")
}

func TestChat_MentionFromTeammateNotifies(t *testing.T) {
	t.Parallel()

	m, ws := newChat(t)
	unread := ws.Inbox.Summary().Unread

	m, _ = m.Update(testutil.Key("ctrl+a"))
	require.NotEqual(t, ws.Me.ID, m.Author().ID)

	_, posted := post(t, m, "@johnsmith review please")
	require.NotNil(t, posted.Result.Notification)
	assert.Equal(t, model.NotificationMention, posted.Result.Notification.Type)
	assert.Equal(t, unread+1, ws.Inbox.Summary().Unread)
}

func TestChat_EmptyInputIgnoredAndEscBlurs(t *testing.T) {
	t.Parallel()

	m, _ := newChat(t)
	m, cmd := m.Update(testutil.Key("enter"))
	assert.Nil(t, cmd)

	m, cmd = m.Update(testutil.Key("esc"))
	require.NotNil(t, cmd)
	assert.Equal(t, chat.BlurMsg{}, cmd())
	assert.False(t, m.Focused())
}
