package planner_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/tests/testutil"
)

var (
	john  = model.Person{ID: 1, Name: "John Smith"}
	sarah = model.Person{ID: 2, Name: "Sarah Williams"}
)

func newChat(t *testing.T, alerts bool) (*planner.Chat, *planner.Inbox, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock()
	env := testutil.NewTestEnv(clock)
	inbox := planner.NewInbox(env)
	chat := planner.NewChat(env, inbox, planner.ChatSettings{Handle: "johnsmith", MentionAlerts: alerts})
	return chat, inbox, clock
}

func TestChat_Post(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		author   model.Person
		text     string
		alerts   bool
		notified bool
		mentions []string
	}{
		{name: "direct mention", author: sarah, text: "hey @johnsmith can you review?", alerts: true, notified: true, mentions: []string{"johnsmith"}},
		{name: "mention is case-insensitive", author: sarah, text: "@JohnSmith ping", alerts: true, notified: true, mentions: []string{"JohnSmith"}},
		{name: "everyone", author: sarah, text: "@everyone standup in 5", alerts: true, notified: true, mentions: []string{"everyone"}},
		{name: "someone else", author: sarah, text: "@michaeljohnson thoughts?", alerts: true, notified: false, mentions: []string{"michaeljohnson"}},
		{name: "no mention", author: sarah, text: "lunch?", alerts: true, notified: false},
		{name: "alerts disabled", author: sarah, text: "@johnsmith hello", alerts: false, notified: false, mentions: []string{"johnsmith"}},
		{name: "own message", author: john, text: "@everyone I'm out today", alerts: true, notified: false, mentions: []string{"everyone"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			chat, inbox, clock := newChat(t, tt.alerts)

			res, err := chat.Post(tt.author, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.mentions, res.Message.Mentions)
			assert.Equal(t, clock.Now(), res.Message.Sent)

			if !tt.notified {
				assert.Nil(t, res.Notification)
				assert.Zero(t, inbox.Len())
				return
			}
			require.NotNil(t, res.Notification)
			assert.Equal(t, model.NotificationMention, res.Notification.Type)
			assert.True(t, strings.HasPrefix(res.Notification.Content, "@"+tt.author.Handle()+" mentioned you"))
			assert.Equal(t, 1, inbox.Summary().Unread)
		})
	}
}

func TestChat_Post_Validation(t *testing.T) {
	t.Parallel()

	chat, _, _ := newChat(t, true)
	_, err := chat.Post(sarah, "   ")
	require.ErrorIs(t, err, model.ErrValidation)
	assert.Zero(t, chat.Len())
}

func TestChat_ToggleAlerts(t *testing.T) {
	t.Parallel()

	chat, inbox, _ := newChat(t, true)
	chat.SetMentionAlerts(false)
	assert.False(t, chat.Settings().MentionAlerts)

	_, err := chat.Post(sarah, "@johnsmith hi")
	require.NoError(t, err)
	assert.Zero(t, inbox.Len())
}

func TestChat_LongMessagePreview(t *testing.T) {
	t.Parallel()

	chat, _, _ := newChat(t, true)
	res, err := chat.Post(sarah, "@johnsmith "+strings.Repeat("very long update ", 10))
	require.NoError(t, err)
	require.NotNil(t, res.Notification)
	assert.Contains(t, res.Notification.Content, `..."`)
}

func TestChat_MessagesAndSearch(t *testing.T) {
	t.Parallel()

	ws, clock := testutil.NewTestWorkspace(t)
	clock.Advance(time.Minute)
	_, err := ws.Chat.Post(ws.Me, "Mockups look great")
	require.NoError(t, err)

	msgs := ws.Chat.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, "Welcome everyone to the UX Design team chat!", msgs[0].Text)
	assert.Equal(t, "Mockups look great", msgs[3].Text)

	assert.Len(t, ws.Chat.Search("mockups"), 2)
	assert.Len(t, ws.Chat.Search("sarah williams"), 1)
}
