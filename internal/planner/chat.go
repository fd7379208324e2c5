package planner

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nhle/process-planner/internal/mention"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/query"
)

// maxPreview bounds the message excerpt quoted in a mention notification.
const maxPreview = 60

// ChatSettings controls how chat mentions reach the inbox.
type ChatSettings struct {
	// Handle is the current user's @handle.
	Handle string
	// MentionAlerts enables mention notifications.
	MentionAlerts bool
}

// PostResult describes what a posted message caused.
type PostResult struct {
	Message model.Message
	// Notification is set when the message mentioned the current user.
	Notification *model.Notification
}

// Chat is the team channel. Messages stay local.
type Chat struct {
	env      Env
	store    *query.Store[model.Message]
	inbox    *Inbox
	settings ChatSettings
	log      zerolog.Logger
}

// NewChat creates an empty channel that raises mention notifications in
// inbox.
func NewChat(env Env, inbox *Inbox, settings ChatSettings) *Chat {
	env = env.withDefaults()
	log := env.Log.With().Str("component", "chat").Logger()
	return &Chat{
		env:      env,
		store:    query.NewStore(query.WithLogger[model.Message](log)),
		inbox:    inbox,
		settings: settings,
		log:      log,
	}
}

// Load inserts existing messages, deriving their mentions.
func (c *Chat) Load(msgs []model.Message) error {
	for _, m := range msgs {
		m.Mentions = mention.Extract(m.Text)
		if err := c.store.Insert(m); err != nil {
			return fmt.Errorf("loading message: %w", err)
		}
	}
	return nil
}

// Settings returns the current chat settings.
func (c *Chat) Settings() ChatSettings { return c.settings }

// SetMentionAlerts toggles mention notifications.
func (c *Chat) SetMentionAlerts(on bool) { c.settings.MentionAlerts = on }

// Post stores a message from author. When mention alerts are on and the
// text mentions the current user or @everyone, a mention notification is
// pushed to the inbox. Users are not notified of their own messages.
func (c *Chat) Post(author model.Person, text string) (PostResult, error) {
	m := model.Message{
		ID:       c.env.NewID(),
		Author:   author,
		Text:     strings.TrimSpace(text),
		Sent:     c.env.Now(),
		Mentions: mention.Extract(text),
	}
	if err := c.store.Insert(m); err != nil {
		return PostResult{}, fmt.Errorf("posting message: %w", err)
	}
	c.log.Debug().Str("id", m.ID).Strs("mentions", m.Mentions).Msg("message posted")

	res := PostResult{Message: m}
	if !c.settings.MentionAlerts || c.inbox == nil {
		return res, nil
	}
	if strings.EqualFold(author.Handle(), c.settings.Handle) {
		return res, nil
	}
	if !mention.Targets(m.Mentions, c.settings.Handle) {
		return res, nil
	}

	content := fmt.Sprintf("@%s mentioned you: %q", author.Handle(), preview(m.Text))
	n, err := c.inbox.Push(model.NotificationMention, content, "")
	if err != nil {
		return res, fmt.Errorf("notifying mention: %w", err)
	}
	res.Notification = &n
	return res, nil
}

// Messages returns the conversation oldest first.
func (c *Chat) Messages() []model.Message {
	return query.SortStable(c.store.All(), func(a, b model.Message) int { return a.Sent.Compare(b.Sent) })
}

// Search returns the messages whose author or text contains text.
func (c *Chat) Search(text string) []model.Message {
	return query.Filter(c.Messages(), query.Criteria{SearchText: text})
}

// Len returns the number of messages.
func (c *Chat) Len() int { return c.store.Len() }

func preview(text string) string {
	r := []rune(text)
	if len(r) <= maxPreview {
		return text
	}
	return string(r[:maxPreview-3]) + "..."
}
