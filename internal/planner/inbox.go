package planner

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/query"
)

// Inbox page filters.
const (
	FilterAll    = "all"
	FilterUnread = "unread"
)

// InboxFilters lists the page filters in tab order.
var InboxFilters = []string{
	FilterAll,
	FilterUnread,
	string(model.NotificationMention),
	string(model.NotificationDeadline),
	string(model.NotificationUpdate),
}

// InboxFilter maps a page filter name to criteria. Any name other than
// "all" and "unread" constrains the notification type, so an unknown name
// matches nothing.
func InboxFilter(name string) query.Criteria {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", FilterAll:
		return query.Criteria{}
	case FilterUnread:
		return query.Criteria{ReadState: query.ReadUnread}
	}
	return query.Criteria{Type: name}
}

// NotificationSummary is the derived view of the inbox.
type NotificationSummary struct {
	Total  int
	Unread int
	ByType query.Counts
}

// SummarizeNotifications computes the inbox summary.
func SummarizeNotifications(ns []model.Notification) NotificationSummary {
	return NotificationSummary{
		Total:  len(ns),
		Unread: query.CountWhere(ns, func(n model.Notification) bool { return !n.Read }),
		ByType: query.CountBy(ns, model.AttrType, model.NotificationTypeKeys()),
	}
}

// Inbox holds the user's notifications.
type Inbox struct {
	env   Env
	store *query.Store[model.Notification]
	log   zerolog.Logger

	// reminded tracks tasks that already got a deadline reminder, so a
	// deleted reminder is not raised again.
	reminded map[string]bool
}

// NewInbox creates an empty inbox.
func NewInbox(env Env) *Inbox {
	env = env.withDefaults()
	log := env.Log.With().Str("component", "inbox").Logger()
	return &Inbox{
		env:      env,
		store:    query.NewStore(query.WithLogger[model.Notification](log)),
		log:      log,
		reminded: make(map[string]bool),
	}
}

// Load inserts existing notifications as they are.
func (in *Inbox) Load(ns []model.Notification) error {
	for _, n := range ns {
		if err := in.store.Insert(n); err != nil {
			return fmt.Errorf("loading notification %q: %w", n.Content, err)
		}
		if n.Type == model.NotificationDeadline && n.TaskID != "" {
			in.reminded[n.TaskID] = true
		}
	}
	return nil
}

// Push adds an unread notification stamped with the current time.
func (in *Inbox) Push(typ model.NotificationType, content, taskID string) (model.Notification, error) {
	n := model.Notification{
		ID:      in.env.NewID(),
		Type:    typ,
		Content: strings.TrimSpace(content),
		Time:    in.env.Now(),
		TaskID:  taskID,
	}
	if err := in.store.Insert(n); err != nil {
		return model.Notification{}, fmt.Errorf("pushing notification: %w", err)
	}
	in.log.Info().Str("id", n.ID).Str("type", string(typ)).Msg("notification pushed")
	return n, nil
}

// Get returns the notification with the given id.
func (in *Inbox) Get(id string) (model.Notification, bool) { return in.store.Get(id) }

// MarkRead marks one notification read. Marking a read one again is a no-op.
func (in *Inbox) MarkRead(id string) error {
	if _, err := in.store.Update(id, model.NotificationPatch{MarkRead: true}.Apply); err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllRead marks every notification read and returns how many changed.
func (in *Inbox) MarkAllRead() int {
	n := 0
	for _, item := range in.store.All() {
		if item.Read {
			continue
		}
		if _, err := in.store.Update(item.ID, model.NotificationPatch{MarkRead: true}.Apply); err == nil {
			n++
		}
	}
	return n
}

// Delete removes a notification. Unknown ids are ignored.
func (in *Inbox) Delete(id string) bool {
	ok := in.store.Delete(id)
	if ok {
		in.log.Info().Str("id", id).Msg("notification deleted")
	}
	return ok
}

// DeleteAll clears the inbox and returns how many notifications it held.
func (in *Inbox) DeleteAll() int {
	n := in.store.DeleteAll()
	in.log.Info().Int("removed", n).Msg("inbox cleared")
	return n
}

// All returns every notification in insertion order.
func (in *Inbox) All() []model.Notification { return in.store.All() }

// Len returns the number of notifications.
func (in *Inbox) Len() int { return in.store.Len() }

// List returns the notifications matching c, newest first.
func (in *Inbox) List(c query.Criteria) []model.Notification {
	return query.SortStable(query.Filter(in.store.All(), c), func(a, b model.Notification) int {
		return b.Time.Compare(a.Time)
	})
}

// Summary summarizes the whole inbox.
func (in *Inbox) Summary() NotificationSummary {
	return SummarizeNotifications(in.store.All())
}

// RemindDeadlines pushes a deadline notification for each open task due
// within window of now or already overdue. A task is reminded at most once.
func (in *Inbox) RemindDeadlines(tasks []model.Task, now time.Time, window time.Duration) ([]model.Notification, error) {
	var pushed []model.Notification
	for _, t := range DueSoon(tasks, now, window) {
		if in.reminded[t.ID] {
			continue
		}

		content := fmt.Sprintf("Deadline approaching: %s is due %s", t.Title, RelativeTime(t.DueDate, now))
		if t.IsOverdue(now) {
			content = fmt.Sprintf("Overdue: %s was due %s", t.Title, RelativeTime(t.DueDate, now))
		}

		n, err := in.Push(model.NotificationDeadline, content, t.ID)
		if err != nil {
			return pushed, err
		}
		in.reminded[t.ID] = true
		pushed = append(pushed, n)
	}
	return pushed, nil
}
