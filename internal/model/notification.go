package model

import (
	"strconv"
	"strings"
	"time"
)

// NotificationType classifies a notification.
type NotificationType string

const (
	NotificationMention  NotificationType = "mention"
	NotificationDeadline NotificationType = "deadline"
	NotificationUpdate   NotificationType = "update"
)

// NotificationTypes lists every type in display order.
var NotificationTypes = []NotificationType{
	NotificationMention,
	NotificationDeadline,
	NotificationUpdate,
}

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationMention, NotificationDeadline, NotificationUpdate:
		return true
	}
	return false
}

// NotificationTypeKeys returns the types as plain strings, for counting.
func NotificationTypeKeys() []string {
	keys := make([]string, len(NotificationTypes))
	for i, t := range NotificationTypes {
		keys[i] = string(t)
	}
	return keys
}

// Notification represents an alert surfaced to the user.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	Type NotificationType `json:"type"`

	// Content is the human-readable notification text.
	Content string `json:"content"`

	// Time is when the notification was generated.
	Time time.Time `json:"time"`

	// Read indicates whether the user has seen this notification.
	// Nothing in the planner flips it back to false.
	Read bool `json:"read"`

	// TaskID links deadline reminders to the task they are about.
	TaskID string `json:"task_id,omitempty"`
}

// RecordID implements query.Record.
func (n Notification) RecordID() string { return n.ID }

// Attr implements query.Queryable.
func (n Notification) Attr(name string) (string, bool) {
	switch name {
	case AttrType:
		return string(n.Type), true
	case AttrRead:
		return strconv.FormatBool(n.Read), true
	}
	return "", false
}

// SearchFields implements query.Queryable.
func (n Notification) SearchFields() []string { return []string{n.Content} }

// Timestamp implements query.Queryable.
func (n Notification) Timestamp() time.Time { return n.Time }

// Validate checks required fields.
func (n Notification) Validate() error {
	var errs fieldErrors
	if strings.TrimSpace(n.Content) == "" {
		errs.add("content", "must not be empty")
	}
	if !n.Type.IsValid() {
		errs.add("type", "unknown type "+quote(string(n.Type)))
	}
	if n.Time.IsZero() {
		errs.add("time", "is required")
	}
	return errs.err()
}

// NotificationPatch is a partial update. Read can only be raised to true.
type NotificationPatch struct {
	Content  *string
	MarkRead bool
}

// Apply merges the patch into n and returns the result.
func (p NotificationPatch) Apply(n Notification) Notification {
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.MarkRead {
		n.Read = true
	}
	return n
}
