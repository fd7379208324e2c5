package model

import (
	"slices"
	"strings"
	"time"
)

// Message is a chat line posted in the team channel.
type Message struct {
	ID     string    `json:"id"`
	Author Person    `json:"author"`
	Text   string    `json:"text"`
	Sent   time.Time `json:"sent"`

	// Mentions holds the handles referenced with @, in order of first use.
	Mentions []string `json:"mentions,omitempty"`
}

// RecordID implements query.Record.
func (m Message) RecordID() string { return m.ID }

// Attr implements query.Queryable. Messages carry no filterable attributes.
func (m Message) Attr(string) (string, bool) { return "", false }

// SearchFields implements query.Queryable.
func (m Message) SearchFields() []string { return []string{m.Author.Name, m.Text} }

// Timestamp implements query.Queryable.
func (m Message) Timestamp() time.Time { return m.Sent }

// Clone returns a copy of m that shares no memory with it.
func (m Message) Clone() Message {
	m.Mentions = slices.Clone(m.Mentions)
	return m
}

// Validate checks required fields.
func (m Message) Validate() error {
	var errs fieldErrors
	if strings.TrimSpace(m.Text) == "" {
		errs.add("text", "must not be empty")
	}
	if m.Sent.IsZero() {
		errs.add("sent", "is required")
	}
	return errs.err()
}
