package model

import (
	"slices"
	"strings"
	"time"
)

// EventKind is the meeting category, used for coloring.
type EventKind string

const (
	EventTeam    EventKind = "team"
	EventProduct EventKind = "product"
	EventDesign  EventKind = "design"
	EventClient  EventKind = "client"
	EventOther   EventKind = "other"
)

// EventKinds lists every kind in display order.
var EventKinds = []EventKind{EventTeam, EventProduct, EventDesign, EventClient, EventOther}

func (k EventKind) String() string { return string(k) }

func (k EventKind) IsValid() bool {
	switch k {
	case EventTeam, EventProduct, EventDesign, EventClient, EventOther:
		return true
	}
	return false
}

// Room is a bookable meeting room.
type Room struct {
	ID        int    `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Capacity  int    `json:"capacity" yaml:"capacity"`
	Available bool   `json:"available" yaml:"available"`
}

// CalendarEvent is a meeting on the calendar.
type CalendarEvent struct {
	ID    string `json:"id"`
	Title string `json:"title"`

	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Kind EventKind `json:"kind"`

	// IsVirtual events have no room; in-person events must have one.
	IsVirtual bool `json:"is_virtual"`
	Room      *int `json:"room,omitempty"`

	// Attendees holds person IDs, unique.
	Attendees   []int  `json:"attendees,omitempty"`
	Description string `json:"description"`
}

// RecordID implements query.Record.
func (e CalendarEvent) RecordID() string { return e.ID }

// Attr implements query.Queryable.
func (e CalendarEvent) Attr(name string) (string, bool) {
	if name == AttrType {
		return string(e.Kind), true
	}
	return "", false
}

// SearchFields implements query.Queryable.
func (e CalendarEvent) SearchFields() []string { return []string{e.Title, e.Description} }

// Timestamp implements query.Queryable.
func (e CalendarEvent) Timestamp() time.Time { return e.Start }

// Duration returns End - Start.
func (e CalendarEvent) Duration() time.Duration { return e.End.Sub(e.Start) }

// Validate checks required fields, the time range and the room rule.
func (e CalendarEvent) Validate() error {
	var errs fieldErrors
	if strings.TrimSpace(e.Title) == "" {
		errs.add("title", "must not be empty")
	}
	if e.Start.IsZero() {
		errs.add("start", "is required")
	}
	if e.End.IsZero() {
		errs.add("end", "is required")
	}
	if !e.Start.IsZero() && !e.End.IsZero() && e.End.Before(e.Start) {
		errs.add("end", "must not be before start")
	}
	if !e.Kind.IsValid() {
		errs.add("kind", "unknown kind "+quote(string(e.Kind)))
	}
	if e.IsVirtual && e.Room != nil {
		errs.add("room", "must be empty for virtual events")
	}
	if !e.IsVirtual && e.Room == nil {
		errs.add("room", "is required for in-person events")
	}
	seen := make(map[int]bool, len(e.Attendees))
	for _, id := range e.Attendees {
		if seen[id] {
			errs.add("attendees", "duplicate attendee")
			break
		}
		seen[id] = true
	}
	return errs.err()
}

// Clone returns a copy of e that shares no memory with it.
func (e CalendarEvent) Clone() CalendarEvent {
	e.Attendees = slices.Clone(e.Attendees)
	return e
}

// NormalizeEvent trims the title and defaults the kind.
func NormalizeEvent(e CalendarEvent) CalendarEvent {
	e.Title = strings.TrimSpace(e.Title)
	if e.Kind == "" {
		e.Kind = EventOther
	}
	return e.Clone()
}

// EventPatch is a partial update. Nil fields are left unchanged.
type EventPatch struct {
	Title       *string
	Description *string
	Start       *time.Time
	End         *time.Time
	// Virtual switches the event online (dropping the room) or to Room.
	Virtual *bool
	Room    *int
}

// Apply merges the patch into e and returns the result.
func (p EventPatch) Apply(e CalendarEvent) CalendarEvent {
	if p.Title != nil {
		e.Title = *p.Title
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Start != nil {
		e.Start = *p.Start
	}
	if p.End != nil {
		e.End = *p.End
	}
	if p.Virtual != nil {
		e.IsVirtual = *p.Virtual
		if e.IsVirtual {
			e.Room = nil
		}
	}
	if p.Room != nil {
		room := *p.Room
		e.Room = &room
	}
	return e
}
