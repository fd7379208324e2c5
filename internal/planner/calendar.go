package planner

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/query"
)

// DefaultEventLength is used when an event is created without an end.
const DefaultEventLength = time.Hour

// EventInput holds the fields of a new event.
type EventInput struct {
	Title       string
	Description string
	Kind        model.EventKind
	Start       time.Time
	End         time.Time
	Virtual     bool
	Room        *int
	Attendees   []int
}

// EventSummary is the derived view of the calendar at one instant.
type EventSummary struct {
	Total    int
	Upcoming int
	Virtual  int
	InPerson int
}

// SummarizeEvents computes the calendar summary.
func SummarizeEvents(events []model.CalendarEvent, now time.Time) EventSummary {
	virtual := query.CountWhere(events, func(e model.CalendarEvent) bool { return e.IsVirtual })
	return EventSummary{
		Total:    len(events),
		Upcoming: query.CountWhere(events, func(e model.CalendarEvent) bool { return !e.Start.Before(now) }),
		Virtual:  virtual,
		InPerson: len(events) - virtual,
	}
}

// Calendar holds meetings and the rooms they can book.
type Calendar struct {
	env   Env
	store *query.Store[model.CalendarEvent]
	rooms []model.Room
	log   zerolog.Logger
}

// NewCalendar creates an empty calendar over the given rooms.
func NewCalendar(env Env, rooms []model.Room) *Calendar {
	env = env.withDefaults()
	log := env.Log.With().Str("component", "calendar").Logger()
	return &Calendar{
		env: env,
		store: query.NewStore(
			query.WithNormalizer(model.NormalizeEvent),
			query.WithLogger[model.CalendarEvent](log),
		),
		rooms: slices.Clone(rooms),
		log:   log,
	}
}

// Load inserts existing events as they are.
func (c *Calendar) Load(events []model.CalendarEvent) error {
	for _, e := range events {
		if err := c.store.Insert(e); err != nil {
			return fmt.Errorf("loading event %q: %w", e.Title, err)
		}
	}
	return nil
}

// Rooms returns every room.
func (c *Calendar) Rooms() []model.Room { return slices.Clone(c.rooms) }

// AvailableRooms returns the rooms that can be booked.
func (c *Calendar) AvailableRooms() []model.Room {
	var out []model.Room
	for _, r := range c.rooms {
		if r.Available {
			out = append(out, r)
		}
	}
	return out
}

// Room returns the room with the given id.
func (c *Calendar) Room(id int) (model.Room, bool) {
	for _, r := range c.rooms {
		if r.ID == id {
			return r, true
		}
	}
	return model.Room{}, false
}

// Create schedules a new event. Virtual events drop any room; in-person
// events need an available room.
func (c *Calendar) Create(in EventInput) (model.CalendarEvent, error) {
	e := model.CalendarEvent{
		ID:          c.env.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Kind:        in.Kind,
		Start:       in.Start,
		End:         in.End,
		IsVirtual:   in.Virtual,
		Room:        in.Room,
		Attendees:   in.Attendees,
	}
	if e.End.IsZero() && !e.Start.IsZero() {
		e.End = e.Start.Add(DefaultEventLength)
	}
	if e.IsVirtual {
		e.Room = nil
	}
	if err := c.checkRoom(e); err != nil {
		return model.CalendarEvent{}, fmt.Errorf("creating event: %w", err)
	}

	if err := c.store.Insert(e); err != nil {
		return model.CalendarEvent{}, fmt.Errorf("creating event: %w", err)
	}
	created, _ := c.store.Get(e.ID)
	c.log.Info().Str("id", created.ID).Str("title", created.Title).Msg("event created")
	return created, nil
}

// Update applies a partial update, checking the room again.
func (c *Calendar) Update(id string, patch model.EventPatch) (model.CalendarEvent, error) {
	if cur, ok := c.store.Get(id); ok {
		if err := c.checkRoom(patch.Apply(cur)); err != nil {
			return model.CalendarEvent{}, fmt.Errorf("updating event %s: %w", id, err)
		}
	}
	e, err := c.store.Update(id, patch.Apply)
	if err != nil {
		return model.CalendarEvent{}, fmt.Errorf("updating event %s: %w", id, err)
	}
	return e, nil
}

// checkRoom rejects bookings of rooms that do not exist or are busy.
func (c *Calendar) checkRoom(e model.CalendarEvent) error {
	if e.IsVirtual || e.Room == nil {
		return nil
	}
	room, ok := c.Room(*e.Room)
	if !ok {
		return model.NewValidationError("room", fmt.Sprintf("unknown room %d", *e.Room))
	}
	if !room.Available {
		return model.NewValidationError("room", room.Name+" is not available")
	}
	return nil
}

// Get returns the event with the given id.
func (c *Calendar) Get(id string) (model.CalendarEvent, bool) { return c.store.Get(id) }

// Delete removes an event. Unknown ids are ignored.
func (c *Calendar) Delete(id string) bool {
	ok := c.store.Delete(id)
	if ok {
		c.log.Info().Str("id", id).Msg("event deleted")
	}
	return ok
}

// All returns every event in insertion order.
func (c *Calendar) All() []model.CalendarEvent { return c.store.All() }

// Len returns the number of events.
func (c *Calendar) Len() int { return c.store.Len() }

// List returns the events matching crit in insertion order.
func (c *Calendar) List(crit query.Criteria) []model.CalendarEvent {
	return query.Filter(c.store.All(), crit)
}

// Upcoming returns the events starting at or after now, soonest first.
func (c *Calendar) Upcoming(now time.Time) []model.CalendarEvent {
	return byStart(query.Filter(c.store.All(), query.Criteria{OnOrAfter: &now}))
}

// Between returns the events starting in [from, to), soonest first.
func (c *Calendar) Between(from, to time.Time) []model.CalendarEvent {
	var out []model.CalendarEvent
	for _, e := range c.store.All() {
		if !e.Start.Before(from) && e.Start.Before(to) {
			out = append(out, e)
		}
	}
	return byStart(out)
}

// Summary summarizes the calendar at the current time.
func (c *Calendar) Summary() EventSummary {
	return SummarizeEvents(c.store.All(), c.env.Now())
}

func byStart(events []model.CalendarEvent) []model.CalendarEvent {
	return query.SortStable(events, func(a, b model.CalendarEvent) int { return a.Start.Compare(b.Start) })
}
