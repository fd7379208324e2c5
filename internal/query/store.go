// Package query holds the in-memory collection engine shared by every
// planner page: an ordered entity store, a predicate filter, aggregation
// helpers and a grouping/sort projector.
//
// Nothing in this package locks. A Store is owned by a single caller and
// every operation completes synchronously.
package query

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/nhle/process-planner/internal/model"
)

// Record is anything the Store can hold.
type Record interface {
	RecordID() string
	Validate() error
}

// cloner is implemented by records holding slices or maps. The store
// copies such records on the way in and out so callers never share
// memory with what is stored.
type cloner[T any] interface {
	Clone() T
}

// Option configures a Store.
type Option[T Record] func(*Store[T])

// WithNormalizer registers a function applied to every record before it
// is validated on insert and update.
func WithNormalizer[T Record](fn func(T) T) Option[T] {
	return func(s *Store[T]) {
		s.normalize = fn
	}
}

// WithLogger sets the logger used for mutation tracing.
func WithLogger[T Record](l zerolog.Logger) Option[T] {
	return func(s *Store[T]) {
		s.log = l
	}
}

// Store is an ordered, in-memory collection of records of one kind.
// Insertion order is preserved and is the default display order.
type Store[T Record] struct {
	items     []T
	index     map[string]int
	normalize func(T) T
	log       zerolog.Logger
}

// NewStore creates an empty store.
func NewStore[T Record](opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		index: make(map[string]int),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Insert appends rec. It fails with a validation error when the record is
// malformed, has no ID or reuses an existing ID.
func (s *Store[T]) Insert(rec T) error {
	rec = s.prepare(rec)
	id := rec.RecordID()
	if id == "" {
		return model.NewValidationError("id", "is required")
	}
	if _, exists := s.index[id]; exists {
		return model.NewValidationError("id", fmt.Sprintf("%s already exists", id))
	}
	if err := rec.Validate(); err != nil {
		return err
	}

	s.index[id] = len(s.items)
	s.items = append(s.items, clone(rec))
	s.log.Debug().Str("id", id).Int("len", len(s.items)).Msg("record inserted")
	return nil
}

// Update merges a patch into the record with the given id and returns the
// stored result. The record keeps its position. An unknown id yields
// model.ErrNotFound; a patch that produces an invalid record is rejected and
// the stored record is left untouched.
func (s *Store[T]) Update(id string, apply func(T) T) (T, error) {
	var zero T
	pos, ok := s.index[id]
	if !ok {
		return zero, fmt.Errorf("record %s: %w", id, model.ErrNotFound)
	}

	updated := s.prepare(apply(clone(s.items[pos])))
	if updated.RecordID() != id {
		return zero, model.NewValidationError("id", "is immutable")
	}
	if err := updated.Validate(); err != nil {
		return zero, err
	}

	s.items[pos] = clone(updated)
	s.log.Debug().Str("id", id).Msg("record updated")
	return updated, nil
}

// Delete removes the record with the given id. Deleting an unknown id is a
// no-op and reports false.
func (s *Store[T]) Delete(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}

	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].RecordID()] = i
	}
	s.log.Debug().Str("id", id).Int("len", len(s.items)).Msg("record deleted")
	return true
}

// DeleteAll empties the store and returns how many records were removed.
func (s *Store[T]) DeleteAll() int {
	n := len(s.items)
	s.items = nil
	s.index = make(map[string]int)
	if n > 0 {
		s.log.Debug().Int("removed", n).Msg("store cleared")
	}
	return n
}

// Get returns the record with the given id.
func (s *Store[T]) Get(id string) (T, bool) {
	pos, ok := s.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return clone(s.items[pos]), true
}

// All returns a deep copy of every record in insertion order.
func (s *Store[T]) All() []T {
	out := make([]T, len(s.items))
	for i, rec := range s.items {
		out[i] = clone(rec)
	}
	return out
}

// Len returns the number of records.
func (s *Store[T]) Len() int { return len(s.items) }

func (s *Store[T]) prepare(rec T) T {
	if s.normalize != nil {
		return s.normalize(rec)
	}
	return rec
}

func clone[T any](rec T) T {
	if c, ok := any(rec).(cloner[T]); ok {
		return c.Clone()
	}
	return rec
}
