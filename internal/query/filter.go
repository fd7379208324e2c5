package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/nhle/process-planner/internal/model"
)

// Queryable is implemented by records that can be filtered and grouped.
type Queryable interface {
	Record
	// Attr returns the value of a named attribute and whether the record
	// kind has it at all.
	Attr(name string) (string, bool)
	// SearchFields returns the text a search query is matched against.
	SearchFields() []string
	// Timestamp is the record's primary point in time.
	Timestamp() time.Time
}

// ReadState constrains notifications by their read flag.
type ReadState int

const (
	ReadAll ReadState = iota
	ReadUnread
)

// Criteria is a conjunction of optional constraints. Empty values and any
// casing of "all" impose no constraint.
type Criteria struct {
	Status     string
	Priority   string
	Category   string
	Type       string
	ReadState  ReadState
	SearchText string
	OnOrAfter  *time.Time
}

// IsZero reports whether c matches every record.
func (c Criteria) IsZero() bool {
	return unconstrained(c.Status) &&
		unconstrained(c.Priority) &&
		unconstrained(c.Category) &&
		unconstrained(c.Type) &&
		c.ReadState == ReadAll &&
		strings.TrimSpace(c.SearchText) == "" &&
		c.OnOrAfter == nil
}

// Filter returns the records of items matching every constraint of c, in
// their original relative order. items is never modified.
func Filter[T Queryable](items []T, c Criteria) []T {
	out := make([]T, 0, len(items))
	query := strings.ToLower(strings.TrimSpace(c.SearchText))
	for _, item := range items {
		if c.matches(item, query) {
			out = append(out, item)
		}
	}
	return out
}

// Match reports whether a single record satisfies c.
func Match[T Queryable](item T, c Criteria) bool {
	return c.matches(item, strings.ToLower(strings.TrimSpace(c.SearchText)))
}

func (c Criteria) matches(item Queryable, query string) bool {
	if !attrMatches(item, model.AttrStatus, c.Status) ||
		!attrMatches(item, model.AttrPriority, c.Priority) ||
		!attrMatches(item, model.AttrCategory, c.Category) ||
		!attrMatches(item, model.AttrType, c.Type) {
		return false
	}
	if c.ReadState == ReadUnread && !attrMatches(item, model.AttrRead, strconv.FormatBool(false)) {
		return false
	}
	if c.OnOrAfter != nil && item.Timestamp().Before(*c.OnOrAfter) {
		return false
	}
	if query != "" {
		text := strings.ToLower(strings.Join(item.SearchFields(), " "))
		if !strings.Contains(text, query) {
			return false
		}
	}
	return true
}

// attrMatches treats a record without the attribute as a non-match when
// the attribute is constrained.
func attrMatches(item Queryable, name, want string) bool {
	if unconstrained(want) {
		return true
	}
	got, ok := item.Attr(name)
	return ok && got == want
}

func unconstrained(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, "all")
}
