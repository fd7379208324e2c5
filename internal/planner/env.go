// Package planner implements the pages of the process planner on top of the
// query engine: the task board, the notification inbox, the calendar, the
// team chat and the dashboard. Each service owns its store and is meant to
// be driven by a single caller.
package planner

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Env carries the collaborators every service needs. Zero fields fall back
// to the wall clock, random UUIDs and a no-op logger.
type Env struct {
	Now   func() time.Time
	NewID func() string
	Log   zerolog.Logger
}

func (e Env) withDefaults() Env {
	if e.Now == nil {
		e.Now = time.Now
	}
	if e.NewID == nil {
		e.NewID = uuid.NewString
	}
	return e
}
