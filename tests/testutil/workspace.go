package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/nhle/process-planner/internal/fixture"
	"github.com/nhle/process-planner/internal/logger"
	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
)

// Now is the fixed instant test workspaces are seeded against.
var Now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// Clock is a settable clock for tests.
type Clock struct {
	t time.Time
}

// NewClock returns a clock stopped at Now.
func NewClock() *Clock { return &Clock{t: Now} }

// Now returns the current fake time.
func (c *Clock) Now() time.Time { return c.t }

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// SequentialIDs returns a generator yielding prefix-1, prefix-2, ...
func SequentialIDs(prefix string) func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// NewTestEnv returns an Env with a fixed clock, sequential IDs and no logging.
func NewTestEnv(clock *Clock) planner.Env {
	return planner.Env{
		Now:   clock.Now,
		NewID: SequentialIDs("id"),
		Log:   logger.Nop(),
	}
}

// NewTestWorkspace creates a workspace seeded from the embedded fixture
// at Now, with the default configuration.
func NewTestWorkspace(t *testing.T) (*planner.Workspace, *Clock) {
	t.Helper()

	clock := NewClock()
	env := NewTestEnv(clock)

	seed, err := fixture.Default(clock.Now(), SequentialIDs("seed"))
	if err != nil {
		t.Fatalf("loading seed: %v", err)
	}

	ws, err := planner.NewWorkspace(env, model.DefaultAppConfig(), seed)
	if err != nil {
		t.Fatalf("creating test workspace: %v", err)
	}

	return ws, clock
}
