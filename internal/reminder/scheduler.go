package reminder

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is a tea.Msg sent each time the reminder interval elapses.
// The receiver runs the deadline sweep on the update loop.
type TickMsg struct {
	At time.Time

	// Source is the scheduler that emitted the tick.
	Source *Scheduler
}

// defaultInterval is used when the configured interval is not positive.
const defaultInterval = 60 * time.Second

// Scheduler drives periodic deadline sweeps. It only emits messages; it
// never touches planner state itself.
type Scheduler struct {
	interval  time.Duration
	now       func() time.Time
	tickCh    chan TickMsg
	triggerCh chan struct{}
	stopCh    chan struct{}
	wg        gosync.WaitGroup
	mu        gosync.Mutex
	running   bool
	stopped   bool
	lastTick  time.Time
}

// New creates a scheduler ticking every interval. now may be nil, in which
// case time.Now is used.
func New(interval time.Duration, now func() time.Time) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		interval:  interval,
		now:       now,
		tickCh:    make(chan TickMsg, 1),
		triggerCh: make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
	}
}

// Interval returns the tick interval.
func (s *Scheduler) Interval() time.Duration { return s.interval }

// Start launches the ticker goroutine and returns a tea.Cmd that waits for
// the first tick. Calling Start on a running or stopped scheduler returns
// nil; a stopped scheduler cannot be restarted.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()

	return s.waitForTick()
}

// Stop halts the ticker goroutine and waits for it to exit. It is safe to
// call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.running = false
	s.stopped = true
	s.mu.Unlock()

	s.wg.Wait()
}

// Running reports whether the ticker goroutine is active.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// LastTick returns the time of the most recent tick, zero before the first.
func (s *Scheduler) LastTick() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTick
}

// Trigger requests an immediate tick without waiting for the interval.
func (s *Scheduler) Trigger() {
	select {
	case s.triggerCh <- struct{}{}:
	default:
		// A trigger is already pending.
	}
}

// Owns reports whether msg was emitted by s. Ticks left over from a
// replaced scheduler are not owned by its successor.
func (s *Scheduler) Owns(msg TickMsg) bool { return msg.Source == s }

// WaitForNextTick returns a tea.Cmd that waits for the next tick. This
// should be called after handling a TickMsg to keep listening.
func (s *Scheduler) WaitForNextTick() tea.Cmd {
	return s.waitForTick()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.emit()
		case <-s.triggerCh:
			s.emit()
		}
	}
}

// emit sends a TickMsg without blocking. A tick that nobody has consumed
// yet is not duplicated.
func (s *Scheduler) emit() {
	msg := TickMsg{At: s.now(), Source: s}

	s.mu.Lock()
	s.lastTick = msg.At
	s.mu.Unlock()

	select {
	case s.tickCh <- msg:
	default:
	}
}

// waitForTick returns a tea.Cmd that blocks until a tick arrives or the
// scheduler stops. A stopped scheduler yields a nil message.
func (s *Scheduler) waitForTick() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.tickCh:
			return msg
		case <-s.stopCh:
			return nil
		}
	}
}
