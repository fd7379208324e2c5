package planner

import (
	"fmt"
	"time"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
)

// RelativeTime renders t relative to now: "just now", "10m ago", "2h ago",
// "3d ago", "1w ago", or "in 2d" for future times.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	future := d < 0
	if future {
		d = -d
	}
	if d < time.Minute {
		return "just now"
	}

	var s string
	switch {
	case d < time.Hour:
		s = fmt.Sprintf("%dm", int(d/time.Minute))
	case d < day:
		s = fmt.Sprintf("%dh", int(d/time.Hour))
	case d < week:
		s = fmt.Sprintf("%dd", int(d/day))
	default:
		s = fmt.Sprintf("%dw", int(d/week))
	}

	if future {
		return "in " + s
	}
	return s + " ago"
}
