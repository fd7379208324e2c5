package ui

import "slices"

// StatusMsg reports the outcome of an action to the status bar.
type StatusMsg struct {
	Text string
	Err  error
}

// Cycle returns the option after current, wrapping to the first. An unknown
// current value also yields the first option.
func Cycle(options []string, current string) string {
	if len(options) == 0 {
		return ""
	}
	i := slices.Index(options, current)
	return options[(i+1)%len(options)]
}

// FilterLabel renders an empty filter value as "all".
func FilterLabel(v string) string {
	if v == "" {
		return "all"
	}
	return v
}

// FormWidth clamps a huh form to the terminal width.
func FormWidth(width int) int {
	w := width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}
