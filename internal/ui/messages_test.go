package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCycle(t *testing.T) {
	t.Parallel()

	opts := []string{"", "todo", "done"}
	tests := []struct {
		name    string
		current string
		want    string
	}{
		{"from empty", "", "todo"},
		{"middle", "todo", "done"},
		{"wraps", "done", ""},
		{"unknown restarts", "bogus", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Cycle(opts, tt.current))
		})
	}

	assert.Equal(t, "", Cycle(nil, "x"))
}

func TestFilterLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "all", FilterLabel(""))
	assert.Equal(t, "high", FilterLabel("high"))
}
