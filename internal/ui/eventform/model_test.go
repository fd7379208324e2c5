package eventform

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
)

func TestBuildInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fb       formBindings
		wantEnd  time.Time
		wantRoom *int
	}{
		{
			name:    "virtual drops the room",
			fb:      formBindings{title: "Sync", kind: model.EventTeam, date: "2026-03-11", start: "09:30", end: "10:00", virtual: true, room: 2},
			wantEnd: time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC),
		},
		{
			name:     "in person keeps the room",
			fb:       formBindings{title: "Review", kind: model.EventProduct, date: "2026-03-11", start: "09:30", room: 2},
			wantRoom: ptr(2),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			in := buildInput(tt.fb, time.UTC)
			assert.Equal(t, time.Date(2026, 3, 11, 9, 30, 0, 0, time.UTC), in.Start)
			assert.Equal(t, tt.wantEnd, in.End)
			assert.Equal(t, tt.wantRoom, in.Room)
			assert.Equal(t, tt.fb.virtual, in.Virtual)
		})
	}
}

func TestValidators(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validateDate("2026-03-11"))
	assert.Error(t, validateDate(""))
	assert.NoError(t, validateTime(true)("09:00"))
	assert.Error(t, validateTime(true)(""))
	assert.NoError(t, validateTime(false)(""))
	assert.Error(t, validateTime(false)("9am"))
}

func TestStartCreate_DefaultsToNextHour(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 12, 20, 0, 0, time.UTC)
	m := New(nil, func() time.Time { return now }, 80, 30)
	m.StartCreate()

	assert.Equal(t, "2026-03-10", m.fb.date)
	assert.Equal(t, "13:00", m.fb.start)
	assert.True(t, m.fb.virtual)
	assert.Contains(t, m.View(), "New Event")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelMsg{}, cmd())
}

func ptr(v int) *int { return &v }
