package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		header      Header
		wantTitle   string
		wantSession string
	}{
		{
			name:        "reminders off",
			header:      Header{Handle: "alex"},
			wantTitle:   "Process Planner",
			wantSession: "@alex | reminders off",
		},
		{
			name:        "unread and reminders",
			header:      Header{Handle: "alex", Unread: 3, Reminders: time.Minute},
			wantTitle:   "Process Planner [3 unread]",
			wantSession: "@alex | reminders every 1m0s",
		},
		{
			name: "after first check",
			header: Header{
				Handle:    "alex",
				Reminders: 30 * time.Second,
				LastCheck: time.Date(2026, 3, 10, 9, 5, 0, 0, time.UTC),
			},
			wantTitle:   "Process Planner",
			wantSession: "@alex | reminders every 30s | checked 09:05",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantTitle, tt.header.Title())
			assert.Equal(t, tt.wantSession, tt.header.Session())
		})
	}
}

func TestLayout_ContentHeight(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 37, NewLayout(120, 40).ContentHeight())
	assert.Equal(t, 0, NewLayout(120, 2).ContentHeight())
}

func TestLayout_RenderHeader_FillsWidth(t *testing.T) {
	t.Parallel()

	l := NewLayout(100, 30)
	out := l.RenderHeader(Header{Handle: "alex", Unread: 2})
	assert.Contains(t, out, "[2 unread]")
	assert.Contains(t, out, "@alex")
	assert.Equal(t, 100, lipgloss.Width(out))
}

func TestLayout_RenderTabs(t *testing.T) {
	t.Parallel()

	l := NewLayout(120, 30)
	out := l.RenderTabs([]string{"dashboard", "notifications"}, 0, map[string]int{"notifications": 4})
	assert.Contains(t, out, "1 dashboard")
	assert.Contains(t, out, "2 notifications")
	assert.Contains(t, out, "(4)")

	out = l.RenderTabs([]string{"dashboard", "notifications"}, 1, nil)
	assert.NotContains(t, out, "(")
}

func TestLayout_RenderStatusBar(t *testing.T) {
	t.Parallel()

	l := NewLayout(80, 30)
	assert.Contains(t, l.RenderStatusBar(StatusMsg{}, "q quit"), "q quit")

	out := l.RenderStatusBar(StatusMsg{Text: "Task created"}, "q quit")
	assert.Contains(t, out, "Task created")
	assert.NotContains(t, out, "q quit")

	out = l.RenderStatusBar(StatusMsg{Err: errors.New("boom")}, "q quit")
	assert.Contains(t, out, "Error: boom")
}

func TestLayout_Render_ClipsContent(t *testing.T) {
	t.Parallel()

	l := NewLayout(40, 6)
	content := strings.Repeat("line\n", 20)
	out := l.Render("head", "tabs", content, "status")
	assert.Equal(t, 6, lipgloss.Height(out))
	assert.Contains(t, out, "status")
}
