package mention

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "no mentions", text: "plain message", want: nil},
		{name: "single", text: "hey @sarah can you look?", want: []string{"sarah"}},
		{name: "dedupes in first-seen order", text: "@mike @sarah and @mike again", want: []string{"mike", "sarah"}},
		{name: "underscore and digits", text: "ping @john_smith2", want: []string{"john_smith2"}},
		{name: "stops at punctuation", text: "thanks @emily!", want: []string{"emily"}},
		{name: "bare at sign", text: "meet @ 3pm", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestTargets(t *testing.T) {
	t.Parallel()

	assert.True(t, Targets([]string{"sarah", "JohnSmith"}, "johnsmith"))
	assert.True(t, Targets([]string{"everyone"}, "johnsmith"))
	assert.True(t, Targets([]string{"Everyone"}, ""))
	assert.False(t, Targets([]string{"sarah"}, "johnsmith"))
	assert.False(t, Targets(nil, "johnsmith"))
	assert.False(t, Targets([]string{"sarah"}, ""))
}

func TestKnown(t *testing.T) {
	t.Parallel()

	mentions := []string{"sarah", "ghost", "everyone"}
	assert.Equal(t, mentions, Known(mentions, nil))
	assert.Equal(t, []string{"sarah", "everyone"}, Known(mentions, map[string]bool{"sarah": true}))
	assert.Nil(t, Known([]string{"ghost"}, map[string]bool{"sarah": true}))
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	got := Highlight("ping @sarah and @everyone", func(s string) string { return "[" + s + "]" })
	assert.Equal(t, "ping [@sarah] and [@everyone]", got)
	assert.Equal(t, "no handles", Highlight("no handles", strings.ToUpper))
}
