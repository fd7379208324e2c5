package help_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhle/process-planner/internal/keys"
	"github.com/nhle/process-planner/internal/ui/help"
)

func TestView_ListsKeysAndCommands(t *testing.T) {
	t.Parallel()

	m := help.New(keys.DefaultKeyMap(), 160, 60)
	view := m.View()

	assert.Contains(t, view, "Help")
	assert.Contains(t, view, "Notifications")
	assert.Contains(t, view, "toggle past events")
	assert.Contains(t, view, "mark all read")
	assert.Contains(t, view, "new-task")
	assert.Contains(t, view, "Schedule an event")
}
