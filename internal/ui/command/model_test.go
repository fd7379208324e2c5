package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/ui/command"
	"github.com/nhle/process-planner/tests/testutil"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  command.CommandMsg
	}{
		{"exact", "tasks", command.CommandMsg{Name: command.CmdTasks, Args: []string{}, Known: true}},
		{"alias", "inbox", command.CommandMsg{Name: command.CmdNotifications, Args: []string{}, Known: true}},
		{"unique prefix", "new-e", command.CommandMsg{Name: command.CmdNewEvent, Args: []string{}, Known: true}},
		{"ambiguous prefix", "new", command.CommandMsg{Name: "new", Args: []string{}}},
		{"args and case", "  Chat hello ", command.CommandMsg{Name: command.CmdChat, Args: []string{"hello"}, Known: true}},
		{"unknown", "bogus", command.CommandMsg{Name: "bogus", Args: []string{}}},
		{"empty", "   ", command.CommandMsg{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, command.Parse(tt.input))
		})
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{command.CmdNewEvent, command.CmdNewTask}, command.Complete("new"))
	assert.Len(t, command.Complete(""), len(command.Commands))
	assert.Empty(t, command.Complete("zzz"))
}

func TestModel_EnterEmitsCommand(t *testing.T) {
	t.Parallel()

	m := command.New(80, 20)
	m = testutil.Type(m, command.Model.Update, "cal")

	m, cmd := m.Update(testutil.Key("enter"))
	require.NotNil(t, cmd)
	msg, ok := cmd().(command.CommandMsg)
	require.True(t, ok)
	assert.Equal(t, command.CmdCalendar, msg.Name)
	assert.Empty(t, m.Value())
}

func TestModel_TabCompletes(t *testing.T) {
	t.Parallel()

	m := command.New(80, 20)
	m = testutil.Type(m, command.Model.Update, "sett")
	m, _ = m.Update(testutil.Key("tab"))
	assert.Equal(t, command.CmdSettings, m.Value())
	assert.Contains(t, m.View(), "Edit settings")
}

func TestModel_EmptyEnterIsNoop(t *testing.T) {
	t.Parallel()

	m := command.New(80, 20)
	_, cmd := m.Update(testutil.Key("enter"))
	assert.Nil(t, cmd)
}
