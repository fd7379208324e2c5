package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestStatus_Next(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusInProgress, StatusTodo.Next())
	assert.Equal(t, StatusReview, StatusInProgress.Next())
	assert.Equal(t, StatusDone, StatusReview.Next())
	assert.Equal(t, StatusTodo, StatusDone.Next())
	assert.Equal(t, StatusTodo, Status("bogus").Next())
}

func TestPerson_Handle(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "johnsmith", Person{Name: "John Smith"}.Handle())
	assert.Equal(t, "maryjane", Person{Name: "  Mary   Jane "}.Handle())
}

func TestTask_Validate(t *testing.T) {
	t.Parallel()

	valid := Task{ID: "1", Title: "Write docs", Status: StatusTodo, Priority: PriorityLow, DueDate: refNow}

	tests := []struct {
		name   string
		mutate func(*Task)
		fields []string
	}{
		{name: "valid", mutate: func(*Task) {}},
		{name: "blank title", mutate: func(t *Task) { t.Title = " " }, fields: []string{"title"}},
		{name: "bad enums", mutate: func(t *Task) { t.Status = "x"; t.Priority = "y" }, fields: []string{"status", "priority"}},
		{name: "no due date", mutate: func(t *Task) { t.DueDate = time.Time{} }, fields: []string{"due_date"}},
		{name: "negative progress", mutate: func(t *Task) { t.Progress = -1 }, fields: []string{"progress"}},
		{name: "done below 100", mutate: func(t *Task) { t.Status = StatusDone; t.Progress = 50 }, fields: []string{"progress"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			task := valid
			tt.mutate(&task)
			err := task.Validate()
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.ErrorIs(t, err, ErrValidation)
			for _, f := range tt.fields {
				assert.True(t, verr.Has(f), "missing %s in %v", f, err)
			}
			assert.Len(t, verr.Errors, len(tt.fields))
		})
	}
}

func TestTask_IsOverdue(t *testing.T) {
	t.Parallel()

	past := Task{Status: StatusTodo, DueDate: refNow.Add(-time.Hour)}
	assert.True(t, past.IsOverdue(refNow))

	past.Status = StatusDone
	assert.False(t, past.IsOverdue(refNow))

	future := Task{Status: StatusTodo, DueDate: refNow.Add(time.Hour)}
	assert.False(t, future.IsOverdue(refNow))
	assert.False(t, Task{Status: StatusTodo, DueDate: refNow}.IsOverdue(refNow))
}

func TestTaskPatch_Apply(t *testing.T) {
	t.Parallel()

	orig := Task{ID: "1", Title: "a", Status: StatusTodo, Assignees: []Person{{ID: 1}}}
	title := "b"
	people := []Person{{ID: 2}}
	got := TaskPatch{Title: &title, Assignees: &people}.Apply(orig)

	assert.Equal(t, "b", got.Title)
	assert.Equal(t, StatusTodo, got.Status)
	assert.Equal(t, []Person{{ID: 2}}, got.Assignees)
	assert.Equal(t, "a", orig.Title)

	people[0].ID = 3
	assert.Equal(t, 2, got.Assignees[0].ID, "patch assignees are copied")
}

func TestNotificationPatch_NeverUnreads(t *testing.T) {
	t.Parallel()

	n := Notification{Read: true}
	assert.True(t, NotificationPatch{}.Apply(n).Read)
	assert.True(t, NotificationPatch{MarkRead: true}.Apply(Notification{}).Read)
}

func TestEvent_Validate_Room(t *testing.T) {
	t.Parallel()

	room := 1
	ev := CalendarEvent{ID: "e", Title: "Sync", Start: refNow, End: refNow.Add(time.Hour), Kind: EventTeam}

	virtualWithRoom := ev
	virtualWithRoom.IsVirtual = true
	virtualWithRoom.Room = &room
	assert.ErrorIs(t, virtualWithRoom.Validate(), ErrValidation)

	inPersonNoRoom := ev
	assert.ErrorIs(t, inPersonNoRoom.Validate(), ErrValidation)

	ok := ev
	ok.Room = &room
	assert.NoError(t, ok.Validate())

	switched := EventPatch{Virtual: &[]bool{true}[0]}.Apply(ok)
	assert.Nil(t, switched.Room)
	assert.NoError(t, switched.Validate())
}
