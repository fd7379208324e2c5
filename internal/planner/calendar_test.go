package planner_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
	"github.com/nhle/process-planner/internal/planner"
	"github.com/nhle/process-planner/internal/query"
	"github.com/nhle/process-planner/tests/testutil"
)

func intPtr(v int) *int { return &v }

func titles(events []model.CalendarEvent) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Title
	}
	return out
}

func TestCalendar_Seeded(t *testing.T) {
	t.Parallel()

	ws, clock := testutil.NewTestWorkspace(t)
	cal := ws.Calendar

	assert.Equal(t, planner.EventSummary{Total: 4, Upcoming: 3, Virtual: 2, InPerson: 2}, cal.Summary())
	assert.Equal(t, []string{"Product Review", "Design Workshop", "Client Meeting"}, titles(cal.Upcoming(clock.Now())))
	assert.Equal(t, []string{"Design Workshop"}, titles(cal.List(query.Criteria{Type: "design"})))
	assert.Len(t, cal.Rooms(), 5)
	assert.Len(t, cal.AvailableRooms(), 4)

	from := clock.Now().Add(-3 * 24 * time.Hour)
	assert.Equal(t, []string{"Weekly Team Meeting", "Product Review"}, titles(cal.Between(from, clock.Now().Add(2*time.Hour))))
}

func TestCalendar_Create(t *testing.T) {
	t.Parallel()

	start := testutil.Now.Add(48 * time.Hour)

	t.Run("virtual drops room", func(t *testing.T) {
		t.Parallel()
		ws, _ := testutil.NewTestWorkspace(t)
		ev, err := ws.Calendar.Create(planner.EventInput{Title: "Sync", Start: start, Virtual: true, Room: intPtr(1)})
		require.NoError(t, err)
		assert.Nil(t, ev.Room)
		assert.Equal(t, start.Add(planner.DefaultEventLength), ev.End)
		assert.Equal(t, model.EventOther, ev.Kind)
	})

	t.Run("in person with available room", func(t *testing.T) {
		t.Parallel()
		ws, _ := testutil.NewTestWorkspace(t)
		ev, err := ws.Calendar.Create(planner.EventInput{
			Title: "Planning", Kind: model.EventTeam, Start: start, End: start.Add(30 * time.Minute),
			Room: intPtr(2), Attendees: []int{1, 2},
		})
		require.NoError(t, err)
		require.NotNil(t, ev.Room)
		assert.Equal(t, 2, *ev.Room)
		assert.Equal(t, 5, ws.Calendar.Len())
	})

	tests := []struct {
		name  string
		input planner.EventInput
		field string
	}{
		{name: "in person without room", input: planner.EventInput{Title: "x", Start: start}, field: "room"},
		{name: "busy room", input: planner.EventInput{Title: "x", Start: start, Room: intPtr(4)}, field: "room"},
		{name: "unknown room", input: planner.EventInput{Title: "x", Start: start, Room: intPtr(42)}, field: "room"},
		{name: "end before start", input: planner.EventInput{Title: "x", Start: start, End: start.Add(-time.Hour), Virtual: true}, field: "end"},
		{name: "missing title", input: planner.EventInput{Start: start, Virtual: true}, field: "title"},
		{name: "missing start", input: planner.EventInput{Title: "x", Virtual: true}, field: "start"},
		{name: "duplicate attendee", input: planner.EventInput{Title: "x", Start: start, Virtual: true, Attendees: []int{3, 3}}, field: "attendees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ws, _ := testutil.NewTestWorkspace(t)
			_, err := ws.Calendar.Create(tt.input)

			var verr *model.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has(tt.field), "expected failure on %s, got %v", tt.field, err)
			assert.Equal(t, 4, ws.Calendar.Len())
		})
	}
}

func TestCalendar_UpdateAndDelete(t *testing.T) {
	t.Parallel()

	ws, clock := testutil.NewTestWorkspace(t)
	cal := ws.Calendar
	review := cal.Upcoming(clock.Now())[0]
	require.Equal(t, "Product Review", review.Title)

	virtual := true
	got, err := cal.Update(review.ID, model.EventPatch{Virtual: &virtual})
	require.NoError(t, err)
	assert.True(t, got.IsVirtual)
	assert.Nil(t, got.Room)

	inPerson := false
	_, err = cal.Update(review.ID, model.EventPatch{Virtual: &inPerson, Room: intPtr(4)})
	require.ErrorIs(t, err, model.ErrValidation, "busy room is rejected on update")

	_, err = cal.Update("missing", model.EventPatch{Virtual: &virtual})
	require.ErrorIs(t, err, model.ErrNotFound)

	assert.True(t, cal.Delete(review.ID))
	assert.False(t, cal.Delete(review.ID))
	assert.Equal(t, 3, cal.Len())
}

func TestCalendar_UpcomingTieBreak(t *testing.T) {
	t.Parallel()

	clock := testutil.NewClock()
	cal := planner.NewCalendar(testutil.NewTestEnv(clock), nil)
	start := clock.Now().Add(time.Hour)

	for _, title := range []string{"B", "A", "C"} {
		_, err := cal.Create(planner.EventInput{Title: title, Start: start, Virtual: true})
		require.NoError(t, err)
	}

	got := cal.Upcoming(clock.Now())
	ids := []string{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []string{"id-1", "id-2", "id-3"}, ids)
	assert.Empty(t, cal.Upcoming(start.Add(time.Minute)))
}
