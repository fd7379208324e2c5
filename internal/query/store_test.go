package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/process-planner/internal/model"
)

var refNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func task(id string, status model.Status, mods ...func(*model.Task)) model.Task {
	t := model.Task{
		ID:       id,
		Title:    "Task " + id,
		Status:   status,
		Priority: model.PriorityMedium,
		DueDate:  refNow.Add(24 * time.Hour),
		Category: "Development",
	}
	if status == model.StatusDone {
		t.Progress = 100
	}
	for _, m := range mods {
		m(&t)
	}
	return t
}

func newTaskStore(t *testing.T, tasks ...model.Task) *Store[model.Task] {
	t.Helper()
	s := NewStore(WithNormalizer(model.NormalizeTask))
	for _, tk := range tasks {
		require.NoError(t, s.Insert(tk))
	}
	return s
}

func ids[T Record](items []T) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.RecordID()
	}
	return out
}

// ---------------------------------------------------------------------------
// Insert
// ---------------------------------------------------------------------------

func TestStore_Insert(t *testing.T) {
	t.Parallel()

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()
		s := newTaskStore(t, task("3", model.StatusTodo), task("1", model.StatusTodo), task("2", model.StatusTodo))
		assert.Equal(t, []string{"3", "1", "2"}, ids(s.All()))
		assert.Equal(t, 3, s.Len())
	})

	t.Run("rejects duplicate id", func(t *testing.T) {
		t.Parallel()
		s := newTaskStore(t, task("1", model.StatusTodo))
		err := s.Insert(task("1", model.StatusReview))
		require.ErrorIs(t, err, model.ErrValidation)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("id"))
		assert.Equal(t, 1, s.Len())
	})

	t.Run("rejects missing id", func(t *testing.T) {
		t.Parallel()
		s := newTaskStore(t)
		require.ErrorIs(t, s.Insert(task("", model.StatusTodo)), model.ErrValidation)
	})

	t.Run("rejects malformed record", func(t *testing.T) {
		t.Parallel()
		s := newTaskStore(t)
		bad := task("1", "blocked", func(tk *model.Task) { tk.Title = "  " })
		err := s.Insert(bad)

		var verr *model.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.True(t, verr.Has("title"))
		assert.True(t, verr.Has("status"))
		assert.Zero(t, s.Len())
	})

	t.Run("normalizes before validating", func(t *testing.T) {
		t.Parallel()
		s := newTaskStore(t)
		require.NoError(t, s.Insert(task("1", model.StatusDone, func(tk *model.Task) { tk.Progress = 10 })))
		got, ok := s.Get("1")
		require.True(t, ok)
		assert.Equal(t, 100, got.Progress)
	})
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestStore_Update_DoneForcesProgress(t *testing.T) {
	t.Parallel()

	s := newTaskStore(t,
		task("1", model.StatusTodo),
		task("2", model.StatusInProgress, func(tk *model.Task) { tk.Progress = 40 }),
	)

	done := model.StatusDone
	got, err := s.Update("2", model.TaskPatch{Status: &done}.Apply)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, got.Status)
	assert.Equal(t, 100, got.Progress)

	stored, _ := s.Get("2")
	assert.Equal(t, 100, stored.Progress)
	assert.Equal(t, []string{"1", "2"}, ids(s.All()), "update keeps position")
}

func TestStore_Update_Errors(t *testing.T) {
	t.Parallel()

	s := newTaskStore(t, task("1", model.StatusTodo, func(tk *model.Task) { tk.Progress = 20 }))

	t.Run("unknown id", func(t *testing.T) {
		_, err := s.Update("missing", func(tk model.Task) model.Task { return tk })
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("invalid patch leaves record untouched", func(t *testing.T) {
		progress := 150
		_, err := s.Update("1", model.TaskPatch{Progress: &progress}.Apply)
		require.ErrorIs(t, err, model.ErrValidation)

		stored, _ := s.Get("1")
		assert.Equal(t, 20, stored.Progress)
	})

	t.Run("id is immutable", func(t *testing.T) {
		_, err := s.Update("1", func(tk model.Task) model.Task {
			tk.ID = "other"
			return tk
		})
		require.ErrorIs(t, err, model.ErrValidation)
		_, ok := s.Get("1")
		assert.True(t, ok)
	})
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestStore_Delete(t *testing.T) {
	t.Parallel()

	s := newTaskStore(t, task("1", model.StatusTodo), task("2", model.StatusTodo), task("3", model.StatusTodo))

	assert.True(t, s.Delete("2"))
	assert.False(t, s.Delete("2"), "second delete is a no-op")
	assert.False(t, s.Delete("missing"))
	assert.Equal(t, []string{"1", "3"}, ids(s.All()))

	got, ok := s.Get("3")
	require.True(t, ok, "index is rebuilt after delete")
	assert.Equal(t, "3", got.ID)

	assert.Equal(t, 2, s.DeleteAll())
	assert.Equal(t, 0, s.DeleteAll())
	assert.Empty(t, s.All())
}

func TestStore_All_ReturnsCopy(t *testing.T) {
	t.Parallel()

	s := newTaskStore(t, task("1", model.StatusTodo))
	all := s.All()
	all[0].Title = "changed"

	stored, _ := s.Get("1")
	assert.Equal(t, "Task 1", stored.Title)
}

func TestStore_SlicesAreNotShared(t *testing.T) {
	t.Parallel()

	withAssignees := func(tk *model.Task) {
		tk.Assignees = []model.Person{{ID: 1, Name: "Ann"}, {ID: 2, Name: "Cid"}}
	}
	s := newTaskStore(t, task("1", model.StatusTodo, withAssignees))

	t.Run("editing All results leaves the store alone", func(t *testing.T) {
		s.All()[0].Assignees[0].Name = "Mallory"
		stored, _ := s.Get("1")
		assert.Equal(t, "Ann", stored.Assignees[0].Name)
	})

	t.Run("editing a Get result leaves the store alone", func(t *testing.T) {
		got, _ := s.Get("1")
		got.Assignees[1].Name = "Mallory"
		stored, _ := s.Get("1")
		assert.Equal(t, "Cid", stored.Assignees[1].Name)
	})

	t.Run("in-place update does not reach earlier snapshots", func(t *testing.T) {
		snap := s.All()
		_, err := s.Update("1", func(tk model.Task) model.Task {
			tk.Assignees[0] = model.Person{ID: 9, Name: "Zed"}
			return tk
		})
		require.NoError(t, err)

		assert.Equal(t, "Ann", snap[0].Assignees[0].Name)
		stored, _ := s.Get("1")
		assert.Equal(t, "Zed", stored.Assignees[0].Name)
	})
}
