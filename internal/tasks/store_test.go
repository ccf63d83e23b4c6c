package tasks

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbuddy/taskbuddy/internal/common"
	"github.com/taskbuddy/taskbuddy/internal/logging"
	"github.com/taskbuddy/taskbuddy/internal/models"
)

// memCollections is an in-memory Collections for store tests.
type memCollections struct {
	slots map[string][]models.Task
	saves int
}

func newMemCollections() *memCollections {
	return &memCollections{slots: map[string][]models.Task{}}
}

func (m *memCollections) Load(_ context.Context, userID string) ([]models.Task, error) {
	return append([]models.Task(nil), m.slots[userID]...), nil
}

func (m *memCollections) Save(_ context.Context, userID string, items []models.Task) error {
	m.saves++
	m.slots[userID] = append([]models.Task(nil), items...)
	return nil
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, "error")
}

func newBoundStore(t *testing.T, colls Collections, userID string) *Store {
	t.Helper()
	s := NewStore(colls, testLogger())
	require.NoError(t, s.Bind(context.Background(), userID))
	return s
}

func TestAdd_AssignsDefaultsAndID(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")

	got, err := s.Add(context.Background(), AddRequest{Title: "Write spec"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "Write spec", got.Title)
	assert.Equal(t, models.StatusTodo, got.Status)
	assert.Equal(t, models.CategoryPersonal, got.Category)
	assert.Equal(t, models.PriorityMedium, got.Priority)
	assert.Nil(t, got.Description)
	assert.Nil(t, got.DueDate)
}

func TestAdd_IDsAreUniqueAndIncreasing(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")
	ctx := context.Background()

	var prev int64
	for _, title := range []string{"one", "two", "three", "four"} {
		got, err := s.Add(ctx, AddRequest{Title: title})
		require.NoError(t, err)
		assert.Greater(t, got.ID, prev)
		prev = got.ID
	}
}

func TestAdd_EmptyTitleDoesNotMutate(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Add(ctx, AddRequest{Title: title})
		assert.ErrorIs(t, err, common.ErrEmptyTitle)
	}
	assert.Equal(t, 0, s.Len())
}

func TestAdd_TrimsTitleAndDescription(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")

	got, err := s.Add(context.Background(), AddRequest{Title: "  padded  ", Description: "  note  "})
	require.NoError(t, err)

	assert.Equal(t, "padded", got.Title)
	require.NotNil(t, got.Description)
	assert.Equal(t, "note", *got.Description)
}

func TestUpdate_MergesOnlyGivenFields(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")
	ctx := context.Background()

	created, err := s.Add(ctx, AddRequest{Title: "orig", Priority: models.PriorityHigh})
	require.NoError(t, err)

	title := "renamed"
	require.NoError(t, s.Update(ctx, created.ID, models.TaskPatch{Title: &title}))

	got, ok := s.Get(created.ID)
	require.True(t, ok)
	assert.Equal(t, "renamed", got.Title)
	assert.Equal(t, models.PriorityHigh, got.Priority)
}

func TestUpdate_UnknownIDReturnsNotFound(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")

	title := "x"
	err := s.Update(context.Background(), 42, models.TaskPatch{Title: &title})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSetStatus_AnyTransitionIsLegal(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")
	ctx := context.Background()

	created, err := s.Add(ctx, AddRequest{Title: "hop around"})
	require.NoError(t, err)

	for _, status := range []models.Status{
		models.StatusCompleted,  // skip in_progress entirely
		models.StatusTodo,       // reopen
		models.StatusInProgress, // and forward again
	} {
		require.NoError(t, s.SetStatus(ctx, created.ID, status))
		got, _ := s.Get(created.ID)
		assert.Equal(t, status, got.Status)
	}
}

func TestRemove_ThenGetReturnsNotFound(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")
	ctx := context.Background()

	created, err := s.Add(ctx, AddRequest{Title: "doomed"})
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, created.ID))

	_, ok := s.Get(created.ID)
	assert.False(t, ok)
	assert.ErrorIs(t, s.Remove(ctx, created.ID), common.ErrNotFound)
}

func TestRemove_IDsAreNeverReused(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")
	ctx := context.Background()

	first, err := s.Add(ctx, AddRequest{Title: "first"})
	require.NoError(t, err)
	require.NoError(t, s.Remove(ctx, first.ID))

	second, err := s.Add(ctx, AddRequest{Title: "second"})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestMutations_PersistToTheBoundSlot(t *testing.T) {
	colls := newMemCollections()
	s := newBoundStore(t, colls, "u1")
	ctx := context.Background()

	created, err := s.Add(ctx, AddRequest{Title: "persisted"})
	require.NoError(t, err)
	assert.Len(t, colls.slots["u1"], 1)

	require.NoError(t, s.SetStatus(ctx, created.ID, models.StatusCompleted))
	assert.Equal(t, models.StatusCompleted, colls.slots["u1"][0].Status)

	require.NoError(t, s.Remove(ctx, created.ID))
	assert.Empty(t, colls.slots["u1"])
	assert.Equal(t, 3, colls.saves, "every mutation writes the full collection")
}

func TestUnboundStore_MutationsStayInMemory(t *testing.T) {
	colls := newMemCollections()
	s := newBoundStore(t, colls, "")
	ctx := context.Background()

	_, err := s.Add(ctx, AddRequest{Title: "ephemeral"})
	require.NoError(t, err)

	assert.Equal(t, 1, s.Len())
	assert.Zero(t, colls.saves)

	// Lost on reload, as documented.
	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, 0, s.Len())
}

func TestBind_SwitchingUsersRoundTripsCollections(t *testing.T) {
	colls := newMemCollections()
	s := newBoundStore(t, colls, "alice")
	ctx := context.Background()

	_, err := s.Add(ctx, AddRequest{Title: "alice 1"})
	require.NoError(t, err)
	_, err = s.Add(ctx, AddRequest{Title: "alice 2"})
	require.NoError(t, err)
	before := s.All()

	// Switch to bob, mutate his collection, switch back.
	require.NoError(t, s.Bind(ctx, "bob"))
	assert.Equal(t, 0, s.Len())
	_, err = s.Add(ctx, AddRequest{Title: "bob 1"})
	require.NoError(t, err)

	require.NoError(t, s.Bind(ctx, "alice"))
	assert.Equal(t, before, s.All(), "collection must survive the switch unchanged")
}

func TestReload_RecomputesIDCounter(t *testing.T) {
	colls := newMemCollections()
	colls.slots["u1"] = []models.Task{
		{ID: 3, Title: "three", Status: models.StatusTodo, Category: models.CategoryWork, Priority: models.PriorityLow},
		{ID: 9, Title: "nine", Status: models.StatusTodo, Category: models.CategoryWork, Priority: models.PriorityLow},
	}

	s := newBoundStore(t, colls, "u1")

	got, err := s.Add(context.Background(), AddRequest{Title: "next"})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
}

func TestWatch_NotifiedOnEveryChange(t *testing.T) {
	s := NewStore(newMemCollections(), testLogger())
	ctx := context.Background()

	calls := 0
	s.Watch(func() { calls++ })

	require.NoError(t, s.Bind(ctx, "u1")) // reload notifies
	created, err := s.Add(ctx, AddRequest{Title: "watched"})
	require.NoError(t, err)
	require.NoError(t, s.SetStatus(ctx, created.ID, models.StatusInProgress))
	require.NoError(t, s.Remove(ctx, created.ID))

	assert.Equal(t, 4, calls)
}

func TestAll_ReturnsACopy(t *testing.T) {
	s := newBoundStore(t, newMemCollections(), "u1")
	_, err := s.Add(context.Background(), AddRequest{Title: "guarded"})
	require.NoError(t, err)

	all := s.All()
	all[0].Title = "mutated copy"

	got, _ := s.Get(all[0].ID)
	assert.Equal(t, "guarded", got.Title)
}
