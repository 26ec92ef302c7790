package notebook_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/k-otsuka/lexinote/internal/notebook"
	"github.com/k-otsuka/lexinote/internal/testutil"
)

func newStores(t *testing.T) map[string]notebook.Store {
	t.Helper()

	snapshot, err := notebook.NewSnapshotStore(filepath.Join(t.TempDir(), "notebook.json"))
	require.NoError(t, err)

	sqlite, err := notebook.NewSQLiteStore(filepath.Join(t.TempDir(), "notebook.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sqlite.Close()
	})

	return map[string]notebook.Store{
		"snapshot": snapshot,
		"sqlite":   sqlite,
	}
}

func TestStore_AddIsIdempotent(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			entry := testutil.NewEntry()
			require.NoError(t, store.Add(entry))
			require.NoError(t, store.Add(entry))

			count, err := store.Len()
			require.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func TestStore_ListOrder(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			first := testutil.NewEntry(testutil.WithEntryID("1"))
			second := testutil.NewEntry(testutil.WithEntryID("2"))
			second.Term = "wall"
			require.NoError(t, store.Add(first))
			require.NoError(t, store.Add(second))

			entries, err := store.List()
			require.NoError(t, err)
			require.Len(t, entries, 2)
			assert.Equal(t, "2", entries[0].Entry.ID)
			assert.Equal(t, "1", entries[1].Entry.ID)
		})
	}
}

func TestStore_GetAndRemove(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			entry := testutil.NewEntry()
			require.NoError(t, store.Add(entry))

			saved, err := store.Get(entry.ID)
			require.NoError(t, err)
			assert.Equal(t, entry.Term, saved.Entry.Term)
			assert.Equal(t, entry.Examples, saved.Entry.Examples)
			assert.Equal(t, entry.Scenario, saved.Entry.Scenario)
			assert.Equal(t, notebook.DefaultEasinessFactor, saved.Review.EasinessFactor)

			require.NoError(t, store.Remove(entry.ID))

			_, err = store.Get(entry.ID)
			assert.ErrorIs(t, err, notebook.ErrEntryNotFound)
			assert.ErrorIs(t, store.Remove(entry.ID), notebook.ErrEntryNotFound)
		})
	}
}

func TestStore_UpdateReview(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			entry := testutil.NewEntry()
			require.NoError(t, store.Add(entry))

			review := notebook.NextReview(notebook.ReviewState{
				EasinessFactor: notebook.DefaultEasinessFactor,
			}, 4, time.Now())
			require.NoError(t, store.UpdateReview(entry.ID, review))

			saved, err := store.Get(entry.ID)
			require.NoError(t, err)
			assert.Equal(t, review.IntervalDays, saved.Review.IntervalDays)
			assert.Equal(t, review.CorrectStreak, saved.Review.CorrectStreak)
			assert.False(t, saved.Review.ReviewedAt.IsZero())

			assert.ErrorIs(t, store.UpdateReview("missing", review), notebook.ErrEntryNotFound)
		})
	}
}

func TestSnapshotStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.json")

	store, err := notebook.NewSnapshotStore(path)
	require.NoError(t, err)
	entry := testutil.NewEntry()
	require.NoError(t, store.Add(entry))

	reopened, err := notebook.NewSnapshotStore(path)
	require.NoError(t, err)

	saved, err := reopened.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Term, saved.Entry.Term)

	count, err := reopened.Len()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notebook.db")

	store, err := notebook.NewSQLiteStore(path)
	require.NoError(t, err)
	entry := testutil.NewEntry()
	require.NoError(t, store.Add(entry))
	require.NoError(t, store.Close())

	reopened, err := notebook.NewSQLiteStore(path)
	require.NoError(t, err)
	defer func() {
		_ = reopened.Close()
	}()

	saved, err := reopened.Get(entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.TranslatedTerm, saved.Entry.TranslatedTerm)
}
