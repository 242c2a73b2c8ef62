package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demandvibes/taskdesk/internal/model"
	"github.com/demandvibes/taskdesk/internal/testutil"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, testutil.MakeNoopLogger()), dir
}

func TestStore_SetThenGet(t *testing.T) {
	store, _ := newStore(t)

	user := model.User{ID: "u-1", Email: "a@demandvibes.com", Name: "A B"}
	store.Set(user)

	got := store.Get()
	require.NotNil(t, got)
	assert.Equal(t, user, *got)
	assert.True(t, store.IsAuthenticated())
}

func TestStore_SetReplacesExisting(t *testing.T) {
	store, _ := newStore(t)

	store.Set(model.User{ID: "u-1", Email: "a@demandvibes.com", Name: "A"})
	store.Set(model.User{ID: "u-2", Email: "b@demandvibes.com", Name: "B"})

	got := store.Get()
	require.NotNil(t, got)
	assert.Equal(t, "u-2", got.ID)
}

func TestStore_GetWithoutSession(t *testing.T) {
	store, _ := newStore(t)

	assert.Nil(t, store.Get())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_GetCorruptFile(t *testing.T) {
	store, dir := newStore(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("{not json"), 0o600))

	assert.Nil(t, store.Get())
	assert.False(t, store.IsAuthenticated())
}

func TestStore_ClearIdempotent(t *testing.T) {
	store, _ := newStore(t)

	store.Set(model.User{ID: "u-1", Email: "a@demandvibes.com", Name: "A"})
	store.Clear()
	assert.Nil(t, store.Get())

	// Clearing an already-empty store is a no-op.
	store.Clear()
	assert.Nil(t, store.Get())
}

func TestStore_UnwritableDirDegradesSilently(t *testing.T) {
	// Point the store at a path whose parent is a file, so MkdirAll
	// fails. Set must not panic and the store reads as logged out.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	store := NewStore(filepath.Join(blocker, "nested"), testutil.MakeNoopLogger())
	store.Set(model.User{ID: "u-1", Email: "a@demandvibes.com", Name: "A"})

	assert.Nil(t, store.Get())
	assert.False(t, store.IsAuthenticated())
}
