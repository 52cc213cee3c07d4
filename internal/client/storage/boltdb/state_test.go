package boltdb

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/models"
	"github.com/iudanet/treesync/internal/snapshot"
	"github.com/iudanet/treesync/pkg/api"
)

func setupStateStorage(t *testing.T) *Storage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "client.db")
	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func buildEngineState(t *testing.T) *crdt.State {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := crdt.NewEngine(crdt.NewClockWithReplica("replica-a"), logger)

	id := models.LocalID("replica-a", 1)
	engine.CreateNode(id, false, "notes.txt", models.RootID)
	engine.InsertText(id, 0, "привет, мир")

	return engine.State()
}

func TestGetEngineState_NotFound(t *testing.T) {
	store := setupStateStorage(t)

	state, err := store.GetEngineState(context.Background())
	require.ErrorIs(t, err, storage.ErrStateNotFound)
	assert.Nil(t, state)
}

func TestSaveEngineState_Roundtrip(t *testing.T) {
	store := setupStateStorage(t)
	ctx := context.Background()

	state := buildEngineState(t)
	require.NoError(t, store.SaveEngineState(ctx, state))

	loaded, err := store.GetEngineState(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	// Восстановленный движок должен давать то же дерево и текст
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := crdt.NewEngine(crdt.NewClockWithReplica("replica-a"), logger)
	engine.Restore(loaded)

	proj := engine.Project()
	id, ok := proj.IDAt("notes.txt")
	require.True(t, ok)

	content, ok := engine.Content(id)
	require.True(t, ok)
	assert.Equal(t, "привет, мир", content)
}

func TestSaveEngineState_Overwrite(t *testing.T) {
	store := setupStateStorage(t)
	ctx := context.Background()

	first := buildEngineState(t)
	require.NoError(t, store.SaveEngineState(ctx, first))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	engine := crdt.NewEngine(crdt.NewClockWithReplica("replica-b"), logger)
	engine.CreateNode(models.LocalID("replica-b", 1), true, "docs", models.RootID)
	require.NoError(t, store.SaveEngineState(ctx, engine.State()))

	loaded, err := store.GetEngineState(ctx)
	require.NoError(t, err)
	assert.Equal(t, "replica-b", loaded.Clock.Replica)
}

func TestGetSyncMeta_EmptyBeforeFirstSync(t *testing.T) {
	store := setupStateStorage(t)

	meta, err := store.GetSyncMeta(context.Background())
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Empty(t, meta.Head)
	assert.Nil(t, meta.LastSnapshot)
	assert.Zero(t, meta.LastSyncAt)
}

func TestSaveSyncMeta_Roundtrip(t *testing.T) {
	store := setupStateStorage(t)
	ctx := context.Background()

	snap := snapshot.New()
	snap.Add("docs", true, nil)
	snap.Add("docs/readme.md", false, []byte("# hello\n"))

	meta := &storage.SyncMeta{
		Head:         "a94a8fe5ccb19ba61c4c0873d391e987982fbbd3",
		LastSnapshot: snap,
		RemoteVector: api.StateVector{
			"replica-a": {{From: 1, To: 7}},
			"replica-b": {{From: 1, To: 2}, {From: 5, To: 5}},
		},
		LastSyncAt: 1756500000,
	}

	require.NoError(t, store.SaveSyncMeta(ctx, meta))

	loaded, err := store.GetSyncMeta(ctx)
	require.NoError(t, err)
	assert.Equal(t, meta.Head, loaded.Head)
	assert.Equal(t, meta.LastSyncAt, loaded.LastSyncAt)
	assert.Equal(t, meta.RemoteVector, loaded.RemoteVector)

	require.NotNil(t, loaded.LastSnapshot)
	entry, ok := loaded.LastSnapshot.Entries["docs/readme.md"]
	require.True(t, ok)
	assert.Equal(t, []byte("# hello\n"), entry.Content)
	assert.False(t, entry.IsDir)
}

func TestStateStorage_Closed(t *testing.T) {
	store := setupStateStorage(t)
	require.NoError(t, store.Close())

	ctx := context.Background()

	_, err := store.GetEngineState(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.SaveEngineState(ctx, &crdt.State{})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = store.GetSyncMeta(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	err = store.SaveSyncMeta(ctx, &storage.SyncMeta{})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
