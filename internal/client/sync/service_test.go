package sync

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/iudanet/treesync/internal/client/api"
	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/models"
	"github.com/iudanet/treesync/pkg/api"
)

func newTestEngine(replica string) *crdt.Engine {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return crdt.NewEngine(crdt.NewClockWithReplica(replica), logger)
}

func newStateStorageMock() *storage.StateStorageMock {
	var savedState *crdt.State
	savedMeta := &storage.SyncMeta{}

	return &storage.StateStorageMock{
		SaveEngineStateFunc: func(ctx context.Context, state *crdt.State) error {
			savedState = state
			return nil
		},
		GetEngineStateFunc: func(ctx context.Context) (*crdt.State, error) {
			if savedState == nil {
				return nil, storage.ErrStateNotFound
			}
			return savedState, nil
		},
		SaveSyncMetaFunc: func(ctx context.Context, meta *storage.SyncMeta) error {
			savedMeta = meta
			return nil
		},
		GetSyncMetaFunc: func(ctx context.Context) (*storage.SyncMeta, error) {
			return savedMeta, nil
		},
	}
}

// remoteOps делает операции чужой реплики для выдачи из PullOps
func remoteOps(t *testing.T) []api.Operation {
	t.Helper()

	remote := newTestEngine("replica-b")
	id := models.LocalID("replica-b", 1)
	var ops []*models.Operation
	ops = append(ops, remote.CreateNode(id, false, "todo.md", models.RootID))
	ops = append(ops, remote.InsertText(id, 0, "- write tests\n"))
	return crdt.OpsToWire(ops)
}

func TestSync_PullsAndApplies(t *testing.T) {
	engine := newTestEngine("replica-a")
	serverOps := remoteOps(t)

	mockAPI := &httpClient.ClientAPIMock{
		PullOpsFunc: func(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
			assert.Empty(t, req.Vector)
			return &api.PullResponse{
				Ops: serverOps,
				Vector: api.StateVector{
					"replica-b": {{From: 1, To: 2}},
				},
			}, nil
		},
	}
	mockStorage := newStateStorageMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(mockAPI, engine, mockStorage, logger)

	result, err := svc.Sync(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 2, result.PulledOps)
	assert.Equal(t, 2, result.AppliedOps)
	assert.Equal(t, 0, result.DeferredOps)
	assert.Equal(t, 0, result.PushedOps)

	// Операции применены к движку
	proj := engine.Project()
	id, ok := proj.IDAt("todo.md")
	require.True(t, ok)
	content, ok := engine.Content(id)
	require.True(t, ok)
	assert.Equal(t, "- write tests\n", content)

	// Состояние движка сохранено
	assert.Len(t, mockStorage.SaveEngineStateCalls(), 1)
}

func TestSync_PushesLocalOps(t *testing.T) {
	engine := newTestEngine("replica-a")
	id := models.LocalID("replica-a", 1)
	engine.CreateNode(id, false, "notes.txt", models.RootID)
	engine.InsertText(id, 0, "hello")

	mockAPI := &httpClient.ClientAPIMock{
		PullOpsFunc: func(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
			// Клиент сообщает серверу, что уже видел свои операции
			assert.Equal(t, []api.SeqRange{{From: 1, To: 2}}, req.Vector["replica-a"])
			return &api.PullResponse{Vector: api.StateVector{}}, nil
		},
		PushOpsFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			require.Len(t, req.Ops, 2)
			assert.Equal(t, "replica-a", req.Ops[0].Origin)
			return &api.PushResponse{
				Accepted: 2,
				Vector: api.StateVector{
					"replica-a": {{From: 1, To: 2}},
				},
			}, nil
		},
	}
	mockStorage := newStateStorageMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(mockAPI, engine, mockStorage, logger)

	result, err := svc.Sync(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 0, result.PulledOps)
	assert.Equal(t, 2, result.PushedOps)

	// Серверный вектор после push сохранен в метаданных
	calls := mockStorage.SaveSyncMetaCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, []api.SeqRange{{From: 1, To: 2}}, calls[0].Meta.RemoteVector["replica-a"])
	assert.NotZero(t, calls[0].Meta.LastSyncAt)
}

func TestSync_NothingToExchange(t *testing.T) {
	engine := newTestEngine("replica-a")

	mockAPI := &httpClient.ClientAPIMock{
		PullOpsFunc: func(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
			return &api.PullResponse{Vector: api.StateVector{}}, nil
		},
	}
	mockStorage := newStateStorageMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(mockAPI, engine, mockStorage, logger)

	result, err := svc.Sync(context.Background(), "token")
	require.NoError(t, err)
	assert.Zero(t, result.PulledOps)
	assert.Zero(t, result.PushedOps)

	// Push не вызывался
	assert.Empty(t, mockAPI.PushOpsCalls())
}

func TestSync_PullError(t *testing.T) {
	engine := newTestEngine("replica-a")

	mockAPI := &httpClient.ClientAPIMock{
		PullOpsFunc: func(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
			return nil, errors.New("connection refused")
		},
	}
	mockStorage := newStateStorageMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(mockAPI, engine, mockStorage, logger)

	result, err := svc.Sync(context.Background(), "token")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "pull request failed")

	// Состояние не сохраняется при неудачном обмене
	assert.Empty(t, mockStorage.SaveEngineStateCalls())
}

func TestSync_PushError(t *testing.T) {
	engine := newTestEngine("replica-a")
	engine.CreateNode(models.LocalID("replica-a", 1), false, "a.txt", models.RootID)

	mockAPI := &httpClient.ClientAPIMock{
		PullOpsFunc: func(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
			return &api.PullResponse{Vector: api.StateVector{}}, nil
		},
		PushOpsFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return nil, errors.New("server unavailable")
		},
	}
	mockStorage := newStateStorageMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(mockAPI, engine, mockStorage, logger)

	result, err := svc.Sync(context.Background(), "token")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "push request failed")
}

func TestSync_ConvergesBothDirections(t *testing.T) {
	engine := newTestEngine("replica-a")
	localID := models.LocalID("replica-a", 1)
	engine.CreateNode(localID, false, "local.txt", models.RootID)

	serverOps := remoteOps(t)

	mockAPI := &httpClient.ClientAPIMock{
		PullOpsFunc: func(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
			return &api.PullResponse{
				Ops: serverOps,
				Vector: api.StateVector{
					"replica-b": {{From: 1, To: 2}},
				},
			}, nil
		},
		PushOpsFunc: func(ctx context.Context, accessToken string, req api.PushRequest) (*api.PushResponse, error) {
			return &api.PushResponse{
				Accepted: len(req.Ops),
				Vector: api.StateVector{
					"replica-a": {{From: 1, To: 1}},
					"replica-b": {{From: 1, To: 2}},
				},
			}, nil
		},
	}
	mockStorage := newStateStorageMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(mockAPI, engine, mockStorage, logger)

	result, err := svc.Sync(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 2, result.PulledOps)
	assert.Equal(t, 1, result.PushedOps)

	// Обе стороны видны в проекции
	proj := engine.Project()
	for _, path := range []string{"local.txt", "todo.md"} {
		_, ok := proj.IDAt(path)
		assert.True(t, ok, "path %s missing", path)
	}
}

func TestGetPendingOpsCount(t *testing.T) {
	engine := newTestEngine("replica-a")
	id := models.LocalID("replica-a", 1)
	engine.CreateNode(id, false, "a.txt", models.RootID)
	engine.InsertText(id, 0, "x")

	mockStorage := newStateStorageMock()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewService(&httpClient.ClientAPIMock{}, engine, mockStorage, logger)

	// До первой синхронизации все локальные операции ожидают отправки
	count, err := svc.GetPendingOpsCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// После подтверждения сервером ожидающих нет
	require.NoError(t, mockStorage.SaveSyncMeta(context.Background(), &storage.SyncMeta{
		RemoteVector: api.StateVector{"replica-a": {{From: 1, To: 2}}},
	}))

	count, err = svc.GetPendingOpsCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSync_WarnsOnStalledGap(t *testing.T) {
	engine := newTestEngine("replica-a")
	engine.SetGapTimeout(0)

	// Сервер отдает только вторую операцию реплики: пропуск не закрыт
	remote := newTestEngine("replica-b")
	id := models.LocalID("replica-b", 1)
	remote.CreateNode(id, false, "todo.md", models.RootID)
	op2 := remote.SetName(id, "done.md")

	mockAPI := &httpClient.ClientAPIMock{
		PullOpsFunc: func(ctx context.Context, accessToken string, req api.PullRequest) (*api.PullResponse, error) {
			return &api.PullResponse{
				Ops:    crdt.OpsToWire([]*models.Operation{op2}),
				Vector: api.StateVector{"replica-b": {{From: 1, To: 2}}},
			}, nil
		},
	}
	mockStorage := newStateStorageMock()

	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	svc := NewService(mockAPI, engine, mockStorage, logger)
	result, err := svc.Sync(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeferredOps)

	logOutput := logBuf.String()
	assert.Contains(t, logOutput, "Sync stalled")
	assert.Contains(t, logOutput, "replica-b")
	assert.Contains(t, logOutput, "expected_seq=1")
}
