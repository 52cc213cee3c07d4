package sync

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpClient "github.com/iudanet/treesync/internal/client/api"
	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/pkg/api"
)

//go:generate moq -out service_mock.go . Service

// Service определяет интерфейс для sync.Service
type Service interface {
	// Sync выполняет полный обмен операциями с сервером
	Sync(ctx context.Context, accessToken string) (*SyncResult, error)

	// GetPendingOpsCount возвращает количество локальных операций,
	// еще не подтвержденных сервером
	GetPendingOpsCount(ctx context.Context) (int, error)
}

// service handles operation exchange between client engine and server
type service struct {
	apiClient    httpClient.ClientAPI
	engine       *crdt.Engine
	stateStorage storage.StateStorage
	logger       *slog.Logger
}

// NewService creates a new sync service
func NewService(apiClient httpClient.ClientAPI, engine *crdt.Engine, stateStorage storage.StateStorage, logger *slog.Logger) Service {
	return &service{
		apiClient:    apiClient,
		engine:       engine,
		stateStorage: stateStorage,
		logger:       logger,
	}
}

// SyncResult contains sync operation results
type SyncResult struct {
	PulledOps   int // количество операций, полученных с сервера
	AppliedOps  int // количество примененных операций
	DeferredOps int // количество отложенных операций (пропуски в нумерации)
	PushedOps   int // количество операций, принятых сервером
}

// Sync performs full operation exchange with the server
// 1. Pulls operations the local engine has not seen, using its state vector
// 2. Applies them to the engine (duplicates and gaps are handled by the engine)
// 3. Pushes local operations the server vector does not cover
// 4. Persists engine state and sync metadata
func (s *service) Sync(ctx context.Context, accessToken string) (*SyncResult, error) {
	s.logger.Info("Starting synchronization")

	result := &SyncResult{}

	// Запрашиваем операции, которых нет в локальном векторе состояния
	pullReq := api.PullRequest{
		Vector: crdt.VectorToWire(s.engine.Vector()),
	}

	pullResp, err := s.apiClient.PullOps(ctx, accessToken, pullReq)
	if err != nil {
		return nil, fmt.Errorf("pull request failed: %w", err)
	}

	result.PulledOps = len(pullResp.Ops)

	if len(pullResp.Ops) > 0 {
		batch := s.engine.ReceiveBatch(crdt.OpsFromWire(pullResp.Ops))
		result.AppliedOps = batch.Applied
		result.DeferredOps = batch.Deferred

		s.logger.Info("Applied server operations",
			"pulled", result.PulledOps,
			"applied", batch.Applied,
			"duplicates", batch.Duplicates,
			"deferred", batch.Deferred)
	}

	// Пропуски, не закрытые этим обменом, копятся в буфере движка.
	// Застрявшие дольше таймаута выводим как предупреждение
	for _, gap := range s.engine.StalledGaps(time.Now()) {
		s.logger.Warn("Sync stalled: waiting for missing operations",
			"origin", gap.Origin,
			"expected_seq", gap.Expected,
			"buffered", gap.Buffered,
			"waiting", gap.Waiting)
	}

	// Отправляем операции, которых нет в серверном векторе
	serverVector := crdt.VectorFromWire(pullResp.Vector)
	missing := s.engine.OpsMissingFrom(serverVector)

	remoteVector := pullResp.Vector
	if len(missing) > 0 {
		pushReq := api.PushRequest{Ops: crdt.OpsToWire(missing)}

		pushResp, err := s.apiClient.PushOps(ctx, accessToken, pushReq)
		if err != nil {
			return nil, fmt.Errorf("push request failed: %w", err)
		}

		result.PushedOps = pushResp.Accepted
		remoteVector = pushResp.Vector

		s.logger.Info("Pushed local operations",
			"sent", len(missing),
			"accepted", pushResp.Accepted)
	}

	// Сохраняем состояние движка и метаданные синхронизации
	if err := s.stateStorage.SaveEngineState(ctx, s.engine.State()); err != nil {
		return nil, fmt.Errorf("failed to save engine state: %w", err)
	}

	meta, err := s.stateStorage.GetSyncMeta(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get sync meta: %w", err)
	}

	meta.RemoteVector = remoteVector
	meta.LastSyncAt = time.Now().Unix()

	if err := s.stateStorage.SaveSyncMeta(ctx, meta); err != nil {
		// Не критичная ошибка, операции уже обменяны и состояние сохранено
		s.logger.Warn("Failed to save sync meta", "error", err)
	}

	s.logger.Info("Synchronization completed",
		"pulled", result.PulledOps,
		"applied", result.AppliedOps,
		"deferred", result.DeferredOps,
		"pushed", result.PushedOps)

	return result, nil
}

// GetPendingOpsCount возвращает количество локальных операций, которых нет
// в последнем известном серверном векторе состояния
func (s *service) GetPendingOpsCount(ctx context.Context) (int, error) {
	meta, err := s.stateStorage.GetSyncMeta(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get sync meta: %w", err)
	}

	missing := s.engine.OpsMissingFrom(crdt.VectorFromWire(meta.RemoteVector))
	return len(missing), nil
}
