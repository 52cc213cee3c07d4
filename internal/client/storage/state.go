package storage

import (
	"context"

	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/snapshot"
	"github.com/iudanet/treesync/pkg/api"
)

//go:generate moq -out statestorage_mock.go . StateStorage

// StateStorage defines interface for persisting replica state on client.
// Хранится две вещи: сериализованное состояние CRDT движка и метаданные
// последней синхронизации с сервером и историей коммитов.
type StateStorage interface {
	// SaveEngineState stores the serialized engine state
	SaveEngineState(ctx context.Context, state *crdt.State) error

	// GetEngineState retrieves the serialized engine state
	// Returns ErrStateNotFound if the replica has not been initialized yet
	GetEngineState(ctx context.Context) (*crdt.State, error)

	// SaveSyncMeta stores sync metadata
	SaveSyncMeta(ctx context.Context, meta *SyncMeta) error

	// GetSyncMeta retrieves sync metadata.
	// Returns an empty SyncMeta (not an error) if no sync happened yet.
	GetSyncMeta(ctx context.Context) (*SyncMeta, error)
}

// SyncMeta метаданные синхронизации реплики
type SyncMeta struct {
	// Head последний согласованный коммит истории (пустая строка до
	// первой публикации или синхронизации с непустой историей)
	Head string `json:"head,omitempty"`

	// LastSnapshot снимок рабочей копии на момент последнего Sync.
	// Нужен для вычисления diff при следующем запуске.
	LastSnapshot *snapshot.Snapshot `json:"last_snapshot,omitempty"`

	// RemoteVector вектор состояния сервера после последнего обмена
	RemoteVector api.StateVector `json:"remote_vector,omitempty"`

	// HeadCoverage битовая карта операций, покрытых Head. После
	// перезапуска позволяет судить о покрытии без повторного
	// разрешения коммита
	HeadCoverage api.StateVector `json:"head_coverage,omitempty"`

	// LastSyncAt unix-время последней успешной синхронизации
	LastSyncAt int64 `json:"last_sync_at,omitempty"`
}
