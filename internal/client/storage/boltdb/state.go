package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/treesync/internal/client/storage"
	"github.com/iudanet/treesync/internal/crdt"
)

var (
	stateKey = []byte("engine")
	metaKey  = []byte("sync")
)

// SaveEngineState stores the serialized CRDT engine state
func (s *Storage) SaveEngineState(ctx context.Context, state *crdt.State) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal engine state: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		if err := bucket.Put(stateKey, data); err != nil {
			return fmt.Errorf("failed to save engine state: %w", err)
		}

		return nil
	})
}

// GetEngineState retrieves the serialized CRDT engine state
func (s *Storage) GetEngineState(ctx context.Context) (*crdt.State, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var state *crdt.State

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketState)
		if bucket == nil {
			return fmt.Errorf("state bucket not found")
		}

		data := bucket.Get(stateKey)
		if data == nil {
			return storage.ErrStateNotFound
		}

		state = &crdt.State{}
		if err := json.Unmarshal(data, state); err != nil {
			return fmt.Errorf("failed to unmarshal engine state: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return state, nil
}

// SaveSyncMeta stores sync metadata
func (s *Storage) SaveSyncMeta(ctx context.Context, meta *storage.SyncMeta) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal sync meta: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		if err := bucket.Put(metaKey, data); err != nil {
			return fmt.Errorf("failed to save sync meta: %w", err)
		}

		return nil
	})
}

// GetSyncMeta retrieves sync metadata. До первой синхронизации
// возвращает пустую структуру, это не ошибка.
func (s *Storage) GetSyncMeta(ctx context.Context) (*storage.SyncMeta, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	meta := &storage.SyncMeta{}

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketMeta)
		if bucket == nil {
			return fmt.Errorf("meta bucket not found")
		}

		data := bucket.Get(metaKey)
		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, meta); err != nil {
			return fmt.Errorf("failed to unmarshal sync meta: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return meta, nil
}
