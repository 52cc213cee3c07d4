package storage

import (
	"context"

	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/models"
)

// OpStorage defines interface for replicated operation log persistence
type OpStorage interface {
	// SaveOps appends operations to the user's log.
	// Duplicates (same origin and seq) are silently skipped.
	// Returns the number of newly stored operations.
	SaveOps(ctx context.Context, userID string, ops []*models.Operation) (int, error)

	// GetOps retrieves all operations for a user
	// ordered by (origin, seq)
	GetOps(ctx context.Context, userID string) ([]*models.Operation, error)

	// GetVector builds the server-side state vector
	// over all stored operations of a user
	GetVector(ctx context.Context, userID string) (crdt.StateVector, error)
}
