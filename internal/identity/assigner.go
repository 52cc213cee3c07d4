// Package identity реализует назначение стабильных идентификаторов
// узлов. Объекты, уже известные внешней истории, получают
// детерминированный Historical id (commit + path), поэтому
// независимые реплики с общей историей сходятся на одинаковых
// идентификаторах без единого координационного сообщения.
package identity

import (
	"context"
	"errors"
	"log/slog"

	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/history"
	"github.com/iudanet/treesync/internal/models"
)

// Assigner назначает идентификаторы узлов по пути
type Assigner struct {
	clock  *crdt.Clock
	oracle history.Oracle
	logger *slog.Logger
}

// NewAssigner создает назначатель идентификаторов
func NewAssigner(clock *crdt.Clock, oracle history.Oracle, logger *slog.Logger) *Assigner {
	return &Assigner{
		clock:  clock,
		oracle: oracle,
		logger: logger.With("component", "identity"),
	}
}

// Assign возвращает идентификатор узла для пути.
//
// Порядок выбора:
//  1. Путь уже известен реплицированному дереву - возвращается его
//     существующий id без изменений (id неизменен навсегда).
//  2. Путь присутствует в последнем известном коммите head -
//     возвращается Historical id против последнего коммита,
//     тронувшего именно этот путь (не против HEAD, чтобы
//     переименования в истории не порождали неоднозначность).
//  3. Иначе чеканится Local id.
//
// Если исторический id невозможно вывести однозначно, назначатель
// деградирует до Local id: потенциальный дубликат вместо падения.
func (a *Assigner) Assign(ctx context.Context, path string, proj *crdt.Projection, head string) (models.NodeID, error) {
	if err := ctx.Err(); err != nil {
		return models.NodeID{}, err
	}

	if id, ok := proj.IDAt(path); ok {
		return id, nil
	}

	if head != "" {
		tree, err := a.oracle.Resolve(ctx, head)
		switch {
		case err == nil:
			if _, ok := tree[path]; ok {
				return a.historicalID(ctx, head, path), nil
			}
		case errors.Is(err, models.ErrCommitNotFound):
			a.logger.Warn("head commit not resolvable, minting local id",
				"head", head, "path", path)
		default:
			return models.NodeID{}, err
		}
	}

	return models.LocalID(a.clock.Replica(), a.clock.NextID()), nil
}

func (a *Assigner) historicalID(ctx context.Context, head, path string) models.NodeID {
	touched, err := history.LastTouched(ctx, a.oracle, head, path)
	if err != nil {
		// identity_ambiguous: деградация до локального id,
		// синхронизация продолжается
		a.logger.Warn("historical identity ambiguous, falling back to local id",
			"path", path,
			"head", head,
			"error", err)
		return models.LocalID(a.clock.Replica(), a.clock.NextID())
	}
	return models.HistoricalID(touched, path)
}
