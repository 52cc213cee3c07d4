package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/models"
)

// SaveOps добавляет операции в лог пользователя.
// Дубликаты (совпадающие origin и seq) молча пропускаются, поэтому
// повторная публикация после обрыва соединения безопасна.
func (s *Storage) SaveOps(ctx context.Context, userID string, ops []*models.Operation) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback после commit безвреден

	query := `
		INSERT OR IGNORE INTO operations (user_id, origin, seq, lamport_time, op_type, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	saved := 0
	now := time.Now()
	for _, op := range ops {
		payload, err := json.Marshal(op)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal operation %s/%d: %w", op.Origin, op.Seq, err)
		}

		result, err := tx.ExecContext(ctx, query,
			userID,
			op.Origin,
			op.Seq,
			op.Time,
			string(op.Type),
			string(payload),
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert operation %s/%d: %w", op.Origin, op.Seq, err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		saved += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit tx: %w", err)
	}

	return saved, nil
}

// GetOps возвращает все операции пользователя в порядке (origin, seq)
func (s *Storage) GetOps(ctx context.Context, userID string) ([]*models.Operation, error) {
	query := `
		SELECT payload
		FROM operations
		WHERE user_id = ?
		ORDER BY origin, seq
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	var ops []*models.Operation
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}

		op := &models.Operation{}
		if err := json.Unmarshal([]byte(payload), op); err != nil {
			return nil, fmt.Errorf("failed to unmarshal operation: %w", err)
		}
		ops = append(ops, op)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operations: %w", err)
	}

	return ops, nil
}

// GetVector строит вектор состояния сервера по логу пользователя
func (s *Storage) GetVector(ctx context.Context, userID string) (crdt.StateVector, error) {
	query := `
		SELECT origin, seq
		FROM operations
		WHERE user_id = ?
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query operations: %w", err)
	}
	defer rows.Close()

	vector := crdt.NewStateVector()
	for rows.Next() {
		var origin string
		var seq uint64
		if err := rows.Scan(&origin, &seq); err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		vector.Record(origin, seq)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate operations: %w", err)
	}

	return vector, nil
}
