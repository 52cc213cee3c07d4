package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/treesync/internal/models"
)

func testOp(origin string, seq uint64, opType models.OpType) *models.Operation {
	return &models.Operation{
		Origin: origin,
		Seq:    seq,
		Time:   int64(seq),
		Type:   opType,
		Node:   models.LocalID(origin, seq),
		Name:   "file.txt",
		Parent: models.RootID,
	}
}

func TestOpStorage_SaveOps(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	ops := []*models.Operation{
		testOp("replica-a", 1, models.OpCreateNode),
		testOp("replica-a", 2, models.OpSetName),
		testOp("replica-b", 1, models.OpCreateNode),
	}

	saved, err := s.SaveOps(ctx, userID, ops)
	require.NoError(t, err)
	assert.Equal(t, 3, saved)
}

func TestOpStorage_SaveOpsIgnoresDuplicates(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	ops := []*models.Operation{
		testOp("replica-a", 1, models.OpCreateNode),
		testOp("replica-a", 2, models.OpSetName),
	}
	_, err := s.SaveOps(ctx, userID, ops)
	require.NoError(t, err)

	// повторная публикация тех же операций плюс одна новая
	again := []*models.Operation{
		testOp("replica-a", 1, models.OpCreateNode),
		testOp("replica-a", 2, models.OpSetName),
		testOp("replica-a", 3, models.OpSetDeleted),
	}
	saved, err := s.SaveOps(ctx, userID, again)
	require.NoError(t, err)
	assert.Equal(t, 1, saved)

	stored, err := s.GetOps(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, stored, 3)
}

func TestOpStorage_GetOpsOrdered(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	// сохраняем в перемешанном порядке
	ops := []*models.Operation{
		testOp("replica-b", 2, models.OpSetName),
		testOp("replica-a", 2, models.OpSetName),
		testOp("replica-b", 1, models.OpCreateNode),
		testOp("replica-a", 1, models.OpCreateNode),
	}
	_, err := s.SaveOps(ctx, userID, ops)
	require.NoError(t, err)

	stored, err := s.GetOps(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stored, 4)

	assert.Equal(t, "replica-a", stored[0].Origin)
	assert.Equal(t, uint64(1), stored[0].Seq)
	assert.Equal(t, "replica-a", stored[1].Origin)
	assert.Equal(t, uint64(2), stored[1].Seq)
	assert.Equal(t, "replica-b", stored[2].Origin)
	assert.Equal(t, uint64(1), stored[2].Seq)
}

func TestOpStorage_GetOpsPreservesPayload(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	op := &models.Operation{
		Origin:  "replica-a",
		Seq:     1,
		Time:    42,
		Type:    models.OpTextInsert,
		Node:    models.HistoricalID("abc123", "docs/readme.md"),
		Element: models.ElementID{Replica: "replica-a", Seq: 7},
		Left:    models.ElementID{Replica: "replica-b", Seq: 3},
		Text:    "привет",
	}
	_, err := s.SaveOps(ctx, userID, []*models.Operation{op})
	require.NoError(t, err)

	stored, err := s.GetOps(ctx, userID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, op, stored[0])
}

func TestOpStorage_GetVector(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	userID := createTestUser(t, ctx, s)

	ops := []*models.Operation{
		testOp("replica-a", 1, models.OpCreateNode),
		testOp("replica-a", 2, models.OpSetName),
		testOp("replica-b", 5, models.OpCreateNode),
	}
	_, err := s.SaveOps(ctx, userID, ops)
	require.NoError(t, err)

	vector, err := s.GetVector(ctx, userID)
	require.NoError(t, err)

	assert.True(t, vector.Has("replica-a", 1))
	assert.True(t, vector.Has("replica-a", 2))
	assert.False(t, vector.Has("replica-a", 3))
	assert.True(t, vector.Has("replica-b", 5))
	assert.False(t, vector.Has("replica-b", 1))
}

func TestOpStorage_IsolatedByUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, ctx, s)
	bob := createTestUser(t, ctx, s)

	_, err := s.SaveOps(ctx, alice, []*models.Operation{testOp("replica-a", 1, models.OpCreateNode)})
	require.NoError(t, err)

	ops, err := s.GetOps(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, ops)
}

// Helper functions

func setupTestStorage(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	// Используем in-memory database для тестов
	storage, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		_ = storage.Close()
	}

	return storage, cleanup
}

func createTestUser(t *testing.T, ctx context.Context, s *Storage) string {
	userID := uuid.New().String()
	user := &models.User{
		ID:          userID,
		Username:    "testuser_" + userID[:8],
		AuthKeyHash: "hash",
		PublicSalt:  "salt",
		CreatedAt:   time.Now(),
		LastLogin:   nil,
	}

	err := s.CreateUser(ctx, user)
	require.NoError(t, err)
	return userID
}
