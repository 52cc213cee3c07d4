package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/treesync/internal/crdt"
	"github.com/iudanet/treesync/internal/models"
	"github.com/iudanet/treesync/pkg/api"
)

// contextKey тип для ключей контекста
type contextKey string

const (
	// UserIDKey ключ для хранения user_id в контексте
	UserIDKey contextKey = "user_id"
	// UsernameKey ключ для хранения username в контексте
	UsernameKey contextKey = "username"
)

// GetUserID извлекает user_id из контекста запроса
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}

// GetUsername извлекает username из контекста запроса
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

// OpStorage определяет интерфейс для работы с логом операций
type OpStorage interface {
	SaveOps(ctx context.Context, userID string, ops []*models.Operation) (int, error)
	GetOps(ctx context.Context, userID string) ([]*models.Operation, error)
	GetVector(ctx context.Context, userID string) (crdt.StateVector, error)
}

// OpsHandler обрабатывает публикацию и выдачу реплицируемых операций
type OpsHandler struct {
	logger  *slog.Logger
	storage OpStorage
}

// NewOpsHandler creates a new ops handler
func NewOpsHandler(logger *slog.Logger, storage OpStorage) *OpsHandler {
	return &OpsHandler{
		logger:  logger,
		storage: storage,
	}
}

// HandlePush обрабатывает POST /api/v1/ops/push
// Принимает операции от клиента, дубликаты игнорируются
func (h *OpsHandler) HandlePush(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode push request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ops := crdt.OpsFromWire(req.Ops)
	for _, op := range ops {
		if op.Origin == "" || op.Seq == 0 {
			h.logger.Warn("Rejecting malformed operation",
				"user_id", userID,
				"origin", op.Origin,
				"seq", op.Seq)
			http.Error(w, "Invalid operation: missing origin or seq", http.StatusBadRequest)
			return
		}
	}

	saved, err := h.storage.SaveOps(ctx, userID, ops)
	if err != nil {
		h.logger.Error("Failed to save operations", "error", err, "user_id", userID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	vector, err := h.storage.GetVector(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to build vector", "error", err, "user_id", userID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := api.PushResponse{
		Accepted: saved,
		Vector:   crdt.VectorToWire(vector),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}

	h.logger.Info("Push completed",
		"user_id", userID,
		"received", len(ops),
		"accepted", saved)
}

// HandlePull обрабатывает POST /api/v1/ops/pull
// Клиент передает свой вектор состояния, сервер отвечает операциями,
// которых у клиента нет
func (h *OpsHandler) HandlePull(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.Error("User ID not found in context")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.PullRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Failed to decode pull request", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	clientVector := crdt.VectorFromWire(req.Vector)

	ops, err := h.storage.GetOps(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to get operations", "error", err, "user_id", userID)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	serverVector := crdt.NewStateVector()
	missing := make([]*models.Operation, 0)
	for _, op := range ops {
		serverVector.Record(op.Origin, op.Seq)
		if !clientVector.Has(op.Origin, op.Seq) {
			missing = append(missing, op)
		}
	}

	response := api.PullResponse{
		Ops:    crdt.OpsToWire(missing),
		Vector: crdt.VectorToWire(serverVector),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}

	h.logger.Info("Pull completed",
		"user_id", userID,
		"total", len(ops),
		"returned", len(missing))
}
