package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	cmodel "ClipKeeper/internal/cli/model"
	"ClipKeeper/internal/middleware"
	"ClipKeeper/internal/service"

	"go.uber.org/zap"
)

// SyncHandler обрабатывает обмен снимками истории между клиентом и сервером.
type SyncHandler struct {
	SyncService *service.SyncService
	Logger      *zap.SugaredLogger
}

// NewSyncHandler создаёт хендлер синхронизации
func NewSyncHandler(syncService *service.SyncService, logger *zap.SugaredLogger) *SyncHandler {
	return &SyncHandler{SyncService: syncService, Logger: logger}
}

// SyncRequest — снимок клиента: записи и доски целиком.
type SyncRequest struct {
	LastSyncAt string            `json:"last_sync_at,omitempty"`
	Items      []cmodel.Item     `json:"items"`
	Pinboards  []cmodel.Pinboard `json:"pinboards"`
}

type ConflictDTO struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

type SyncResponse struct {
	Applied         []string          `json:"applied"`
	Conflicts       []ConflictDTO     `json:"conflicts"`
	ServerItems     []cmodel.Item     `json:"server_items"`
	ServerPinboards []cmodel.Pinboard `json:"server_pinboards"`
	ServerTime      string            `json:"server_time"`
}

// Sync принимает снимок клиента и возвращает результат слияния.
func (h *SyncHandler) Sync(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Logger.Warnw("Sync: invalid request body", "error", err)
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}

	var sincePtr *time.Time
	if req.LastSyncAt != "" {
		if t, err := time.Parse(time.RFC3339, req.LastSyncAt); err == nil {
			sincePtr = &t
		} else {
			h.Logger.Warnw("Sync: invalid last_sync_at", "value", req.LastSyncAt, "error", err)
		}
	}

	res, err := h.SyncService.Sync(r.Context(), userID, service.SyncRequest{
		LastSyncAt: sincePtr,
		Items:      req.Items,
		Pinboards:  req.Pinboards,
	})
	if err != nil {
		h.Logger.Errorw("Sync: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	conflicts := make([]ConflictDTO, 0, len(res.Conflicts))
	for _, c := range res.Conflicts {
		conflicts = append(conflicts, ConflictDTO{ID: c.ID, Reason: c.Reason})
	}
	resp := SyncResponse{
		Applied:         append([]string{}, res.Applied...),
		Conflicts:       conflicts,
		ServerItems:     res.ServerItems,
		ServerPinboards: res.ServerPinboards,
		ServerTime:      res.ServerTime.UTC().Format(time.RFC3339),
	}
	if resp.ServerItems == nil {
		resp.ServerItems = []cmodel.Item{}
	}
	if resp.ServerPinboards == nil {
		resp.ServerPinboards = []cmodel.Pinboard{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}
