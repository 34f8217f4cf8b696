package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/threadboard/threadboard/backend/internal/service"
	"github.com/threadboard/threadboard/shared/config"
	"github.com/threadboard/threadboard/shared/logger"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	auth       service.AuthService
	thread     service.ThreadService
	engagement service.EngagementService
	health     HealthChecker
	cfg        *config.Config
}

func New(auth service.AuthService, thread service.ThreadService, engagement service.EngagementService, health HealthChecker, cfg *config.Config) *Handler {
	return &Handler{
		auth:       auth,
		thread:     thread,
		engagement: engagement,
		health:     health,
		cfg:        cfg,
	}
}

// writeJSON encodes v before touching the response so an encoding failure
// can still be reported as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
