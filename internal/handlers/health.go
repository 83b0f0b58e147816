// internal/handlers/health.go
package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/internal/pkg/config"
)

// HealthHandler reports liveness and store readiness.
type HealthHandler struct {
	store  ports.BlobStore
	cfg    *config.Config
	logger *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(store ports.BlobStore, cfg *config.Config, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		store:  store,
		cfg:    cfg,
		logger: logger.With(slog.String("handler", "health")),
	}
}

// HealthResponse is the health payload.
type HealthResponse struct {
	Status      string    `json:"status"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
	Store       string    `json:"store"`
	Timestamp   time.Time `json:"timestamp"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:      "ok",
		Version:     h.cfg.App.Version,
		Environment: h.cfg.App.Environment,
		Store:       h.cfg.Store.Backend,
		Timestamp:   time.Now(),
	})
}

// Readiness handles GET /ready; it fails when the blob store is unreachable.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.WarnContext(ctx, "store not ready",
			slog.String("error", err.Error()))
		respondJSON(w, h.logger, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{"status": "ready"})
}
