// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
)

// Notification severities.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Notification is the transient user-visible message every outcome maps to.
// The view shows it and auto-dismisses; no ledger error is fatal.
type Notification struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondNotification(w http.ResponseWriter, logger *slog.Logger, status int, n Notification) {
	respondJSON(w, logger, status, map[string]Notification{"notification": n})
}

// statusForError maps the domain error taxonomy onto HTTP statuses.
func statusForError(err error) int {
	var (
		validationErr  *domain.ValidationError
		unknownSKUErr  *domain.UnknownSKUError
		outOfStockErr  *domain.OutOfStockError
		persistenceErr *domain.PersistenceError
		decodeErr      *domain.DecodeError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &unknownSKUErr):
		return http.StatusNotFound
	case errors.As(err, &outOfStockErr):
		return http.StatusConflict
	case errors.As(err, &decodeErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &persistenceErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// notifyError converts a ledger error into its notification.
func notifyError(err error) Notification {
	return Notification{Message: err.Error(), Severity: SeverityError}
}
