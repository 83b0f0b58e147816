// internal/handlers/scan.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/internal/scanner"
)

// ScanHandler turns decoded scanner tokens into ledger sales. Tokens arrive
// one-shot over POST or as a stream over a websocket session; either way each
// token is one independent RecordSale call.
type ScanHandler struct {
	ledger    ports.Ledger
	queueSize int
	upgrader  websocket.Upgrader
	logger    *slog.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(ledger ports.Ledger, queueSize int, allowedOrigins []string, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		ledger:    ledger,
		queueSize: queueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger.With(slog.String("handler", "scan")),
	}
}

// ScanRequest is one decoded token.
type ScanRequest struct {
	Token string `json:"token"`
}

// ScanResult reports the outcome of one token.
type ScanResult struct {
	SKU          domain.SKU   `json:"sku"`
	Stock        *int         `json:"stock,omitempty"`
	Notification Notification `json:"notification"`
}

// Scan handles POST /api/v1/scan
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		respondNotification(w, h.logger, http.StatusBadRequest,
			Notification{Message: "Missing scan token.", Severity: SeverityError})
		return
	}

	result, err := h.processToken(ctx, strings.TrimSpace(req.Token))
	status := http.StatusOK
	if err != nil {
		status = statusForError(err)
	}
	respondJSON(w, h.logger, status, result)
}

// Stream handles GET /api/v1/scan/stream. The websocket session is the
// scanning view: connecting starts the bridge, every text message is one
// decoded token, and disconnecting stops the bridge unconditionally.
func (h *ScanHandler) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(ctx, "websocket upgrade failed",
			slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	results := make(chan ScanResult, h.queueSize)

	bridge := scanner.New(func(ctx context.Context, token string) {
		result, _ := h.processToken(ctx, token)
		select {
		case results <- result:
		default:
			// Session already gone; nobody is reading results anymore.
		}
	}, h.queueSize, h.logger)

	if err := bridge.Start(ctx); err != nil {
		h.logger.ErrorContext(ctx, "could not start scanner",
			slog.String("error", err.Error()))
		conn.WriteJSON(Notification{Message: "ERROR: Could not start QR scanner.", Severity: SeverityError})
		return
	}
	// Safe even if Start failed half-way or the reader exits first.
	defer bridge.Stop()

	// Reader: one goroutine feeding the bridge until the client goes away.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			token := strings.TrimSpace(string(msg))
			if token == "" {
				continue
			}
			if !bridge.Submit(token) {
				h.logger.WarnContext(ctx, "token rejected by scanner",
					slog.String("token", token))
			}
		}
	}()

	// Writer: stream every outcome back as a notification.
	for {
		select {
		case <-readerDone:
			return
		case result := <-results:
			if err := conn.WriteJSON(result); err != nil {
				h.logger.WarnContext(ctx, "failed to write scan result",
					slog.String("error", err.Error()))
				return
			}
		}
	}
}

// processToken is the single write path of the scan stream: one token, one
// RecordSale, one notification.
func (h *ScanHandler) processToken(ctx context.Context, token string) (ScanResult, error) {
	sku := domain.SKU(token)

	event, err := h.ledger.RecordSale(ctx, sku)
	if err != nil {
		h.logger.WarnContext(ctx, "scan rejected",
			slog.String("sku", token),
			slog.String("error", err.Error()))
		return ScanResult{SKU: sku, Notification: h.notifyScanError(sku, err)}, err
	}

	stock := h.currentStock(ctx, sku)
	h.logger.InfoContext(ctx, "scan deducted one piece",
		slog.String("sku", string(event.SKU)))

	return ScanResult{
		SKU:   event.SKU,
		Stock: stock,
		Notification: Notification{
			Message:  fmt.Sprintf("1 piece deducted: %s", event.SKU),
			Severity: SeveritySuccess,
		},
	}, nil
}

func (h *ScanHandler) notifyScanError(sku domain.SKU, err error) Notification {
	var (
		unknown    *domain.UnknownSKUError
		outOfStock *domain.OutOfStockError
	)
	switch {
	case errors.As(err, &unknown):
		return Notification{Message: fmt.Sprintf("Unrecognized SKU: %s", sku), Severity: SeverityError}
	case errors.As(err, &outOfStock):
		return Notification{Message: fmt.Sprintf("No stock for %s", sku), Severity: SeverityError}
	default:
		return notifyError(err)
	}
}

func (h *ScanHandler) currentStock(ctx context.Context, sku domain.SKU) *int {
	stock, _ := h.ledger.Snapshot(ctx)
	if n, ok := stock[sku]; ok {
		return &n
	}
	return nil
}

func originChecker(allowed []string) func(*http.Request) bool {
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}
