// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/avasquez/stitchstock-be/internal/adapters/qrgen"
	"github.com/avasquez/stitchstock-be/internal/core/domain"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
)

// InventoryHandler handles stock intake and inventory listing.
type InventoryHandler struct {
	ledger            ports.Ledger
	qr                *qrgen.Generator
	lowStockThreshold int
	logger            *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(ledger ports.Ledger, qr *qrgen.Generator, lowStockThreshold int, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		ledger:            ledger,
		qr:                qr,
		lowStockThreshold: lowStockThreshold,
		logger:            logger.With(slog.String("handler", "inventory")),
	}
}

// AddStockRequest represents the request body for adding stock
type AddStockRequest struct {
	Design string `json:"design"`
	Style  string `json:"style"`
	Color  string `json:"color"`
	Size   string `json:"size"`
	Pieces int    `json:"pieces"`
}

// AddStockResponse carries the resulting SKU; the client renders its QR label
// from the companion qr_url.
type AddStockResponse struct {
	SKU          domain.SKU   `json:"sku"`
	Stock        int          `json:"stock,omitempty"`
	QRURL        string       `json:"qr_url"`
	Notification Notification `json:"notification"`
}

// ListInventoryResponse is the listing page payload.
type ListInventoryResponse struct {
	Items       []domain.Item `json:"items"`
	TotalPieces int           `json:"total_pieces"`
}

// AddStock handles POST /api/v1/stock
func (h *InventoryHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondNotification(w, h.logger, http.StatusBadRequest,
			Notification{Message: "Enter valid product details.", Severity: SeverityError})
		return
	}

	sku, err := h.ledger.AddStock(ctx, req.Design, req.Style, req.Color, req.Size, req.Pieces)
	if err != nil {
		h.logger.WarnContext(ctx, "add stock rejected",
			slog.String("error", err.Error()))
		respondNotification(w, h.logger, statusForError(err), notifyError(err))
		return
	}

	h.logger.InfoContext(ctx, "stock added",
		slog.String("sku", string(sku)),
		slog.Int("pieces", req.Pieces))

	respondJSON(w, h.logger, http.StatusCreated, AddStockResponse{
		SKU:   sku,
		QRURL: fmt.Sprintf("/api/v1/inventory/%s/qr", sku),
		Notification: Notification{
			Message:  fmt.Sprintf("Added %d pieces for %s", req.Pieces, sku),
			Severity: SeveritySuccess,
		},
	})
}

// ListInventory handles GET /api/v1/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	params := ports.ListParams{
		SortBy: r.URL.Query().Get("sort"),
		Search: r.URL.Query().Get("search"),
	}

	items, err := h.ledger.ListItems(ctx, params)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list inventory",
			slog.String("error", err.Error()))
		respondNotification(w, h.logger, statusForError(err), notifyError(err))
		return
	}

	for i := range items {
		items[i].LowStock = items[i].Stock < h.lowStockThreshold
	}

	respondJSON(w, h.logger, http.StatusOK, ListInventoryResponse{
		Items:       items,
		TotalPieces: h.ledger.TotalPieces(ctx),
	})
}

// RenderQR handles GET /api/v1/inventory/{sku}/qr
func (h *InventoryHandler) RenderQR(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sku := domain.SKU(r.PathValue("sku"))

	if _, err := domain.DecodeSKU(sku); err != nil {
		respondNotification(w, h.logger, statusForError(err), notifyError(err))
		return
	}

	stock, _ := h.ledger.Snapshot(ctx)
	if _, ok := stock[sku]; !ok {
		err := &domain.UnknownSKUError{SKU: sku}
		respondNotification(w, h.logger, statusForError(err), notifyError(err))
		return
	}

	png, err := h.qr.RenderPNG(sku)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to render qr label",
			slog.String("sku", string(sku)),
			slog.String("error", err.Error()))
		respondNotification(w, h.logger, http.StatusInternalServerError,
			Notification{Message: "Could not render QR label.", Severity: SeverityError})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.png"`, sku))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.ErrorContext(ctx, "failed to write qr response",
			slog.String("error", err.Error()))
	}
}
