// internal/handlers/export.go
package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tealeg/xlsx/v3"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/internal/core/services"
)

// ExportMetadata contains metadata about the export
type ExportMetadata struct {
	ExportDate  time.Time `json:"export_date"`
	TotalItems  int       `json:"total_items"`
	TotalPieces int       `json:"total_pieces"`
	SalesEvents int       `json:"sales_events"`
}

// JSONExportResponse represents the JSON export response structure
type JSONExportResponse struct {
	Inventory    []domain.Item       `json:"inventory"`
	SalesHistory []domain.SalesEvent `json:"sales_history"`
	Metadata     ExportMetadata      `json:"metadata"`
}

// ExportHandler handles export operations
type ExportHandler struct {
	ledger            ports.Ledger
	lowStockThreshold int
	logger            *slog.Logger
}

// NewExportHandler creates a new export handler
func NewExportHandler(ledger ports.Ledger, lowStockThreshold int, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		ledger:            ledger,
		lowStockThreshold: lowStockThreshold,
		logger:            logger.With(slog.String("handler", "export")),
	}
}

// ExportJSON handles GET /api/v1/export/json
func (h *ExportHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.ledger.ListItems(ctx, ports.ListParams{})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export inventory",
			slog.String("error", err.Error()))
		respondNotification(w, h.logger, statusForError(err), notifyError(err))
		return
	}
	for i := range items {
		items[i].LowStock = items[i].Stock < h.lowStockThreshold
	}

	_, sales := h.ledger.Snapshot(ctx)

	resp := JSONExportResponse{
		Inventory:    items,
		SalesHistory: sales,
		Metadata: ExportMetadata{
			ExportDate:  time.Now(),
			TotalItems:  len(items),
			TotalPieces: h.ledger.TotalPieces(ctx),
			SalesEvents: len(sales),
		},
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="inventory_%s.json"`,
		time.Now().Format("2006-01-02")))
	respondJSON(w, h.logger, http.StatusOK, resp)
}

// ExportExcel handles GET /api/v1/export/excel
func (h *ExportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := h.ledger.ListItems(ctx, ports.ListParams{})
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to export inventory",
			slog.String("error", err.Error()))
		respondNotification(w, h.logger, statusForError(err), notifyError(err))
		return
	}

	stock, sales := h.ledger.Snapshot(ctx)
	counts := services.CountSales(sales)

	file := xlsx.NewFile()

	if err := h.writeInventorySheet(file, items); err != nil {
		h.respondExcelError(w, ctx, err)
		return
	}
	if err := h.writeAnalysisSheet(file, stock, counts); err != nil {
		h.respondExcelError(w, ctx, err)
		return
	}

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if err := file.Write(w); err != nil {
		h.logger.ErrorContext(ctx, "failed to write excel response",
			slog.String("error", err.Error()))
	}
}

func (h *ExportHandler) writeInventorySheet(file *xlsx.File, items []domain.Item) error {
	sheet, err := file.AddSheet("Inventory")
	if err != nil {
		return fmt.Errorf("add inventory sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range []string{"SKU", "Design", "Style", "Color", "Size", "Stock", "Low Stock"} {
		header.AddCell().SetString(title)
	}

	for _, item := range items {
		row := sheet.AddRow()
		row.AddCell().SetString(string(item.SKU))
		row.AddCell().SetString(item.Design)
		row.AddCell().SetString(item.Style)
		row.AddCell().SetString(item.Color)
		row.AddCell().SetString(item.Size)
		row.AddCell().SetInt(item.Stock)
		row.AddCell().SetBool(item.Stock < h.lowStockThreshold)
	}

	return nil
}

func (h *ExportHandler) writeAnalysisSheet(file *xlsx.File, stock map[domain.SKU]int, counts []services.SKUCount) error {
	sheet, err := file.AddSheet("SKU Analysis")
	if err != nil {
		return fmt.Errorf("add analysis sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range []string{"SKU", "Units Sold", "Current Stock", "Forecasted Demand"} {
		header.AddCell().SetString(title)
	}

	for _, p := range services.Forecast(stock, counts) {
		row := sheet.AddRow()
		row.AddCell().SetString(string(p.SKU))
		row.AddCell().SetInt(p.Sold)
		row.AddCell().SetInt(stock[p.SKU])
		row.AddCell().SetInt(p.Demand)
	}

	return nil
}

func (h *ExportHandler) respondExcelError(w http.ResponseWriter, ctx context.Context, err error) {
	h.logger.ErrorContext(ctx, "failed to build excel export",
		slog.String("error", err.Error()))
	respondNotification(w, h.logger, http.StatusInternalServerError,
		Notification{Message: "Failed to build Excel export.", Severity: SeverityError})
}
