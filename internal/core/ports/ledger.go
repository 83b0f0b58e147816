// internal/core/ports/ledger.go
package ports

import (
	"context"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
)

// Sort fields accepted by ListParams.SortBy.
const (
	SortByDesign = "design"
	SortByStyle  = "style"
	SortByColor  = "color"
	SortBySize   = "size"
)

// ListParams holds parameters for listing inventory.
type ListParams struct {
	// SortBy selects the Item field ordered on; SortByDesign when empty.
	SortBy string
	// Search filters case-insensitively by substring of the SKU.
	Search string
}

// Ledger defines the application service port for the inventory ledger.
// This interface is implemented by the ledger service and consumed by the
// HTTP boundary and the scan bridge.
type Ledger interface {
	AddStock(ctx context.Context, design, style, color, size string, pieces int) (domain.SKU, error)
	RecordSale(ctx context.Context, sku domain.SKU) (domain.SalesEvent, error)
	ListItems(ctx context.Context, params ListParams) ([]domain.Item, error)
	TotalPieces(ctx context.Context) int
	Snapshot(ctx context.Context) (map[domain.SKU]int, []domain.SalesEvent)
}
