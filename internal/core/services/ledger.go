// internal/core/services/ledger.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
)

// Ledger owns the system's sole mutable state: the inventory snapshot and the
// append-only sales log. Both are loaded once at construction, mutated in
// memory, and written back as a pair on every mutation. A failed write
// surfaces as PersistenceError while the in-memory state stays authoritative
// for the session.
//
// The mutex stands in for the host event loop of the original design: every
// public operation runs to completion under it, so no two sales can
// interleave their read-modify-write on the same SKU.
type Ledger struct {
	store  ports.BlobStore
	logger *slog.Logger

	mu    sync.Mutex
	stock map[domain.SKU]int
	sales []domain.SalesEvent
}

// Statically assert that *Ledger implements the Ledger interface.
var _ ports.Ledger = (*Ledger)(nil)

// NewLedger loads both blobs from the store and returns a ready ledger.
// Absent or unparsable blobs load as empty state, never as a failure; only an
// unreachable store is an error.
func NewLedger(ctx context.Context, store ports.BlobStore, logger *slog.Logger) (*Ledger, error) {
	l := &Ledger{
		store:  store,
		logger: logger.With(slog.String("service", "ledger")),
		stock:  make(map[domain.SKU]int),
	}

	if err := l.load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load ledger state: %w", err)
	}

	l.logger.InfoContext(ctx, "ledger loaded",
		slog.Int("skus", len(l.stock)),
		slog.Int("sales_events", len(l.sales)))

	return l, nil
}

// AddStock validates the four identity fields and the piece count, increments
// the SKU's stock (creating it at pieces when absent) and persists. Returns
// the resulting SKU so callers can render its label.
func (l *Ledger) AddStock(ctx context.Context, design, style, color, size string, pieces int) (domain.SKU, error) {
	if pieces <= 0 {
		return "", &domain.ValidationError{Field: "pieces", Reason: "must be a positive integer"}
	}

	sku, err := domain.MakeSKU(design, style, color, size)
	if err != nil {
		return "", err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.stock[sku] += pieces

	if err := l.persist(ctx); err != nil {
		return sku, err
	}

	l.logger.InfoContext(ctx, "stock added",
		slog.String("sku", string(sku)),
		slog.Int("pieces", pieces),
		slog.Int("stock", l.stock[sku]))

	return sku, nil
}

// RecordSale decrements the SKU by exactly one unit and appends one sales
// event. An absent SKU fails with UnknownSKUError, a zero-stock SKU with
// OutOfStockError; neither mutates anything. Calls are independent: rapid
// repeats of the same token decrement repeatedly, frame de-duplication is the
// decoder's concern.
func (l *Ledger) RecordSale(ctx context.Context, sku domain.SKU) (domain.SalesEvent, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, ok := l.stock[sku]
	if !ok {
		return domain.SalesEvent{}, &domain.UnknownSKUError{SKU: sku}
	}
	if current == 0 {
		return domain.SalesEvent{}, &domain.OutOfStockError{SKU: sku}
	}

	event := domain.SalesEvent{SKU: sku, Date: time.Now()}
	l.stock[sku] = current - 1
	l.sales = append(l.sales, event)

	if err := l.persist(ctx); err != nil {
		return event, err
	}

	l.logger.InfoContext(ctx, "sale recorded",
		slog.String("sku", string(sku)),
		slog.Int("stock", l.stock[sku]))

	return event, nil
}

// ListItems returns decoded inventory rows, filtered case-insensitively by
// substring of the SKU and stably sorted on the chosen field, ties broken by
// SKU. A stored SKU that no longer decodes fails with DecodeError; that is
// unreachable through this API and indicates an externally edited store.
func (l *Ledger) ListItems(ctx context.Context, params ports.ListParams) ([]domain.Item, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	search := strings.ToLower(strings.TrimSpace(params.Search))

	items := make([]domain.Item, 0, len(l.stock))
	for sku, stock := range l.stock {
		if search != "" && !strings.Contains(strings.ToLower(string(sku)), search) {
			continue
		}
		parts, err := domain.DecodeSKU(sku)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.Item{
			SKU:    sku,
			Design: parts.Design,
			Style:  parts.Style,
			Color:  parts.Color,
			Size:   parts.Size,
			Stock:  stock,
		})
	}

	field := sortField(params.SortBy)
	slices.SortStableFunc(items, func(a, b domain.Item) int {
		if c := strings.Compare(field(a), field(b)); c != 0 {
			return c
		}
		return strings.Compare(string(a.SKU), string(b.SKU))
	})

	return items, nil
}

// TotalPieces returns the sum of all stock values, recomputed on every call.
func (l *Ledger) TotalPieces(_ context.Context) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	total := 0
	for _, stock := range l.stock {
		total += stock
	}
	return total
}

// Snapshot returns defensive copies of both logs for read-only analytics.
func (l *Ledger) Snapshot(_ context.Context) (map[domain.SKU]int, []domain.SalesEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stock := make(map[domain.SKU]int, len(l.stock))
	for sku, n := range l.stock {
		stock[sku] = n
	}
	sales := make([]domain.SalesEvent, len(l.sales))
	copy(sales, l.sales)

	return stock, sales
}

func sortField(sortBy string) func(domain.Item) string {
	switch sortBy {
	case ports.SortByStyle:
		return func(i domain.Item) string { return i.Style }
	case ports.SortByColor:
		return func(i domain.Item) string { return i.Color }
	case ports.SortBySize:
		return func(i domain.Item) string { return i.Size }
	default:
		return func(i domain.Item) string { return i.Design }
	}
}

func (l *Ledger) load(ctx context.Context) error {
	raw, found, err := l.store.Get(ctx, ports.KeyInventory)
	if err != nil {
		return fmt.Errorf("read %s: %w", ports.KeyInventory, err)
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &l.stock); err != nil {
			l.logger.WarnContext(ctx, "unparsable inventory blob, starting empty",
				slog.String("error", err.Error()))
			l.stock = make(map[domain.SKU]int)
		}
	}
	if l.stock == nil {
		l.stock = make(map[domain.SKU]int)
	}

	raw, found, err = l.store.Get(ctx, ports.KeySalesHistory)
	if err != nil {
		return fmt.Errorf("read %s: %w", ports.KeySalesHistory, err)
	}
	if found {
		if err := json.Unmarshal([]byte(raw), &l.sales); err != nil {
			l.logger.WarnContext(ctx, "unparsable sales history blob, starting empty",
				slog.String("error", err.Error()))
			l.sales = nil
		}
	}

	// Keep the log ordered even if the stored blob was hand-edited.
	sort.SliceStable(l.sales, func(i, j int) bool {
		return l.sales[i].Date.Before(l.sales[j].Date)
	})

	return nil
}

// persist writes both blobs back as a pair. Callers hold the mutex.
func (l *Ledger) persist(ctx context.Context) error {
	inv, err := json.Marshal(l.stock)
	if err != nil {
		return &domain.PersistenceError{Op: ports.KeyInventory, Err: err}
	}
	sales := l.sales
	if sales == nil {
		sales = []domain.SalesEvent{}
	}
	hist, err := json.Marshal(sales)
	if err != nil {
		return &domain.PersistenceError{Op: ports.KeySalesHistory, Err: err}
	}

	if err := l.store.Set(ctx, ports.KeyInventory, string(inv)); err != nil {
		return &domain.PersistenceError{Op: ports.KeyInventory, Err: err}
	}
	if err := l.store.Set(ctx, ports.KeySalesHistory, string(hist)); err != nil {
		return &domain.PersistenceError{Op: ports.KeySalesHistory, Err: err}
	}

	return nil
}
