// internal/core/domain/sales.go
package domain

import "time"

// SalesEvent records one unit sold. Events are immutable and the sales log is
// append-only; it is the sole source of units-sold analytics.
type SalesEvent struct {
	SKU  SKU       `json:"sku"`
	Date time.Time `json:"date"`
}

// Item is a decoded inventory row as rendered in listings.
type Item struct {
	SKU      SKU    `json:"sku"`
	Design   string `json:"design"`
	Style    string `json:"style"`
	Color    string `json:"color"`
	Size     string `json:"size"`
	Stock    int    `json:"stock"`
	LowStock bool   `json:"low_stock"`
}
