// internal/core/services/analytics.go
package services

import (
	"math"
	"slices"
	"strings"
	"time"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
)

// Analytics defaults.
const (
	DefaultTopSellersLimit   = 10
	DefaultLowStockThreshold = 5

	// forecastGrowth is a fixed 20%-growth heuristic, a placeholder policy
	// rather than a forecasting model.
	forecastGrowth = 1.2
)

// SKUCount pairs a SKU with its units-sold count.
type SKUCount struct {
	SKU   domain.SKU `json:"sku"`
	Count int        `json:"count"`
}

// TurnoverPoint pairs current stock with units sold for one SKU.
type TurnoverPoint struct {
	SKU   domain.SKU `json:"sku"`
	Stock int        `json:"stock"`
	Sold  int        `json:"sold"`
}

// DayCount is the number of sales on one calendar day.
type DayCount struct {
	Day   string `json:"day"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// ForecastPoint is the projected demand for one SKU.
type ForecastPoint struct {
	SKU    domain.SKU `json:"sku"`
	Sold   int        `json:"sold"`
	Demand int        `json:"demand"`
}

// StockFlag marks whether one SKU is below the low-stock threshold.
type StockFlag struct {
	SKU      domain.SKU `json:"sku"`
	Stock    int        `json:"stock"`
	LowStock bool       `json:"low_stock"`
}

// CountSales folds the sales log into per-SKU counts, ordered by first
// occurrence in the log. That order is what breaks top-seller ties.
func CountSales(sales []domain.SalesEvent) []SKUCount {
	index := make(map[domain.SKU]int, len(sales))
	counts := make([]SKUCount, 0)

	for _, ev := range sales {
		i, seen := index[ev.SKU]
		if !seen {
			index[ev.SKU] = len(counts)
			counts = append(counts, SKUCount{SKU: ev.SKU, Count: 1})
			continue
		}
		counts[i].Count++
	}

	return counts
}

// TopSellers ranks counts descending and truncates to n. The sort is stable,
// so equal counts keep their first-sale order. n <= 0 falls back to the
// default limit.
func TopSellers(counts []SKUCount, n int) []SKUCount {
	if n <= 0 {
		n = DefaultTopSellersLimit
	}

	ranked := make([]SKUCount, len(counts))
	copy(ranked, counts)
	slices.SortStableFunc(ranked, func(a, b SKUCount) int {
		return b.Count - a.Count
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// TurnoverSeries pairs stock with units sold for every SKU currently in
// stock, including zero-sale SKUs. SKUs are ordered lexicographically.
func TurnoverSeries(stock map[domain.SKU]int, counts []SKUCount) []TurnoverPoint {
	sold := countIndex(counts)

	series := make([]TurnoverPoint, 0, len(stock))
	for _, sku := range sortedSKUs(stock) {
		series = append(series, TurnoverPoint{
			SKU:   sku,
			Stock: stock[sku],
			Sold:  sold[sku],
		})
	}
	return series
}

// DailyTrend groups sales by calendar day in loc and counts per day,
// chronologically ascending. Days without sales do not appear: gaps are real
// gaps, never zero-filled.
func DailyTrend(sales []domain.SalesEvent, loc *time.Location) []DayCount {
	if loc == nil {
		loc = time.Local
	}

	byDay := make(map[string]int)
	for _, ev := range sales {
		byDay[ev.Date.In(loc).Format(time.DateOnly)]++
	}

	days := make([]DayCount, 0, len(byDay))
	for day, count := range byDay {
		days = append(days, DayCount{Day: day, Count: count})
	}
	slices.SortFunc(days, func(a, b DayCount) int {
		return strings.Compare(a.Day, b.Day)
	})

	return days
}

// Forecast projects demand per stocked SKU as ceil(sold * 1.2).
func Forecast(stock map[domain.SKU]int, counts []SKUCount) []ForecastPoint {
	sold := countIndex(counts)

	series := make([]ForecastPoint, 0, len(stock))
	for _, sku := range sortedSKUs(stock) {
		n := sold[sku]
		series = append(series, ForecastPoint{
			SKU:    sku,
			Sold:   n,
			Demand: int(math.Ceil(float64(n) * forecastGrowth)),
		})
	}
	return series
}

// LowStockFlags flags every stocked SKU whose stock is strictly below
// threshold. threshold <= 0 falls back to the default.
func LowStockFlags(stock map[domain.SKU]int, threshold int) []StockFlag {
	if threshold <= 0 {
		threshold = DefaultLowStockThreshold
	}

	flags := make([]StockFlag, 0, len(stock))
	for _, sku := range sortedSKUs(stock) {
		flags = append(flags, StockFlag{
			SKU:      sku,
			Stock:    stock[sku],
			LowStock: stock[sku] < threshold,
		})
	}
	return flags
}

func countIndex(counts []SKUCount) map[domain.SKU]int {
	index := make(map[domain.SKU]int, len(counts))
	for _, c := range counts {
		index[c.SKU] = c.Count
	}
	return index
}

func sortedSKUs(stock map[domain.SKU]int) []domain.SKU {
	skus := make([]domain.SKU, 0, len(stock))
	for sku := range stock {
		skus = append(skus, sku)
	}
	slices.SortFunc(skus, func(a, b domain.SKU) int {
		return strings.Compare(string(a), string(b))
	})
	return skus
}
