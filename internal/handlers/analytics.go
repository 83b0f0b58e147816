// internal/handlers/analytics.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/avasquez/stitchstock-be/internal/core/domain"
	"github.com/avasquez/stitchstock-be/internal/core/ports"
	"github.com/avasquez/stitchstock-be/internal/core/services"
)

// AnalyticsHandler derives the dashboard payload from a read-only ledger
// snapshot. Everything here is recomputed per request; stock levels change
// with every scan and the series are cheap folds over two small logs.
type AnalyticsHandler struct {
	ledger            ports.Ledger
	location          *time.Location
	lowStockThreshold int
	topSellersLimit   int
	logger            *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(ledger ports.Ledger, location *time.Location, lowStockThreshold, topSellersLimit int, logger *slog.Logger) *AnalyticsHandler {
	if location == nil {
		location = time.Local
	}
	return &AnalyticsHandler{
		ledger:            ledger,
		location:          location,
		lowStockThreshold: lowStockThreshold,
		topSellersLimit:   topSellersLimit,
		logger:            logger.With(slog.String("handler", "analytics")),
	}
}

// Chart is the precomputed series contract consumed by the external chart
// renderer: labels plus one dataset per drawn line/bar.
type Chart struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one named series of a chart.
type Dataset struct {
	Label string `json:"label"`
	Data  []int  `json:"data"`
}

// SKUAnalysisRow is one row of the per-SKU analysis table.
type SKUAnalysisRow struct {
	SKU      domain.SKU `json:"sku"`
	Sold     int        `json:"sold"`
	Stock    int        `json:"stock"`
	LowStock bool       `json:"low_stock"`
	Forecast int        `json:"forecast"`
}

// DashboardResponse is the full analytics payload.
type DashboardResponse struct {
	GeneratedAt time.Time        `json:"generated_at"`
	TotalPieces int              `json:"total_pieces"`
	TopSellers  Chart            `json:"top_sellers"`
	Turnover    Chart            `json:"turnover"`
	DailyTrend  Chart            `json:"daily_trend"`
	Forecast    Chart            `json:"forecast"`
	SKUAnalysis []SKUAnalysisRow `json:"sku_analysis"`
}

// Dashboard handles GET /api/v1/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := h.topSellersLimit
	if raw := r.URL.Query().Get("top"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	stock, sales := h.ledger.Snapshot(ctx)
	counts := services.CountSales(sales)

	resp := DashboardResponse{
		GeneratedAt: time.Now(),
		TotalPieces: h.ledger.TotalPieces(ctx),
		TopSellers:  topSellersChart(services.TopSellers(counts, limit)),
		Turnover:    turnoverChart(services.TurnoverSeries(stock, counts)),
		DailyTrend:  dailyTrendChart(services.DailyTrend(sales, h.location)),
		Forecast:    forecastChart(services.Forecast(stock, counts)),
		SKUAnalysis: h.skuAnalysis(stock, counts),
	}

	respondJSON(w, h.logger, http.StatusOK, resp)
}

func topSellersChart(ranked []services.SKUCount) Chart {
	chart := Chart{
		Labels:   make([]string, 0, len(ranked)),
		Datasets: []Dataset{{Label: "Units Sold", Data: make([]int, 0, len(ranked))}},
	}
	for _, c := range ranked {
		chart.Labels = append(chart.Labels, string(c.SKU))
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, c.Count)
	}
	return chart
}

func turnoverChart(series []services.TurnoverPoint) Chart {
	chart := Chart{
		Labels: make([]string, 0, len(series)),
		Datasets: []Dataset{
			{Label: "Stock", Data: make([]int, 0, len(series))},
			{Label: "Sold", Data: make([]int, 0, len(series))},
		},
	}
	for _, p := range series {
		chart.Labels = append(chart.Labels, string(p.SKU))
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, p.Stock)
		chart.Datasets[1].Data = append(chart.Datasets[1].Data, p.Sold)
	}
	return chart
}

func dailyTrendChart(days []services.DayCount) Chart {
	chart := Chart{
		Labels:   make([]string, 0, len(days)),
		Datasets: []Dataset{{Label: "Sales per Day", Data: make([]int, 0, len(days))}},
	}
	for _, d := range days {
		chart.Labels = append(chart.Labels, d.Day)
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, d.Count)
	}
	return chart
}

func forecastChart(series []services.ForecastPoint) Chart {
	chart := Chart{
		Labels:   make([]string, 0, len(series)),
		Datasets: []Dataset{{Label: "Forecasted Demand", Data: make([]int, 0, len(series))}},
	}
	for _, p := range series {
		chart.Labels = append(chart.Labels, string(p.SKU))
		chart.Datasets[0].Data = append(chart.Datasets[0].Data, p.Demand)
	}
	return chart
}

func (h *AnalyticsHandler) skuAnalysis(stock map[domain.SKU]int, counts []services.SKUCount) []SKUAnalysisRow {
	forecast := services.Forecast(stock, counts)
	flags := services.LowStockFlags(stock, h.lowStockThreshold)

	// Forecast and flags share the same lexicographic SKU ordering.
	rows := make([]SKUAnalysisRow, 0, len(forecast))
	for i, p := range forecast {
		rows = append(rows, SKUAnalysisRow{
			SKU:      p.SKU,
			Sold:     p.Sold,
			Stock:    flags[i].Stock,
			LowStock: flags[i].LowStock,
			Forecast: p.Demand,
		})
	}
	return rows
}
