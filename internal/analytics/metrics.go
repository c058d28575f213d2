package analytics

import (
	"time"

	"go-pos-insight/internal/models"
)

// ComputeMetrics derives the dashboard's headline numbers from full record
// snapshots: today's revenue and profit, growth against the prior calendar
// day, the best-selling category, the low-stock watch list and a revenue
// forecast. The reference instant stands in for "now" so results are
// reproducible.
func ComputeMetrics(sales []models.Sale, products []models.Product, ref time.Time, lowStockThreshold int) BusinessMetrics {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}

	today := FilterByTimeframe(sales, TimeframeDay, ref)
	prior := FilterByTimeframe(sales, TimeframeDay, ref.Add(-24*time.Hour))

	metrics := BusinessMetrics{
		LowStockItems: []models.Product{},
	}

	var priorRevenue float64
	for _, s := range today {
		metrics.Revenue += s.TotalAmount
		metrics.Profit += s.Profit
	}
	for _, s := range prior {
		priorRevenue += s.TotalAmount
	}

	// Growth against a zero-revenue prior day would divide by zero, so a
	// first day with any sales reports exactly 100%.
	switch {
	case priorRevenue > 0:
		metrics.Growth = (metrics.Revenue - priorRevenue) / priorRevenue * 100
	case metrics.Revenue > 0:
		metrics.Growth = 100
	default:
		metrics.Growth = 0
	}

	metrics.TopSellingCategory = topCategory(today)

	for _, p := range products {
		// Out-of-stock items are a separate, more severe condition and
		// stay off the low-stock list.
		if p.StockQuantity > 0 && p.StockQuantity < lowStockThreshold {
			metrics.LowStockItems = append(metrics.LowStockItems, p)
		}
	}

	metrics.Forecast = Forecast(sales, ref)

	return metrics
}

// topCategory sums today's line-item quantities per category and picks the
// largest, first-encountered category winning ties. "N/A" when nothing sold.
func topCategory(sales []models.Sale) string {
	totals := make(map[string]int)
	var order []string
	for _, s := range sales {
		for _, item := range s.Items {
			if item.Product.ID == 0 {
				continue
			}
			cat := item.Product.Category
			if _, seen := totals[cat]; !seen {
				order = append(order, cat)
			}
			totals[cat] += item.Quantity
		}
	}

	best := "N/A"
	bestQty := 0
	for _, cat := range order {
		if totals[cat] > bestQty {
			best = cat
			bestQty = totals[cat]
		}
	}
	return best
}
