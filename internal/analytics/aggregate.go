package analytics

import (
	"sort"

	"go-pos-insight/internal/models"
)

const topProductsLimit = 5

// Aggregate reduces an already-filtered sale list into dashboard totals, the
// top-5 product ranking and a time-bucketed series. The timeframe only
// controls the bucket granularity: hourly buckets for "day", calendar-date
// buckets for everything else.
//
// Product revenue in the ranking is quantity times the *current* catalog
// price carried on each line item's preloaded Product, not the historical
// PriceAtSale. The transaction-level totals stay historical. That mismatch
// mirrors how the dashboard has always reported catalog value; changing it
// would shift every top-product figure.
func Aggregate(sales []models.Sale, timeframe string) SalesAnalytics {
	analytics := SalesAnalytics{
		TopProducts: []ProductSales{},
		DailySales:  []SalesBucket{},
	}

	// 1. Transaction-level totals
	for _, s := range sales {
		analytics.TotalSales += s.TotalAmount
		analytics.TotalProfit += s.Profit
	}
	analytics.TotalTransactions = len(sales)
	if analytics.TotalTransactions > 0 {
		analytics.AverageTicket = analytics.TotalSales / float64(analytics.TotalTransactions)
	}

	// 2. Per-product ranking, grouped by product identity.
	// Insertion order is remembered so ties keep first-seen-first.
	byProduct := make(map[uint]*ProductSales)
	var productOrder []uint
	for _, s := range sales {
		for _, item := range s.Items {
			// A deleted product leaves a dangling reference; skip the
			// line item rather than failing the whole report.
			if item.Product.ID == 0 {
				continue
			}
			entry, exists := byProduct[item.Product.ID]
			if !exists {
				entry = &ProductSales{ProductID: item.Product.ID, Name: item.Product.Name}
				byProduct[item.Product.ID] = entry
				productOrder = append(productOrder, item.Product.ID)
			}
			entry.QuantitySold += item.Quantity
			entry.Revenue += float64(item.Quantity) * item.Product.Price
		}
	}
	ranked := make([]ProductSales, 0, len(productOrder))
	for _, id := range productOrder {
		ranked = append(ranked, *byProduct[id])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})
	if len(ranked) > topProductsLimit {
		ranked = ranked[:topProductsLimit]
	}
	analytics.TopProducts = ranked

	// 3. Time buckets
	buckets := make(map[string]*SalesBucket)
	for _, s := range sales {
		key := bucketKey(s, timeframe)
		b, exists := buckets[key]
		if !exists {
			b = &SalesBucket{Label: key}
			buckets[key] = b
		}
		b.Sales += s.TotalAmount
		b.Transactions++
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	// Lexicographic order is chronological for both key formats.
	sort.Strings(keys)
	for _, k := range keys {
		analytics.DailySales = append(analytics.DailySales, *buckets[k])
	}

	return analytics
}

func bucketKey(s models.Sale, timeframe string) string {
	if timeframe == TimeframeDay {
		return s.SaleTime.Format("15") + ":00"
	}
	return s.SaleTime.Format("2006-01-02")
}
