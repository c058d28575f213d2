package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-insight/internal/models"
)

func product(id uint, name string, price float64) models.Product {
	return models.Product{ID: id, Name: name, Price: price}
}

func saleWithItems(ts time.Time, total, profit float64, items ...models.SaleItem) models.Sale {
	return models.Sale{
		TotalAmount: total,
		Profit:      profit,
		SaleTime:    ts,
		Status:      "completed",
		Items:       items,
	}
}

func TestAggregateEmptyInputYieldsZeroes(t *testing.T) {
	result := Aggregate(nil, TimeframeMonth)

	assert.Zero(t, result.TotalSales)
	assert.Zero(t, result.TotalProfit)
	assert.Zero(t, result.TotalTransactions)
	assert.Zero(t, result.AverageTicket)
	assert.Empty(t, result.TopProducts)
	assert.Empty(t, result.DailySales)
	assert.NotNil(t, result.TopProducts)
	assert.NotNil(t, result.DailySales)
}

func TestAggregateTotalsAndAverageTicket(t *testing.T) {
	ts := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		saleWithItems(ts, 100, 40),
		saleWithItems(ts.Add(time.Hour), 50, 10),
	}

	result := Aggregate(sales, TimeframeMonth)

	assert.Equal(t, 150.0, result.TotalSales)
	assert.Equal(t, 50.0, result.TotalProfit)
	assert.Equal(t, 2, result.TotalTransactions)
	assert.Equal(t, 75.0, result.AverageTicket)
}

func TestAggregateTopProductsOrderedByRevenue(t *testing.T) {
	ts := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	coffee := product(1, "Coffee", 30)
	tea := product(2, "Tea", 10)
	juice := product(3, "Juice", 20)

	sales := []models.Sale{
		saleWithItems(ts, 60, 0,
			models.SaleItem{Product: coffee, Quantity: 1, PriceAtSale: 30},
			models.SaleItem{Product: tea, Quantity: 1, PriceAtSale: 10},
			models.SaleItem{Product: juice, Quantity: 1, PriceAtSale: 20},
		),
	}

	result := Aggregate(sales, TimeframeMonth)

	require.Len(t, result.TopProducts, 3)
	assert.Equal(t, []float64{30, 20, 10}, []float64{
		result.TopProducts[0].Revenue,
		result.TopProducts[1].Revenue,
		result.TopProducts[2].Revenue,
	})
	assert.Equal(t, "Coffee", result.TopProducts[0].Name)
}

func TestAggregateTopProductsTiesKeepFirstSeenOrder(t *testing.T) {
	ts := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	first := product(1, "First", 25)
	second := product(2, "Second", 25)

	sales := []models.Sale{
		saleWithItems(ts, 50, 0,
			models.SaleItem{Product: first, Quantity: 1, PriceAtSale: 25},
			models.SaleItem{Product: second, Quantity: 1, PriceAtSale: 25},
		),
	}

	result := Aggregate(sales, TimeframeMonth)

	require.Len(t, result.TopProducts, 2)
	assert.Equal(t, "First", result.TopProducts[0].Name)
	assert.Equal(t, "Second", result.TopProducts[1].Name)
}

func TestAggregateTopProductsCapsAtFive(t *testing.T) {
	ts := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	var items []models.SaleItem
	for i := uint(1); i <= 7; i++ {
		items = append(items, models.SaleItem{
			Product:  product(i, "P", float64(i)),
			Quantity: 1,
		})
	}
	sales := []models.Sale{saleWithItems(ts, 28, 0, items...)}

	result := Aggregate(sales, TimeframeMonth)

	require.Len(t, result.TopProducts, 5)
	assert.Equal(t, 7.0, result.TopProducts[0].Revenue)
	assert.Equal(t, 3.0, result.TopProducts[4].Revenue)
}

func TestAggregateUsesCurrentCatalogPriceForRanking(t *testing.T) {
	// The ranking values units at today's catalog price even when the sale
	// happened at a different price. Long-standing dashboard behavior.
	ts := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	repriced := product(1, "Repriced", 50) // current price 50

	sales := []models.Sale{
		saleWithItems(ts, 80, 0,
			models.SaleItem{Product: repriced, Quantity: 2, PriceAtSale: 40}, // sold at 40
		),
	}

	result := Aggregate(sales, TimeframeMonth)

	require.Len(t, result.TopProducts, 1)
	assert.Equal(t, 100.0, result.TopProducts[0].Revenue) // 2 * current 50
	assert.Equal(t, 80.0, result.TotalSales)              // historical total untouched
}

func TestAggregateSkipsDanglingProductReferences(t *testing.T) {
	ts := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		saleWithItems(ts, 30, 0,
			models.SaleItem{ProductID: 99, Quantity: 1, PriceAtSale: 30}, // deleted product
			models.SaleItem{Product: product(1, "Alive", 15), Quantity: 1, PriceAtSale: 15},
		),
	}

	result := Aggregate(sales, TimeframeMonth)

	require.Len(t, result.TopProducts, 1)
	assert.Equal(t, "Alive", result.TopProducts[0].Name)
	// Transaction totals are unaffected by the skip
	assert.Equal(t, 30.0, result.TotalSales)
}

func TestAggregateHourlyBucketsForDayTimeframe(t *testing.T) {
	sales := []models.Sale{
		saleWithItems(time.Date(2024, 6, 12, 7, 15, 0, 0, time.UTC), 10, 0),
		saleWithItems(time.Date(2024, 6, 12, 7, 45, 0, 0, time.UTC), 20, 0),
		saleWithItems(time.Date(2024, 6, 12, 13, 5, 0, 0, time.UTC), 5, 0),
	}

	result := Aggregate(sales, TimeframeDay)

	require.Len(t, result.DailySales, 2)
	assert.Equal(t, "07:00", result.DailySales[0].Label)
	assert.Equal(t, 30.0, result.DailySales[0].Sales)
	assert.Equal(t, 2, result.DailySales[0].Transactions)
	assert.Equal(t, "13:00", result.DailySales[1].Label)
}

func TestAggregateDateBucketsSortedAscending(t *testing.T) {
	sales := []models.Sale{
		saleWithItems(time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC), 10, 0),
		saleWithItems(time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC), 20, 0),
		saleWithItems(time.Date(2024, 6, 11, 10, 0, 0, 0, time.UTC), 30, 0),
	}

	result := Aggregate(sales, TimeframeWeek)

	require.Len(t, result.DailySales, 3)
	assert.Equal(t, "2024-06-10", result.DailySales[0].Label)
	assert.Equal(t, "2024-06-11", result.DailySales[1].Label)
	assert.Equal(t, "2024-06-12", result.DailySales[2].Label)
}

func TestAggregateBucketSumMatchesTotalSales(t *testing.T) {
	sales := []models.Sale{
		saleWithItems(time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC), 12.5, 0),
		saleWithItems(time.Date(2024, 6, 10, 17, 0, 0, 0, time.UTC), 7.25, 0),
		saleWithItems(time.Date(2024, 6, 11, 11, 0, 0, 0, time.UTC), 80, 0),
		saleWithItems(time.Date(2024, 6, 12, 23, 0, 0, 0, time.UTC), 0.25, 0),
	}

	for _, timeframe := range []string{TimeframeDay, TimeframeWeek, TimeframeMonth, "all"} {
		result := Aggregate(sales, timeframe)
		var bucketSum float64
		for _, b := range result.DailySales {
			bucketSum += b.Sales
		}
		assert.InDelta(t, result.TotalSales, bucketSum, 1e-9, "timeframe %q", timeframe)
	}
}

func TestFilteredSalesBucketInReferenceLocation(t *testing.T) {
	// A sale stored with a +05:00 offset is the same instant as 04:00 UTC.
	// After filtering against a UTC reference, its hour bucket must read
	// off the reference clock, not the stored offset.
	ref := time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)
	plusFive := time.FixedZone("UTC+5", 5*3600)
	sales := []models.Sale{
		saleAt(time.Date(2024, 6, 12, 9, 0, 0, 0, plusFive), 10),
	}

	filtered := FilterByTimeframe(sales, TimeframeDay, ref)
	require.Len(t, filtered, 1)

	result := Aggregate(filtered, TimeframeDay)
	require.Len(t, result.DailySales, 1)
	assert.Equal(t, "04:00", result.DailySales[0].Label)
}

func TestAggregateIsDeterministic(t *testing.T) {
	ts := time.Date(2024, 6, 12, 10, 0, 0, 0, time.UTC)
	sales := []models.Sale{
		saleWithItems(ts, 60, 20,
			models.SaleItem{Product: product(1, "A", 30), Quantity: 1},
			models.SaleItem{Product: product(2, "B", 30), Quantity: 1},
		),
		saleWithItems(ts.Add(2*time.Hour), 15, 5,
			models.SaleItem{Product: product(3, "C", 15), Quantity: 1},
		),
	}

	first := Aggregate(sales, TimeframeDay)
	second := Aggregate(sales, TimeframeDay)

	assert.Equal(t, first, second)
}
