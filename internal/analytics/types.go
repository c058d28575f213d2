package analytics

import (
	"time"

	"go-pos-insight/internal/models"
)

// Timeframe values accepted by the filter. Anything else means "all time".
const (
	TimeframeDay   = "day"
	TimeframeWeek  = "week"
	TimeframeMonth = "month"
	TimeframeYear  = "year"
)

// DefaultLowStockThreshold is used when no threshold is configured.
const DefaultLowStockThreshold = 10

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	ProductID    uint    `json:"product_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	Revenue      float64 `json:"revenue"`
}

// SalesBucket is one point of the time-bucketed series. Label is "HH:00"
// for the day timeframe and "YYYY-MM-DD" otherwise.
type SalesBucket struct {
	Label        string  `json:"label"`
	Sales        float64 `json:"sales"`
	Transactions int     `json:"transactions"`
}

// SalesAnalytics is the aggregated view of a filtered transaction list.
type SalesAnalytics struct {
	TotalSales        float64        `json:"total_sales"`
	TotalProfit       float64        `json:"total_profit"`
	TotalTransactions int            `json:"total_transactions"`
	AverageTicket     float64        `json:"average_ticket"`
	TopProducts       []ProductSales `json:"top_products"`
	DailySales        []SalesBucket  `json:"daily_sales"`
}

// RevenueForecast is a moving-average projection with a heuristic
// confidence score.
type RevenueForecast struct {
	NextWeek   float64 `json:"next_week"`
	NextMonth  float64 `json:"next_month"`
	Confidence int     `json:"confidence"`
}

// BusinessMetrics compares today against the prior calendar day and carries
// the derived business signals the dashboard renders.
type BusinessMetrics struct {
	Revenue            float64          `json:"revenue"`
	Profit             float64          `json:"profit"`
	Growth             float64          `json:"growth"`
	TopSellingCategory string           `json:"top_selling_category"`
	LowStockItems      []models.Product `json:"low_stock_items"`
	Forecast           RevenueForecast  `json:"forecast"`
}

// Insight types and impact levels.
const (
	InsightRecommendation = "recommendation"
	InsightForecast       = "forecast"
	InsightAlert          = "alert"
	InsightObservation    = "observation"

	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// Insight is a structured, human-readable observation derived from the
// metrics. Data carries the machine-readable payload behind the text.
type Insight struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Impact      string                 `json:"impact"`
	Timestamp   time.Time              `json:"timestamp"`
	Data        map[string]interface{} `json:"data,omitempty"`
}
