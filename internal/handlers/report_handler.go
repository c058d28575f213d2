package handlers

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"go-pos-insight/internal/analytics"
	"go-pos-insight/internal/database"
	"go-pos-insight/internal/models"

	"github.com/gin-gonic/gin"
)

// DashboardResponse bundles everything the dashboard screen renders in one
// call: headline metrics plus the insight feed derived from them.
type DashboardResponse struct {
	Metrics  analytics.BusinessMetrics `json:"metrics"`
	Insights []analytics.Insight       `json:"insights"`
}

// AnalyticsResponse wraps the aggregated figures for one timeframe.
type AnalyticsResponse struct {
	Timeframe string                   `json:"timeframe"`
	Analytics analytics.SalesAnalytics `json:"analytics"`
	// RecentSales lets the terminal show the latest activity next to the charts
	RecentSales []models.Sale `json:"recent_sales"`
}

// --- GET: /api/reports/dashboard ---
// GetDashboard computes today-vs-yesterday metrics over a fresh snapshot and
// attaches the generated insights.
func GetDashboard(c *gin.Context) {
	sales, err := database.FetchSalesSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	products, err := database.FetchProductSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	now := time.Now()
	metrics := analytics.ComputeMetrics(sales, products, now, lowStockThreshold())

	c.JSON(http.StatusOK, DashboardResponse{
		Metrics:  metrics,
		Insights: analytics.GenerateInsights(metrics, now),
	})
}

// --- GET: /api/reports/analytics?timeframe=day|week|month|year|all ---
func GetSalesAnalytics(c *gin.Context) {
	timeframe := c.DefaultQuery("timeframe", analytics.TimeframeMonth)

	sales, err := database.FetchSalesSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	filtered := analytics.FilterByTimeframe(sales, timeframe, time.Now())

	// Last 10 sales, newest first, for the activity list
	recent := make([]models.Sale, 0, 10)
	for i := len(filtered) - 1; i >= 0 && len(recent) < 10; i-- {
		recent = append(recent, filtered[i])
	}

	c.JSON(http.StatusOK, AnalyticsResponse{
		Timeframe:   timeframe,
		Analytics:   analytics.Aggregate(filtered, timeframe),
		RecentSales: recent,
	})
}

// --- GET: /api/reports/insights ---
func GetInsights(c *gin.Context) {
	sales, err := database.FetchSalesSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	products, err := database.FetchProductSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	now := time.Now()
	metrics := analytics.ComputeMetrics(sales, products, now, lowStockThreshold())

	c.JSON(http.StatusOK, gin.H{"insights": analytics.GenerateInsights(metrics, now)})
}

// --- DATA STRUCTURES FOR VALUATION REPORT ---

// ValuationItem represents a single row in the valuation table
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitCost  float64 `json:"unit_cost"`
	TotalCost float64 `json:"total_cost"`
}

// CategoryGroup represents one category section of the report
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

// ValuationResponse is the final payload sent to the frontend
type ValuationResponse struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grand_total"`
}

// --- GET: /api/reports/valuation ---
// GetStockValuation calculates the total monetary value of all physical inventory
func GetStockValuation(c *gin.Context) {
	products, err := database.FetchProductSnapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	var grandTotal float64
	groupedMap := make(map[string]*CategoryGroup)
	var categoryOrder []string

	for _, p := range products {
		// Items with no category get grouped as "Uncategorized"
		catName := p.Category
		if catName == "" {
			catName = "Uncategorized"
		}

		if _, exists := groupedMap[catName]; !exists {
			groupedMap[catName] = &CategoryGroup{
				CategoryName: catName,
				Items:        []ValuationItem{},
			}
			categoryOrder = append(categoryOrder, catName)
		}

		itemTotal := float64(p.StockQuantity) * p.Cost

		groupedMap[catName].Items = append(groupedMap[catName].Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.StockQuantity,
			UnitCost:  p.Cost,
			TotalCost: itemTotal,
		})
		groupedMap[catName].Subtotal += itemTotal
		grandTotal += itemTotal
	}

	response := ValuationResponse{GrandTotal: grandTotal, Categories: []CategoryGroup{}}
	for _, catName := range categoryOrder {
		response.Categories = append(response.Categories, *groupedMap[catName])
	}

	c.JSON(http.StatusOK, response)
}

// lowStockThreshold reads LOW_STOCK_THRESHOLD from the environment.
// Defaults to 10 when unset or unparsable.
func lowStockThreshold() int {
	raw := os.Getenv("LOW_STOCK_THRESHOLD")
	if raw == "" {
		return analytics.DefaultLowStockThreshold
	}
	threshold, err := strconv.Atoi(raw)
	if err != nil || threshold <= 0 {
		return analytics.DefaultLowStockThreshold
	}
	return threshold
}
