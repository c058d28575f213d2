package analytics

import (
	"fmt"
	"time"

	"go-pos-insight/internal/models"
)

// GenerateInsights turns computed metrics into the dashboard's insight feed.
// Emission order is fixed: low-stock alert first, then the growth
// observation, then always exactly one forecast entry. The caller supplies
// the timestamp so identical metrics produce identical output.
func GenerateInsights(metrics BusinessMetrics, now time.Time) []Insight {
	insights := []Insight{}

	if len(metrics.LowStockItems) > 0 {
		insights = append(insights, Insight{
			ID:          "low-stock-alert",
			Type:        InsightAlert,
			Title:       "Low Stock Alert",
			Description: fmt.Sprintf("%d products are running low on stock", len(metrics.LowStockItems)),
			Impact:      ImpactHigh,
			Timestamp:   now,
			Data: map[string]interface{}{
				"items": productNames(metrics.LowStockItems),
			},
		})
	}

	if metrics.Growth > 20 {
		insights = append(insights, Insight{
			ID:          "sales-growth",
			Type:        InsightObservation,
			Title:       "Strong Sales Growth",
			Description: fmt.Sprintf("Sales are up %.1f%% compared to yesterday", metrics.Growth),
			Impact:      ImpactHigh,
			Timestamp:   now,
		})
	}

	insights = append(insights, Insight{
		ID:          "revenue-forecast",
		Type:        InsightForecast,
		Title:       "Revenue Forecast",
		Description: fmt.Sprintf("Projected revenue for next week: $%.0f", metrics.Forecast.NextWeek),
		Impact:      ImpactMedium,
		Timestamp:   now,
		Data: map[string]interface{}{
			"next_week":  metrics.Forecast.NextWeek,
			"next_month": metrics.Forecast.NextMonth,
			"confidence": metrics.Forecast.Confidence,
		},
	})

	return insights
}

func productNames(products []models.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}
