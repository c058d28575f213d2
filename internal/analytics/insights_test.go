package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-insight/internal/models"
)

var insightsNow = time.Date(2024, 6, 12, 18, 0, 0, 0, time.UTC)

func TestGenerateInsightsForecastAlwaysPresent(t *testing.T) {
	metrics := BusinessMetrics{
		Forecast: RevenueForecast{NextWeek: 349.6, NextMonth: 1498.2, Confidence: 60},
	}

	insights := GenerateInsights(metrics, insightsNow)

	require.Len(t, insights, 1)
	forecast := insights[0]
	assert.Equal(t, "revenue-forecast", forecast.ID)
	assert.Equal(t, InsightForecast, forecast.Type)
	assert.Equal(t, ImpactMedium, forecast.Impact)
	// Rounded to the nearest whole currency unit
	assert.Equal(t, "Projected revenue for next week: $350", forecast.Description)
	assert.Equal(t, 349.6, forecast.Data["next_week"])
	assert.Equal(t, 60, forecast.Data["confidence"])
	assert.Equal(t, insightsNow, forecast.Timestamp)
}

func TestGenerateInsightsLowStockAlert(t *testing.T) {
	metrics := BusinessMetrics{
		LowStockItems: []models.Product{
			{Name: "Milk", StockQuantity: 3},
			{Name: "Bread", StockQuantity: 7},
		},
	}

	insights := GenerateInsights(metrics, insightsNow)

	require.Len(t, insights, 2)
	alert := insights[0]
	assert.Equal(t, InsightAlert, alert.Type)
	assert.Equal(t, ImpactHigh, alert.Impact)
	assert.Equal(t, "2 products are running low on stock", alert.Description)
	assert.Equal(t, []string{"Milk", "Bread"}, alert.Data["items"])
}

func TestGenerateInsightsGrowthObservation(t *testing.T) {
	t.Run("emitted above 20 percent", func(t *testing.T) {
		metrics := BusinessMetrics{Growth: 33.333}

		insights := GenerateInsights(metrics, insightsNow)

		require.Len(t, insights, 2)
		growth := insights[0]
		assert.Equal(t, InsightObservation, growth.Type)
		assert.Equal(t, ImpactHigh, growth.Impact)
		assert.Equal(t, "Sales are up 33.3% compared to yesterday", growth.Description)
	})

	t.Run("suppressed at exactly 20 percent", func(t *testing.T) {
		metrics := BusinessMetrics{Growth: 20}

		insights := GenerateInsights(metrics, insightsNow)

		require.Len(t, insights, 1)
		assert.Equal(t, InsightForecast, insights[0].Type)
	})
}

func TestGenerateInsightsEmissionOrder(t *testing.T) {
	metrics := BusinessMetrics{
		Growth:        45,
		LowStockItems: []models.Product{{Name: "Milk"}},
		Forecast:      RevenueForecast{NextWeek: 700},
	}

	insights := GenerateInsights(metrics, insightsNow)

	require.Len(t, insights, 3)
	assert.Equal(t, InsightAlert, insights[0].Type)
	assert.Equal(t, InsightObservation, insights[1].Type)
	assert.Equal(t, InsightForecast, insights[2].Type)
}

func TestGenerateInsightsDeterministicForSameInputs(t *testing.T) {
	metrics := BusinessMetrics{
		Growth:        25,
		LowStockItems: []models.Product{{Name: "Milk"}},
		Forecast:      RevenueForecast{NextWeek: 420, NextMonth: 1800, Confidence: 75},
	}

	first := GenerateInsights(metrics, insightsNow)
	second := GenerateInsights(metrics, insightsNow)

	assert.Equal(t, first, second)
}
