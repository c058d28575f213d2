package analytics

import (
	"time"

	"go-pos-insight/internal/models"
)

// fallbackDailyAverage keeps the projection from flatlining at zero when a
// store has no sales history yet.
const fallbackDailyAverage = 50.0

// Forecast projects next-week and next-month revenue from a moving average
// over the current week's sales. Confidence is a heuristic, not a
// statistical estimate: five points per observed transaction, kept inside
// a believable 60-90 band.
func Forecast(sales []models.Sale, ref time.Time) RevenueForecast {
	window := FilterByTimeframe(sales, TimeframeWeek, ref)

	dailyAverage := fallbackDailyAverage
	if len(window) > 0 {
		var sum float64
		for _, s := range window {
			sum += s.TotalAmount
		}
		dailyAverage = sum / 7
	}

	confidence := len(window) * 5
	if confidence < 60 {
		confidence = 60
	}
	if confidence > 90 {
		confidence = 90
	}

	return RevenueForecast{
		NextWeek:   dailyAverage * 7,
		NextMonth:  dailyAverage * 30,
		Confidence: confidence,
	}
}
