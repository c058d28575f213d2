package analytics

import (
	"time"

	"go-pos-insight/internal/models"
)

// FilterByTimeframe returns the sales that fall inside the given timeframe,
// anchored at the reference instant. Day means the exact calendar date of
// ref, not a rolling 24h window. Week starts on the most recent Sunday,
// month and year on their calendar boundaries. Any other timeframe value
// has no lower bound. The upper bound is always the end of ref's day.
func FilterByTimeframe(sales []models.Sale, timeframe string, ref time.Time) []models.Sale {
	var start time.Time
	hasStart := true

	switch timeframe {
	case TimeframeDay:
		start = startOfDay(ref)
	case TimeframeWeek:
		// Weekday() numbers Sunday as 0, so this lands on the week start.
		start = startOfDay(ref).AddDate(0, 0, -int(ref.Weekday()))
	case TimeframeMonth:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	case TimeframeYear:
		start = time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location())
	default:
		hasStart = false
	}

	end := endOfDay(ref)

	filtered := make([]models.Sale, 0, len(sales))
	for _, s := range sales {
		ts := s.SaleTime.In(ref.Location())
		if ts.After(end) {
			continue
		}
		if hasStart && ts.Before(start) {
			continue
		}
		// Normalize the timestamp into the reference location so the
		// aggregator's hour and date bucket labels agree with the
		// boundaries applied here. Same instant, one clock.
		s.SaleTime = ts
		filtered = append(filtered, s)
	}
	return filtered
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}
