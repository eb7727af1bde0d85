package analysis

import (
	"math"
	"time"

	"PriceOutlook/internal/model"
)

// FindOptimal picks the record with the highest expected value inside r.
// Ties go to the earliest record. Records with a NaN expected value are
// skipped.
func FindOptimal(f *model.ForecastTable, r DateRange, now time.Time) (*model.OptimalPoint, error) {
	period, err := ResolveRange(f, r, now)
	if err != nil {
		return nil, err
	}

	var best model.ForecastPoint
	found := false
	for _, p := range period.Points {
		if math.IsNaN(p.Expected) {
			continue
		}
		if !found || p.Expected > best.Expected || (p.Expected == best.Expected && p.Date.Before(best.Date)) {
			best, found = p, true
		}
	}
	if !found {
		return nil, ErrNoDataInRange
	}

	return &model.OptimalPoint{
		Date:        best.Date,
		Expected:    best.Expected,
		Optimistic:  best.Upper,
		Pessimistic: best.Lower,
		Spread:      best.Upper - best.Lower,
		DaysFromNow: DaysBetween(now, best.Date),
	}, nil
}
