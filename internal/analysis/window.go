package analysis

import (
	"time"

	"PriceOutlook/internal/model"
)

// DateRange bounds a query inclusively. A zero Start means today, a zero End
// means the forecast's last valid date.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Today truncates now to midnight in its own location.
func Today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// DaysBetween returns the signed calendar-day difference to - from.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	a := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	b := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// FutureValues returns the records dated strictly after today's midnight, in
// order, keeping at most days of them when days > 0. An empty or all-past
// forecast yields an empty table.
func FutureValues(f *model.ForecastTable, days int, now time.Time) *model.ForecastTable {
	if f == nil {
		return &model.ForecastTable{}
	}
	today := Today(now)
	future := make([]model.ForecastPoint, 0)
	for _, p := range f.Points {
		if p.Date.After(today) {
			future = append(future, p)
			if days > 0 && len(future) == days {
				break
			}
		}
	}
	return f.Subset(future)
}

// ResolveRange returns the records inside r, both ends inclusive.
func ResolveRange(f *model.ForecastTable, r DateRange, now time.Time) (*model.ForecastTable, error) {
	if f.Len() == 0 {
		return nil, ErrEmptyForecast
	}
	start := r.Start
	if start.IsZero() {
		start = Today(now)
	}
	end := r.End
	if end.IsZero() {
		maxDate, ok := f.MaxDate()
		if !ok {
			return nil, ErrNoValidDates
		}
		end = maxDate
	}

	var in []model.ForecastPoint
	for _, p := range f.Points {
		if p.Date.IsZero() {
			continue
		}
		if !p.Date.Before(start) && !p.Date.After(end) {
			in = append(in, p)
		}
	}
	if len(in) == 0 {
		return nil, ErrNoDataInRange
	}
	return f.Subset(in), nil
}
