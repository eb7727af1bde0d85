package model

import "time"

// Decomposition component names a forecast table may carry.
const (
	ComponentTrend    = "trend"
	ComponentYearly   = "yearly"
	ComponentWeekly   = "weekly"
	ComponentHolidays = "holidays"
)

// ForecastPoint is one row of model output. A zero Date marks an unparseable
// timestamp.
type ForecastPoint struct {
	Date       time.Time
	Expected   float64
	Lower      float64
	Upper      float64
	Components map[string]float64
}

// ForecastTable is the ordered model output plus the names of the
// decomposition components present on it.
type ForecastTable struct {
	Points         []ForecastPoint
	ComponentNames []string
}

// Len returns the number of records.
func (f *ForecastTable) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Points)
}

// MaxDate returns the latest valid date. ok is false when no record has one.
func (f *ForecastTable) MaxDate() (latest time.Time, ok bool) {
	if f == nil {
		return time.Time{}, false
	}
	for _, p := range f.Points {
		if p.Date.IsZero() {
			continue
		}
		if !ok || p.Date.After(latest) {
			latest = p.Date
			ok = true
		}
	}
	return latest, ok
}

// HasComponent reports whether the table carries the named component.
func (f *ForecastTable) HasComponent(name string) bool {
	if f == nil {
		return false
	}
	for _, c := range f.ComponentNames {
		if c == name {
			return true
		}
	}
	return false
}

// Subset returns a table sharing component names with f over the given points.
func (f *ForecastTable) Subset(points []ForecastPoint) *ForecastTable {
	return &ForecastTable{Points: points, ComponentNames: f.ComponentNames}
}
