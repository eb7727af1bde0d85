package model

import "time"

// Point is a single observation of the canonical series.
type Point struct {
	Time  time.Time
	Value float64
}

// CanonicalSeries is the cleaned two-field series handed to a forecast model.
type CanonicalSeries struct {
	Points []Point
}

// Len returns the number of points.
func (s *CanonicalSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Points)
}

// Values extracts the value column.
func (s *CanonicalSeries) Values() []float64 {
	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	return vals
}

// Last returns the most recent point in series order.
func (s *CanonicalSeries) Last() (Point, bool) {
	if s.Len() == 0 {
		return Point{}, false
	}
	return s.Points[len(s.Points)-1], true
}
