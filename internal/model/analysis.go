package model

import "time"

// Scenario is one decision outcome derived from a forecast record.
type Scenario struct {
	Price       float64
	Probability float64
	Description string
}

// ScenarioSet holds the three outcomes at a single date.
// RelativeUncertaintyPct is ±Inf or NaN when Expected.Price is zero.
type ScenarioSet struct {
	Date                   time.Time
	Optimistic             Scenario
	Expected               Scenario
	Pessimistic            Scenario
	Spread                 float64
	RelativeUncertaintyPct float64
}

// OptimalPoint is the best expected exit inside a date range.
type OptimalPoint struct {
	Date        time.Time
	Expected    float64
	Optimistic  float64
	Pessimistic float64
	Spread      float64
	DaysFromNow int
}

// VolatilityStats summarizes dispersion of a forecast window.
// CoefficientOfVariation is ±Inf or NaN when the window mean is zero.
type VolatilityStats struct {
	Window                 int
	StdDev                 float64
	Mean                   float64
	CoefficientOfVariation float64
	AvgBandWidth           float64
	MinBandWidth           float64
	MaxBandWidth           float64
	AvgBandWidthPct        float64
	MinBandWidthPct        float64
	MaxBandWidthPct        float64
}

// HistoricalMetrics describes the training series.
type HistoricalMetrics struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
	Range  float64
}
