package analysis

import (
	"math"
	"time"

	"PriceOutlook/internal/calculator"
	"PriceOutlook/internal/model"
)

// Volatility measures dispersion of the expected values and the width of the
// uncertainty band over the first windowDays future records. StdDev is the
// sample form. Band percentages are computed per record, then aggregated;
// records with a zero expected value are left out of them. NaN values are
// skipped everywhere.
func Volatility(f *model.ForecastTable, windowDays int, now time.Time) (*model.VolatilityStats, error) {
	window := FutureValues(f, windowDays, now)
	if window.Len() == 0 {
		return nil, ErrNoFutureData
	}

	expected := make([]float64, 0, window.Len())
	widths := make([]float64, 0, window.Len())
	pcts := make([]float64, 0, window.Len())
	for _, p := range window.Points {
		if !math.IsNaN(p.Expected) {
			expected = append(expected, p.Expected)
		}
		w := p.Upper - p.Lower
		if math.IsNaN(w) {
			continue
		}
		widths = append(widths, w)
		if p.Expected != 0 && !math.IsNaN(p.Expected) {
			pcts = append(pcts, w/p.Expected*100)
		}
	}
	if len(expected) == 0 {
		return nil, ErrNoFutureData
	}

	mean, err := calculator.Mean(expected)
	if err != nil {
		return nil, err
	}
	std, err := calculator.SampleStdDev(expected)
	if err != nil {
		return nil, err
	}
	avgWidth, minWidth, maxWidth := math.NaN(), math.NaN(), math.NaN()
	if len(widths) > 0 {
		avgWidth, _ = calculator.Mean(widths)
		minWidth, maxWidth, _ = calculator.MinMax(widths)
	}

	stats := &model.VolatilityStats{
		Window:                 window.Len(),
		StdDev:                 std,
		Mean:                   mean,
		CoefficientOfVariation: std / mean,
		AvgBandWidth:           avgWidth,
		MinBandWidth:           minWidth,
		MaxBandWidth:           maxWidth,
		AvgBandWidthPct:        math.NaN(),
		MinBandWidthPct:        math.NaN(),
		MaxBandWidthPct:        math.NaN(),
	}
	if len(pcts) > 0 {
		stats.AvgBandWidthPct, _ = calculator.Mean(pcts)
		stats.MinBandWidthPct, stats.MaxBandWidthPct, _ = calculator.MinMax(pcts)
	}
	return stats, nil
}
