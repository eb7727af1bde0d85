package calculator

import (
	"PriceOutlook/internal/model"
)

// SeriesMetrics computes descriptive statistics over the canonical series.
func SeriesMetrics(series *model.CanonicalSeries) (model.HistoricalMetrics, error) {
	values := series.Values()
	mean, err := Mean(values)
	if err != nil {
		return model.HistoricalMetrics{}, err
	}
	std, err := SampleStdDev(values)
	if err != nil {
		return model.HistoricalMetrics{}, err
	}
	low, high, err := MinMax(values)
	if err != nil {
		return model.HistoricalMetrics{}, err
	}
	return model.HistoricalMetrics{
		Count:  len(values),
		Mean:   mean,
		StdDev: std,
		Min:    low,
		Max:    high,
		Range:  high - low,
	}, nil
}
