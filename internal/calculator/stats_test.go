package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceOutlook/internal/model"
)

func TestMean(t *testing.T) {
	m, err := Mean([]float64{100, 102, 98})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, m, 1e-9)

	_, err = Mean(nil)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSampleStdDev(t *testing.T) {
	std, err := SampleStdDev([]float64{100, 102, 98})
	require.NoError(t, err)
	// sum of squares 8, n-1 = 2
	assert.InDelta(t, 2.0, std, 1e-9)

	single, err := SampleStdDev([]float64{42})
	require.NoError(t, err)
	assert.Equal(t, 0.0, single)
}

func TestMinMax(t *testing.T) {
	low, high, err := MinMax([]float64{3, -1, 7, 2})
	require.NoError(t, err)
	assert.Equal(t, -1.0, low)
	assert.Equal(t, 7.0, high)

	_, _, err = MinMax([]float64{})
	assert.Error(t, err)
}

func TestPercentChange(t *testing.T) {
	pct, ok := PercentChange(100, 110)
	assert.True(t, ok)
	assert.InDelta(t, 10.0, pct, 1e-9)

	_, ok = PercentChange(0, 5)
	assert.False(t, ok)
}

func TestSeriesMetrics(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := &model.CanonicalSeries{}
	for i, v := range []float64{10, 12, 14, 16} {
		series.Points = append(series.Points, model.Point{Time: start.AddDate(0, 0, i), Value: v})
	}

	m, err := SeriesMetrics(series)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Count)
	assert.InDelta(t, 13.0, m.Mean, 1e-9)
	assert.InDelta(t, math.Sqrt(20.0/3.0), m.StdDev, 1e-9)
	assert.Equal(t, 10.0, m.Min)
	assert.Equal(t, 16.0, m.Max)
	assert.Equal(t, 6.0, m.Range)

	_, err = SeriesMetrics(&model.CanonicalSeries{})
	assert.ErrorIs(t, err, ErrEmpty)
}
