package normalize

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceOutlook/internal/logger"
	"PriceOutlook/internal/model"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(logger.WithComponent(logger.Discard(), "normalize"))
}

func dailyDates(n int) []any {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]any, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func prices(n int, base float64) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = base + float64(i)*0.1
	}
	return out
}

func TestNormalize_AnyCloseCasing(t *testing.T) {
	const n = 10
	for _, name := range []string{"close", "Close", "CLOSE", "cLoSe"} {
		raw := &model.RawTable{
			Index: &model.Column{Header: []string{"Date"}, Values: dailyDates(n)},
			Columns: []model.Column{
				{Header: []string{"Open"}, Values: prices(n, 99)},
				{Header: []string{name}, Values: prices(n, 100)},
			},
		}
		series, err := newTestNormalizer().Normalize(raw, "close")
		require.NoError(t, err, name)
		require.Equal(t, n, series.Len(), name)
		for _, p := range series.Points {
			assert.False(t, p.Time.IsZero())
			assert.False(t, math.IsNaN(p.Value))
		}
		assert.InDelta(t, 100.0, series.Points[0].Value, 1e-9)
	}
}

func TestNormalize_MultiLevelFieldTicker(t *testing.T) {
	const n = 5
	raw := &model.RawTable{
		Index: &model.Column{Header: []string{"Date"}, Values: dailyDates(n)},
		Columns: []model.Column{
			{Header: []string{"Close", "AAPL"}, Values: prices(n, 180)},
			{Header: []string{"Volume", "AAPL"}, Values: prices(n, 1e6)},
		},
	}
	series, err := newTestNormalizer().Normalize(raw, "")
	require.NoError(t, err)
	assert.Equal(t, n, series.Len())
	assert.InDelta(t, 180.0, series.Points[0].Value, 1e-9)
}

func TestNormalize_MultiLevelTickerField(t *testing.T) {
	const n = 4
	raw := &model.RawTable{
		Columns: []model.Column{
			{Header: []string{"", "Date"}, Values: dailyDates(n)},
			{Header: []string{"MSFT", "Open"}, Values: prices(n, 400)},
			{Header: []string{"MSFT", "Close"}, Values: prices(n, 410)},
		},
	}
	series, err := newTestNormalizer().Normalize(raw, "close")
	require.NoError(t, err)
	assert.Equal(t, n, series.Len())
	assert.InDelta(t, 410.0, series.Points[0].Value, 1e-9)
}

func TestNormalize_StringCellsAndDrops(t *testing.T) {
	raw := &model.RawTable{
		Columns: []model.Column{
			col("ds", "2024-01-01", "2024-01-02", "not a date", "2024-01-04", "2024-01-05", "2024-01-06"),
			col("Close", "101.5", "", "103", nil, "abc", math.NaN()),
		},
	}
	series, err := newTestNormalizer().Normalize(raw, "close")
	require.NoError(t, err)
	require.Equal(t, 1, series.Len())
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), series.Points[0].Time)
	assert.Equal(t, 101.5, series.Points[0].Value)
}

func TestNormalize_PositionalIndex(t *testing.T) {
	raw := &model.RawTable{
		Index: &model.Column{Values: []any{"2024-03-01", "2024-03-02"}},
		Columns: []model.Column{
			col("Close", 10, int64(11)),
		},
	}
	series, err := newTestNormalizer().Normalize(raw, "close")
	require.NoError(t, err)
	assert.Equal(t, 2, series.Len())
	assert.Equal(t, 11.0, series.Points[1].Value)
}

func TestNormalize_Failures(t *testing.T) {
	tests := []struct {
		name   string
		raw    *model.RawTable
		reason string
	}{
		{"nil table", nil, "raw table is empty"},
		{"no rows", &model.RawTable{Columns: []model.Column{col("Date"), col("Close")}}, "raw table is empty"},
		{"no price column", &model.RawTable{Columns: []model.Column{col("Date", "2024-01-01"), col("Open", 1.0)}}, "no matching column"},
		{"no date column", &model.RawTable{Columns: []model.Column{col("symbol", "X"), col("Close", 1.0)}}, "no date column found"},
		{"no usable rows", &model.RawTable{Columns: []model.Column{col("Date", "bad"), col("Close", 1.0)}}, "no usable rows"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestNormalizer().Normalize(tt.raw, "close")
			var dataErr *DataError
			require.True(t, errors.As(err, &dataErr), "got %v", err)
			assert.Contains(t, dataErr.Reason, tt.reason)
		})
	}
}

func TestNormalize_PackageLevel(t *testing.T) {
	raw := &model.RawTable{Columns: []model.Column{col("date", "2024-01-01"), col("close", 5.0)}}
	series, err := Normalize(raw, "")
	require.NoError(t, err)
	assert.Equal(t, 1, series.Len())
}
