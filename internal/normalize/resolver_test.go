package normalize

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceOutlook/internal/model"
)

func col(name string, values ...any) model.Column {
	return model.Column{Header: []string{name}, Values: values}
}

func TestResolveDate_CandidateName(t *testing.T) {
	for _, name := range []string{"date", "Date", "DS", "Datetime", "timestamp", "TIME"} {
		r := NewResolver()
		res, err := r.ResolveDate([]model.Column{col("Open", 1.0), col(name, "2024-01-01")})
		require.NoError(t, err, name)
		assert.Equal(t, 1, res.Index, name)
		assert.Equal(t, name, res.Label)
		assert.Equal(t, "candidate name", res.Strategy)
	}
}

func TestResolveDate_TemporalValues(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []model.Column{
		col("Open", 1.0, 2.0),
		col("when", nil, ts),
	}
	res, err := NewResolver().ResolveDate(cols)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, "temporal values", res.Strategy)
}

func TestResolveDate_PositionalIndexRenamed(t *testing.T) {
	cols := []model.Column{
		col("index", "2024-01-01", "2024-01-02"),
		col("Close", 1.0, 2.0),
	}
	res, err := NewResolver().ResolveDate(cols)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Index)
	assert.Equal(t, CanonicalDateLabel, res.Label)
	assert.Equal(t, "positional index", res.Strategy)
}

func TestResolveDate_Failure(t *testing.T) {
	cols := []model.Column{col("symbol", "AAPL"), col("Close", 1.0)}
	_, err := NewResolver().ResolveDate(cols)

	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, []string{"candidate name", "temporal values", "positional index"}, dataErr.Tried)
	assert.Equal(t, []string{"symbol", "Close"}, dataErr.Available)
	assert.Contains(t, err.Error(), "available: symbol, Close")
}

func TestResolvePrice_ExactBeatsCaseInsensitive(t *testing.T) {
	cols := []model.Column{col("Date"), col("Close"), col("close")}
	res, err := NewResolver().ResolvePrice(cols, "close")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Index)
	assert.Equal(t, "exact name", res.Strategy)

	res, err = NewResolver().ResolvePrice(cols[:2], "close")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Index)
	assert.Equal(t, "case-insensitive name", res.Strategy)
}

func TestResolvePrice_NoFallbackBeyondCase(t *testing.T) {
	cols := []model.Column{col("Date"), col("Adj Close"), col("Open")}
	_, err := NewResolver().ResolvePrice(cols, "close")

	var dataErr *DataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, "close", dataErr.Field)
	assert.Contains(t, err.Error(), `resolve price column "close"`)
	assert.Contains(t, err.Error(), "available: Date, Adj Close, Open")
}

func TestResolver_RejectsMultiLevelHeaders(t *testing.T) {
	cols := []model.Column{{Header: []string{"Close", "AAPL"}}}
	_, err := NewResolver().ResolvePrice(cols, "close")
	assert.Error(t, err)
	_, err = NewResolver().ResolveDate(cols)
	assert.Error(t, err)
}

func TestResolver_CustomStrategyList(t *testing.T) {
	r := &Resolver{
		DateStrategies: []DateStrategy{{
			Name: "last column",
			Find: func(cols []model.Column) (int, string, bool) {
				return len(cols) - 1, "day", len(cols) > 0
			},
		}},
		PriceStrategies: DefaultPriceStrategies,
	}
	date, price, err := r.Resolve([]model.Column{col("px"), col("d")}, "PX")
	require.NoError(t, err)
	assert.Equal(t, 1, date.Index)
	assert.Equal(t, "day", date.Label)
	assert.Equal(t, 0, price.Index)
}
