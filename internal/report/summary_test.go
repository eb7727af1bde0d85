package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceOutlook/internal/model"
	"PriceOutlook/internal/strategy"
)

var summaryNow = time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

// rising builds a forecast from today through days ahead with expected
// values climbing by one per day and a constant band of ±5.
func rising(days int) *model.ForecastTable {
	today := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	f := &model.ForecastTable{}
	for i := 0; i <= days; i++ {
		v := 100 + float64(i)
		f.Points = append(f.Points, model.ForecastPoint{
			Date: today.AddDate(0, 0, i), Expected: v, Lower: v - 5, Upper: v + 5,
		})
	}
	return f
}

func TestBuildSummary_AllSections(t *testing.T) {
	s := BuildSummary(rising(90), 100, "AAPL", summaryNow)

	require.NotNil(t, s.Short)
	assert.Equal(t, 30, s.Short.Days)
	assert.Equal(t, 130.0, s.Short.Scenarios.Expected.Price)
	assert.True(t, s.Short.HasChange)
	assert.InDelta(t, 30.0, s.Short.ChangePct, 1e-9)
	assert.Equal(t, strategy.LevelHigh, s.Short.Confidence.Level)

	require.NotNil(t, s.Full)
	assert.Equal(t, 90, s.Full.Days)
	assert.Equal(t, "90-Day Forecast", s.Full.Title)

	require.NotNil(t, s.Optimal)
	assert.Equal(t, 190.0, s.Optimal.Expected)
	assert.Equal(t, 90, s.Optimal.DaysFromNow)

	require.NotNil(t, s.Volatility)
	assert.Equal(t, 90, s.Volatility.Window)
	assert.Empty(t, s.Notes)
}

func TestBuildSummary_ShortHorizonMissing(t *testing.T) {
	s := BuildSummary(rising(10), 100, "AAPL", summaryNow)

	assert.Nil(t, s.Short)
	require.NotNil(t, s.Full)
	assert.Equal(t, 10, s.Full.Days)
	assert.NotNil(t, s.Optimal)
	assert.NotNil(t, s.Volatility)
	require.Len(t, s.Notes, 1)
	assert.Contains(t, s.Notes[0], "30-day forecast")
}

func TestBuildSummary_NoFuture(t *testing.T) {
	s := BuildSummary(rising(5), 100, "AAPL", summaryNow.AddDate(0, 1, 0))

	assert.Nil(t, s.Short)
	assert.Nil(t, s.Full)
	assert.Nil(t, s.Volatility)
	assert.Nil(t, s.Optimal)
	assert.Len(t, s.Notes, 4)
}

func TestBuildSummary_ZeroCurrent(t *testing.T) {
	s := BuildSummary(rising(40), 0, "AAPL", summaryNow)
	require.NotNil(t, s.Short)
	assert.False(t, s.Short.HasChange)
}

func TestSummarize(t *testing.T) {
	out := Summarize(rising(45), 100, "MSFT", summaryNow)
	assert.Contains(t, out, "FORECAST SUMMARY - MSFT")
	assert.Contains(t, out, "Current Price: $100.00")
	assert.Contains(t, out, "30-Day Forecast")
	assert.Contains(t, out, "45-Day Forecast")
	assert.Contains(t, out, "Optimal Sell Date: 2024-07-18")
	assert.Contains(t, out, "Volatility (45-day)")
}

func TestFormatTelegram(t *testing.T) {
	s := BuildSummary(rising(10), 100, "A&B", summaryNow)
	msg := FormatTelegram(s)
	assert.Contains(t, msg, "<b>A&amp;B outlook</b>")
	assert.Contains(t, msg, "Best exit")
	assert.True(t, strings.Contains(msg, "⚠️"))
}

func TestRenderTable(t *testing.T) {
	var buf bytes.Buffer
	s := BuildSummary(rising(40), 100, "AAPL", summaryNow)
	s.History = &model.HistoricalMetrics{Count: 3, Mean: 100, StdDev: 2, Min: 98, Max: 102, Range: 4}
	RenderTable(&buf, s)

	out := buf.String()
	assert.Contains(t, out, "FORECAST SUMMARY - AAPL")
	assert.Contains(t, out, "Optimal Sell Date")
	assert.Contains(t, out, "History Points")
}
