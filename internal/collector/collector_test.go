package collector

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PriceOutlook/internal/logger"
	"PriceOutlook/internal/model"
	"PriceOutlook/internal/normalize"
)

var (
	rangeStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rangeEnd   = time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
)

const chartBody = `{"chart":{"result":[{
  "timestamp":[1704292200,1704205800,1704378600],
  "indicators":{
    "quote":[{"open":[2,1,null],"high":[2.5,1.5,null],"low":[1.5,0.5,null],"close":[2.2,1.1,null],"volume":[200,100,null]}],
    "adjclose":[{"adjclose":[2.1,1.0,null]}]
  }}],"error":null}}`

func TestYahooFetcher_Fetch(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(chartBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	table, err := f.Fetch(context.Background(), "SPX", rangeStart, rangeEnd)
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/^GSPC", gotPath)
	assert.Contains(t, gotQuery, "period1=1704067200")
	assert.Contains(t, gotQuery, "period2=1706659200")

	require.Equal(t, 3, table.Rows())
	assert.Equal(t, []string{"Date"}, table.Index.Header)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), table.Index.Values[0], "rows sorted by time")
	assert.Equal(t, []string{"Open/^GSPC", "High/^GSPC", "Low/^GSPC", "Close/^GSPC", "Adj Close/^GSPC", "Volume/^GSPC"}, table.ColumnNames())
	assert.Equal(t, 1.1, table.Columns[3].Values[0])
	assert.Nil(t, table.Columns[3].Values[2], "missing quotes stay nil")

	series, err := normalize.NewNormalizer(logger.WithComponent(logger.Discard(), "test")).Normalize(table, "close")
	require.NoError(t, err)
	assert.Equal(t, []float64{1.1, 2.2}, series.Values())
}

func TestYahooFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"http status", http.StatusNotFound, `{}`, "status 404"},
		{"api error", http.StatusOK, `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`, "delisted"},
		{"empty result", http.StatusOK, `{"chart":{"result":[],"error":null}}`, ErrNoData.Error()},
		{"bad json", http.StatusOK, `{"chart":`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			f := NewYahooFetcher("")
			f.BaseURL = srv.URL
			_, err := f.Fetch(context.Background(), "NOPE", rangeStart, rangeEnd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCSVFetcher_Fetch(t *testing.T) {
	dir := t.TempDir()
	body := "Timestamp,CLOSE,volume\n2024-01-02,10.5,100\n2024-01-03,,120\n2024-01-04,11\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ABC.csv"), []byte(body), 0644))

	table, err := NewCSVFetcher(dir).Fetch(context.Background(), "abc", rangeStart, rangeEnd)
	require.NoError(t, err)
	assert.Nil(t, table.Index)
	assert.Equal(t, []string{"Timestamp", "CLOSE", "volume"}, table.ColumnNames())
	assert.Equal(t, 3, table.Rows())
	assert.Nil(t, table.Columns[2].Values[2], "short records pad with nil")

	series, err := normalize.NewNormalizer(logger.WithComponent(logger.Discard(), "test")).Normalize(table, "close")
	require.NoError(t, err)
	assert.Equal(t, []float64{10.5, 11}, series.Values())
}

func TestCSVFetcher_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "EMPTY.csv"), []byte("date,close\n"), 0644))

	f := NewCSVFetcher(dir)
	_, err := f.Fetch(context.Background(), "MISSING", rangeStart, rangeEnd)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = f.Fetch(context.Background(), "EMPTY", rangeStart, rangeEnd)
	assert.ErrorIs(t, err, ErrNoData)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.Fetch(ctx, "EMPTY", rangeStart, rangeEnd)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockFetcher(t *testing.T) {
	m := &MockFetcher{Price: 50}
	table, err := m.Fetch(context.Background(), "X", rangeStart, rangeEnd)
	require.NoError(t, err)
	assert.Equal(t, 31, table.Rows())
	assert.Equal(t, rangeStart, table.Index.Values[0])

	fixed := &model.RawTable{Columns: []model.Column{{Header: []string{"close"}}}}
	m = &MockFetcher{Table: fixed}
	got, err := m.Fetch(context.Background(), "X", rangeStart, rangeEnd)
	require.NoError(t, err)
	assert.Same(t, fixed, got)
}

func TestCollector_Collect(t *testing.T) {
	log := logger.WithComponent(logger.Discard(), "collector")

	c := NewCollector(&MockFetcher{Price: 10}, log)
	raw, err := c.Collect(context.Background(), "X", rangeStart, rangeEnd)
	require.NoError(t, err)
	assert.Equal(t, 31, raw.Rows())

	c = NewCollector(&MockFetcher{Table: &model.RawTable{}}, log)
	_, err = c.Collect(context.Background(), "X", rangeStart, rangeEnd)
	assert.ErrorIs(t, err, ErrNoData)

	boom := errors.New("boom")
	c = NewCollector(&MockFetcher{Err: boom}, log)
	_, err = c.Collect(context.Background(), "X", rangeStart, rangeEnd)
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.HasPrefix(err.Error(), "fetch X:"))
}

func TestNewFetcher(t *testing.T) {
	for provider, name := range map[string]string{"yahoo": "yahoo", "csv": "csv", "mock": "mock"} {
		f, err := NewFetcher(provider, "data", "")
		require.NoError(t, err)
		assert.Equal(t, name, f.Name())
	}
	_, err := NewFetcher("ftp", "", "")
	assert.Error(t, err)
}
