package collector

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"PriceOutlook/internal/model"
)

// ErrNoData is returned when a source has no rows for the requested range.
var ErrNoData = errors.New("no price data returned")

// NewFetcher builds the fetcher for a configured provider.
func NewFetcher(provider, csvDir, proxyURL string) (Fetcher, error) {
	switch provider {
	case "yahoo":
		return NewYahooFetcher(proxyURL), nil
	case "csv":
		return NewCSVFetcher(csvDir), nil
	case "mock":
		return &MockFetcher{Price: 100}, nil
	default:
		return nil, fmt.Errorf("unknown data provider %q", provider)
	}
}

// MockFetcher returns controllable synthetic data for development and testing.
type MockFetcher struct {
	Price float64
	Table *model.RawTable // returned as-is when set
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

// Fetch generates one bar per calendar day with a gentle trend and a weekly
// wiggle, under a single Close column and a Date index.
func (m *MockFetcher) Fetch(_ context.Context, _ string, start, end time.Time) (*model.RawTable, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Table != nil {
		return m.Table, nil
	}
	return generateMockTable(m.Price, start, end), nil
}

func generateMockTable(basePrice float64, start, end time.Time) *model.RawTable {
	index := &model.Column{Header: []string{"Date"}}
	closes := model.Column{Header: []string{"Close"}}
	first := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	for i, d := 0, first; !d.After(end); i, d = i+1, d.AddDate(0, 0, 1) {
		p := basePrice * (1 + float64(i)*0.001 + 0.01*math.Sin(float64(i)*2*math.Pi/7))
		index.Values = append(index.Values, d)
		closes.Values = append(closes.Values, p)
	}
	return &model.RawTable{Index: index, Columns: []model.Column{closes}}
}

// Collector wraps a Fetcher with empty-result checks and logging.
type Collector struct {
	Fetcher Fetcher
	log     *logrus.Entry
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, log *logrus.Entry) *Collector {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Collector{Fetcher: fetcher, log: log}
}

// Collect fetches the raw history for symbol over [start, end].
func (c *Collector) Collect(ctx context.Context, symbol string, start, end time.Time) (*model.RawTable, error) {
	entry := c.log.WithFields(logrus.Fields{
		"source": c.Fetcher.Name(),
		"symbol": symbol,
		"start":  start.Format("2006-01-02"),
		"end":    end.Format("2006-01-02"),
	})

	raw, err := c.Fetcher.Fetch(ctx, symbol, start, end)
	if err != nil {
		entry.WithError(err).Error("fetch failed")
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if raw.Rows() == 0 {
		entry.Warn("source returned no rows")
		return nil, fmt.Errorf("fetch %s: %w", symbol, ErrNoData)
	}

	entry.WithField("rows", raw.Rows()).Info("fetched price history")
	return raw, nil
}
