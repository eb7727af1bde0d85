package collector

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"PriceOutlook/internal/model"
)

// CSVFetcher reads <Dir>/<SYMBOL>.csv exports. Cells are kept as text and
// the header is taken as-is, so column resolution happens downstream.
type CSVFetcher struct {
	Dir string
}

// NewCSVFetcher creates a fetcher over a directory of price files.
func NewCSVFetcher(dir string) *CSVFetcher {
	return &CSVFetcher{Dir: dir}
}

func (f *CSVFetcher) Name() string { return "csv" }

// Fetch returns the whole file. The date range is not applied because the
// date column is unknown until normalization.
func (f *CSVFetcher) Fetch(ctx context.Context, symbol string, _, _ time.Time) (*model.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(f.Dir, strings.ToUpper(symbol)+".csv")
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("unknown symbol %s: %w", symbol, err)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoData)
	}

	header := records[0]
	table := &model.RawTable{Columns: make([]model.Column, len(header))}
	for i, name := range header {
		table.Columns[i].Header = []string{strings.TrimSpace(name)}
		table.Columns[i].Values = make([]any, 0, len(records)-1)
	}
	for _, rec := range records[1:] {
		for i := range header {
			var v any
			if i < len(rec) {
				v = rec[i]
			}
			table.Columns[i].Values = append(table.Columns[i].Values, v)
		}
	}
	return table, nil
}
