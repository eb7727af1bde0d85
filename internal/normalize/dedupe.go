package normalize

import (
	"github.com/sirupsen/logrus"

	"PriceOutlook/internal/model"
)

// FillReport describes what DedupeAndFill changed.
type FillReport struct {
	RowsIn            int
	RowsOut           int
	DuplicatesRemoved int
	ValuesFilled      int
	Unfillable        int // missing prices left because no valid value exists
}

// DedupeAndFill removes rows whose date repeats an earlier row, then fills
// missing prices forward and afterwards backward from the nearest valid
// neighbor. Values are copied, never interpolated. The returned table is
// flat, has no separate index, and keeps every original column.
func (n *Normalizer) DedupeAndFill(raw *model.RawTable, priceField string) (*model.RawTable, FillReport, error) {
	if priceField == "" {
		priceField = DefaultPriceField
	}
	cols, rows, err := prepare(raw, priceField)
	if err != nil {
		return nil, FillReport{}, err
	}
	date, price, err := n.Resolver.Resolve(cols, priceField)
	if err != nil {
		return nil, FillReport{}, err
	}

	report := FillReport{RowsIn: rows}

	seen := make(map[string]struct{}, rows)
	keep := make([]int, 0, rows)
	for i := 0; i < rows; i++ {
		key := dateKey(cell(cols[date.Index], i))
		if _, dup := seen[key]; dup {
			report.DuplicatesRemoved++
			continue
		}
		seen[key] = struct{}{}
		keep = append(keep, i)
	}

	out := &model.RawTable{Columns: make([]model.Column, len(cols))}
	for c, col := range cols {
		header := []string{col.Name()}
		if c == date.Index {
			header = []string{date.Label}
		}
		values := make([]any, len(keep))
		for j, i := range keep {
			values[j] = cell(col, i)
		}
		out.Columns[c] = model.Column{Header: header, Values: values}
	}

	prices := out.Columns[price.Index].Values
	report.ValuesFilled, report.Unfillable = fillPrices(prices)
	report.RowsOut = len(keep)

	if report.DuplicatesRemoved > 0 || report.ValuesFilled > 0 || report.Unfillable > 0 {
		n.log.WithFields(logrus.Fields{
			"duplicates_removed": report.DuplicatesRemoved,
			"values_filled":      report.ValuesFilled,
			"unfillable":         report.Unfillable,
			"rows_out":           report.RowsOut,
		}).Info("deduplicated and filled price column")
	}
	return out, report, nil
}

// fillPrices forward-fills then back-fills in place. Non-numeric cells count
// as missing and are overwritten with the neighbor's numeric value.
func fillPrices(prices []any) (filled, unfillable int) {
	valid := make([]bool, len(prices))
	nums := make([]float64, len(prices))
	hasValid := false
	for i, v := range prices {
		nums[i], valid[i] = toFloat(v)
		hasValid = hasValid || valid[i]
	}
	if !hasValid {
		return 0, len(prices)
	}

	last := -1
	for i := range prices {
		if valid[i] {
			last = i
			continue
		}
		if last >= 0 {
			prices[i] = nums[last]
			nums[i] = nums[last]
			valid[i] = true
			filled++
		}
	}
	next := -1
	for i := len(prices) - 1; i >= 0; i-- {
		if valid[i] {
			next = i
			continue
		}
		if next >= 0 {
			prices[i] = nums[next]
			nums[i] = nums[next]
			valid[i] = true
			filled++
		}
	}
	return filled, 0
}
