package normalize

import (
	"strings"

	"github.com/sirupsen/logrus"

	"PriceOutlook/internal/model"
)

// Normalizer turns raw price tables into canonical series.
type Normalizer struct {
	Resolver *Resolver
	log      *logrus.Entry
}

// NewNormalizer creates a Normalizer with the default resolver.
func NewNormalizer(log *logrus.Entry) *Normalizer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Normalizer{Resolver: NewResolver(), log: log}
}

// Normalize builds the canonical series with the package default normalizer.
func Normalize(raw *model.RawTable, priceField string) (*model.CanonicalSeries, error) {
	return NewNormalizer(nil).Normalize(raw, priceField)
}

// Normalize flattens headers, resets the index, resolves the date and price
// columns and keeps only rows with a parseable date and a numeric price.
// Dropped rows are logged, not reported as errors.
func (n *Normalizer) Normalize(raw *model.RawTable, priceField string) (*model.CanonicalSeries, error) {
	if priceField == "" {
		priceField = DefaultPriceField
	}
	cols, rows, err := prepare(raw, priceField)
	if err != nil {
		return nil, err
	}
	date, price, err := n.Resolver.Resolve(cols, priceField)
	if err != nil {
		return nil, err
	}

	series := &model.CanonicalSeries{Points: make([]model.Point, 0, rows)}
	var badDates, missingPrices int
	for i := 0; i < rows; i++ {
		ts, ok := parseTime(cell(cols[date.Index], i))
		if !ok {
			badDates++
			continue
		}
		v, ok := toFloat(cell(cols[price.Index], i))
		if !ok {
			missingPrices++
			continue
		}
		series.Points = append(series.Points, model.Point{Time: ts, Value: v})
	}

	entry := n.log.WithFields(logrus.Fields{
		"date_column":  date.Label,
		"date_via":     date.Strategy,
		"price_column": price.Label,
		"rows_before":  rows,
		"rows_after":   series.Len(),
	})
	if dropped := rows - series.Len(); dropped > 0 {
		entry.WithFields(logrus.Fields{
			"bad_dates":      badDates,
			"missing_prices": missingPrices,
		}).Warnf("dropped %d unusable rows", dropped)
	} else {
		entry.Debug("normalized price series")
	}

	if series.Len() == 0 {
		return nil, &DataError{
			Op:        "parse rows",
			Field:     priceField,
			Available: columnNames(cols),
			Reason:    "no usable rows remain after parsing",
		}
	}
	return series, nil
}

// prepare returns flattened single-level columns with the index reset into
// the first column, plus the row count.
func prepare(raw *model.RawTable, priceField string) ([]model.Column, int, error) {
	rows := raw.Rows()
	if raw == nil || len(raw.Columns) == 0 || rows == 0 {
		var available []string
		if raw != nil {
			available = raw.ColumnNames()
		}
		return nil, 0, &DataError{
			Op:        "read table",
			Available: available,
			Reason:    "raw table is empty",
		}
	}

	cols := flatten(raw.Columns, priceField)
	if raw.Index != nil {
		name := raw.Index.Name()
		if strings.TrimSpace(name) == "" {
			name = "index"
		}
		idx := model.Column{Header: []string{name}, Values: raw.Index.Values}
		cols = append([]model.Column{idx}, cols...)
	}
	return cols, rows, nil
}

// flatten collapses multi-level headers to the level holding the field
// names: the level with the most labels that look like a date or the price
// field, ties going to the deepest level.
func flatten(cols []model.Column, priceField string) []model.Column {
	depth := 0
	for _, c := range cols {
		if len(c.Header) > depth {
			depth = len(c.Header)
		}
	}
	out := make([]model.Column, len(cols))
	if depth <= 1 {
		copy(out, cols)
		return out
	}

	level, best := depth-1, -1
	for l := depth - 1; l >= 0; l-- {
		score := 0
		for _, c := range cols {
			if l < len(c.Header) && isFieldLabel(c.Header[l], priceField) {
				score++
			}
		}
		if score > best {
			level, best = l, score
		}
	}

	for i, c := range cols {
		out[i] = model.Column{Header: []string{labelAt(c.Header, level)}, Values: c.Values}
	}
	return out
}

func isFieldLabel(label, priceField string) bool {
	l := strings.ToLower(strings.TrimSpace(label))
	if strings.EqualFold(l, priceField) {
		return true
	}
	for _, cand := range dateCandidates {
		if l == cand {
			return true
		}
	}
	return false
}

// labelAt picks the label at level, falling back to the first non-empty one
// for short or blank headers.
func labelAt(header []string, level int) string {
	if level < len(header) && strings.TrimSpace(header[level]) != "" {
		return header[level]
	}
	for _, h := range header {
		if strings.TrimSpace(h) != "" {
			return h
		}
	}
	return ""
}

func cell(c model.Column, row int) any {
	if row >= len(c.Values) {
		return nil
	}
	return c.Values[row]
}
