package normalize

import (
	"strings"
	"time"

	"PriceOutlook/internal/model"
)

// CanonicalDateLabel is the name a positional date column is renamed to.
const CanonicalDateLabel = "date"

// DefaultPriceField is the price column searched for when none is given.
const DefaultPriceField = "close"

var dateCandidates = []string{"date", "ds", "datetime", "timestamp", "time"}

// genericIndexNames are the labels left behind by an index reset.
var genericIndexNames = []string{"index", "timestamp", "level_0", ""}

// Resolution identifies a resolved column.
type Resolution struct {
	Index    int
	Label    string // label after resolution; differs from the header on rename
	Strategy string
}

// DateStrategy locates the date column. It returns the column index and the
// label the column carries afterwards.
type DateStrategy struct {
	Name string
	Find func(cols []model.Column) (idx int, label string, ok bool)
}

// PriceStrategy locates the price column for the requested field.
type PriceStrategy struct {
	Name string
	Find func(cols []model.Column, field string) (idx int, ok bool)
}

// DefaultDateStrategies are evaluated in order until one matches.
var DefaultDateStrategies = []DateStrategy{
	{Name: "candidate name", Find: dateByCandidateName},
	{Name: "temporal values", Find: dateByTemporalValues},
	{Name: "positional index", Find: dateByPositionalIndex},
}

// DefaultPriceStrategies are evaluated in order until one matches.
var DefaultPriceStrategies = []PriceStrategy{
	{Name: "exact name", Find: priceByExactName},
	{Name: "case-insensitive name", Find: priceByFoldedName},
}

// Resolver finds the date and price columns of a flattened table.
type Resolver struct {
	DateStrategies  []DateStrategy
	PriceStrategies []PriceStrategy
}

// NewResolver returns a resolver with the default strategy lists.
func NewResolver() *Resolver {
	return &Resolver{
		DateStrategies:  DefaultDateStrategies,
		PriceStrategies: DefaultPriceStrategies,
	}
}

// ResolveDate runs the date strategies in order.
func (r *Resolver) ResolveDate(cols []model.Column) (Resolution, error) {
	if err := requireFlat("resolve date column", "", cols); err != nil {
		return Resolution{}, err
	}
	tried := make([]string, 0, len(r.DateStrategies))
	for _, s := range r.DateStrategies {
		tried = append(tried, s.Name)
		if idx, label, ok := s.Find(cols); ok {
			return Resolution{Index: idx, Label: label, Strategy: s.Name}, nil
		}
	}
	return Resolution{}, &DataError{
		Op:        "resolve date column",
		Tried:     tried,
		Available: columnNames(cols),
		Reason:    "no date column found",
	}
}

// ResolvePrice runs the price strategies in order for field.
func (r *Resolver) ResolvePrice(cols []model.Column, field string) (Resolution, error) {
	if field == "" {
		field = DefaultPriceField
	}
	if err := requireFlat("resolve price column", field, cols); err != nil {
		return Resolution{}, err
	}
	tried := make([]string, 0, len(r.PriceStrategies))
	for _, s := range r.PriceStrategies {
		tried = append(tried, s.Name)
		if idx, ok := s.Find(cols, field); ok {
			return Resolution{Index: idx, Label: cols[idx].Name(), Strategy: s.Name}, nil
		}
	}
	return Resolution{}, &DataError{
		Op:        "resolve price column",
		Field:     field,
		Tried:     tried,
		Available: columnNames(cols),
		Reason:    "no matching column",
	}
}

// Resolve finds both columns.
func (r *Resolver) Resolve(cols []model.Column, field string) (date, price Resolution, err error) {
	if date, err = r.ResolveDate(cols); err != nil {
		return Resolution{}, Resolution{}, err
	}
	if price, err = r.ResolvePrice(cols, field); err != nil {
		return Resolution{}, Resolution{}, err
	}
	if price.Index == date.Index {
		return Resolution{}, Resolution{}, &DataError{
			Op:        "resolve price column",
			Field:     field,
			Available: columnNames(cols),
			Reason:    "price field resolved to the date column " + date.Label,
		}
	}
	return date, price, nil
}

func dateByCandidateName(cols []model.Column) (int, string, bool) {
	for i, c := range cols {
		name := strings.ToLower(strings.TrimSpace(c.Name()))
		for _, cand := range dateCandidates {
			if name == cand {
				return i, c.Name(), true
			}
		}
	}
	return 0, "", false
}

func dateByTemporalValues(cols []model.Column) (int, string, bool) {
	for i, c := range cols {
		seen := false
		temporal := true
		for _, v := range c.Values {
			if v == nil {
				continue
			}
			if _, ok := v.(time.Time); !ok {
				temporal = false
				break
			}
			seen = true
		}
		if seen && temporal {
			return i, c.Name(), true
		}
	}
	return 0, "", false
}

func dateByPositionalIndex(cols []model.Column) (int, string, bool) {
	if len(cols) == 0 {
		return 0, "", false
	}
	name := strings.ToLower(strings.TrimSpace(cols[0].Name()))
	for _, generic := range genericIndexNames {
		if name == generic {
			return 0, CanonicalDateLabel, true
		}
	}
	return 0, "", false
}

func priceByExactName(cols []model.Column, field string) (int, bool) {
	for i, c := range cols {
		if c.Name() == field {
			return i, true
		}
	}
	return 0, false
}

func priceByFoldedName(cols []model.Column, field string) (int, bool) {
	for i, c := range cols {
		if strings.EqualFold(strings.TrimSpace(c.Name()), field) {
			return i, true
		}
	}
	return 0, false
}

func requireFlat(op, field string, cols []model.Column) error {
	for _, c := range cols {
		if c.MultiLevel() {
			return &DataError{
				Op:        op,
				Field:     field,
				Available: columnNames(cols),
				Reason:    "multi-level header " + c.Name() + " must be flattened first",
			}
		}
	}
	return nil
}

func columnNames(cols []model.Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name()
	}
	return names
}
