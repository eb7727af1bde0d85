package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"PriceOutlook/internal/model"
)

// Base columns of every exported forecast.
const (
	ColumnDate  = "date"
	ColumnValue = "expected"
	ColumnLower = "lower_bound"
	ColumnUpper = "upper_bound"
)

const sheetName = "Forecast"

// DefaultComponents are the decomposition columns exported when requested.
var DefaultComponents = []string{
	model.ComponentTrend,
	model.ComponentYearly,
	model.ComponentWeekly,
	model.ComponentHolidays,
}

// Options controls the exported column set.
type Options struct {
	IncludeComponents bool
	// Components overrides DefaultComponents when non-empty.
	Components []string
}

// Columns returns the header the export of f would carry. Requested
// components the table does not have are left out.
func Columns(f *model.ForecastTable, opts Options) []string {
	cols := []string{ColumnDate, ColumnValue, ColumnLower, ColumnUpper}
	if !opts.IncludeComponents {
		return cols
	}
	wanted := opts.Components
	if len(wanted) == 0 {
		wanted = DefaultComponents
	}
	for _, c := range wanted {
		if f.HasComponent(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// Export writes f to dest and returns dest. A ".xlsx" suffix selects a
// workbook, anything else a comma-delimited file. Parent directories are
// created. Write failures are returned wrapped, so errors.Is still matches
// the underlying fs error.
func Export(f *model.ForecastTable, dest string, opts Options) (string, error) {
	if dir := filepath.Dir(dest); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("create export directory %s: %w", dir, err)
		}
	}

	cols := Columns(f, opts)
	rows := make([][]string, 0, f.Len())
	if f != nil {
		for _, p := range f.Points {
			rows = append(rows, recordRow(p, cols))
		}
	}

	var err error
	if strings.EqualFold(filepath.Ext(dest), ".xlsx") {
		err = writeXLSX(dest, cols, rows)
	} else {
		err = writeCSV(dest, cols, rows)
	}
	if err != nil {
		return "", err
	}
	return dest, nil
}

func recordRow(p model.ForecastPoint, cols []string) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		switch c {
		case ColumnDate:
			row[i] = FormatDate(p.Date)
		case ColumnValue:
			row[i] = formatFloat(p.Expected)
		case ColumnLower:
			row[i] = formatFloat(p.Lower)
		case ColumnUpper:
			row[i] = formatFloat(p.Upper)
		default:
			if v, ok := p.Components[c]; ok {
				row[i] = formatFloat(v)
			}
		}
	}
	return row
}

// FormatDate renders a date in ISO form, with the time of day only when one
// is present. A zero date renders empty.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("write rows: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func writeXLSX(path string, header []string, rows [][]string) error {
	fx := excelize.NewFile()
	defer fx.Close()

	fx.SetSheetName(fx.GetSheetName(0), sheetName)
	for r, values := range append([][]string{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
			if r > 0 && i > 0 && v != "" {
				if num, err := strconv.ParseFloat(v, 64); err == nil {
					row[i] = num
				}
			}
		}
		if err := fx.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r+1, err)
		}
	}
	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
