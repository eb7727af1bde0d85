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

// ReadForecast loads a file written by Export. Columns other than the four
// base columns are read back as components.
func ReadForecast(path string) (*model.ForecastTable, error) {
	var (
		records [][]string
		err     error
	)
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		records, err = readXLSX(path)
	} else {
		records, err = readCSV(path)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}
	return parseRecords(records[0], records[1:])
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	fx, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fx.Close()

	rows, err := fx.GetRows(fx.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return rows, nil
}

func parseRecords(header []string, rows [][]string) (*model.ForecastTable, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.TrimSpace(h)] = i
	}
	for _, required := range []string{ColumnDate, ColumnValue, ColumnLower, ColumnUpper} {
		if _, ok := pos[required]; !ok {
			return nil, fmt.Errorf("missing column %q (have %s)", required, strings.Join(header, ", "))
		}
	}

	var components []string
	for _, h := range header {
		switch h = strings.TrimSpace(h); h {
		case ColumnDate, ColumnValue, ColumnLower, ColumnUpper:
		default:
			components = append(components, h)
		}
	}

	f := &model.ForecastTable{ComponentNames: components}
	for n, row := range rows {
		cell := func(name string) string {
			if i := pos[name]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		p := model.ForecastPoint{Date: parseDate(cell(ColumnDate))}
		var err error
		if p.Expected, err = strconv.ParseFloat(cell(ColumnValue), 64); err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", n+2, ColumnValue, err)
		}
		if p.Lower, err = strconv.ParseFloat(cell(ColumnLower), 64); err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", n+2, ColumnLower, err)
		}
		if p.Upper, err = strconv.ParseFloat(cell(ColumnUpper), 64); err != nil {
			return nil, fmt.Errorf("row %d: %s: %w", n+2, ColumnUpper, err)
		}
		for _, c := range components {
			if v, err := strconv.ParseFloat(cell(c), 64); err == nil {
				if p.Components == nil {
					p.Components = make(map[string]float64, len(components))
				}
				p.Components[c] = v
			}
		}
		f.Points = append(f.Points, p)
	}
	return f, nil
}

// parseDate leaves unparseable dates zero.
func parseDate(s string) time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
