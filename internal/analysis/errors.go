package analysis

import (
	"fmt"
	"time"
)

// RangeError is a recoverable analysis failure. Reason is shown to users
// verbatim, and callers branch on which sentinel they got.
type RangeError struct {
	Reason string
}

func (e *RangeError) Error() string { return e.Reason }

var (
	ErrEmptyForecast = &RangeError{Reason: "No forecast data available"}
	ErrNoValidDates  = &RangeError{Reason: "No valid dates in forecast"}
	ErrNoDataInRange = &RangeError{Reason: "No data in specified date range"}
	ErrNoFutureData  = &RangeError{Reason: "No future data available"}
)

// LookupError reports a target date with no exactly matching record.
type LookupError struct {
	Date time.Time
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("No forecast data for %s", formatDate(e.Date))
}

func formatDate(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04:05")
}
