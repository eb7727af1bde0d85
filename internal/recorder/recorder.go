package recorder

import "time"

// RunSnapshot is one pipeline run for one symbol. Pointer fields are nil
// when the corresponding report section was unavailable.
type RunSnapshot struct {
	Symbol       string
	RunAt        time.Time
	Status       string // "ok" or "failed"
	Error        string
	Source       string
	RowsFetched  int
	RowsUsed     int
	CurrentPrice float64
	HorizonDays  int

	OptimalDate     *time.Time
	OptimalPrice    *float64
	OptimalDays     *int
	Expected30      *float64
	ExpectedFull    *float64
	StdDev          *float64
	AvgBandWidth    *float64
	ConfidenceLevel string
	ExportPath      string
}

// Recorder persists run history for later analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) error
	RecentRuns(symbol string, limit int) ([]RunSnapshot, error)
	Close() error
}
