package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log *logrus.Entry
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log *logrus.Entry) (*SQLiteRecorder, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while runs write.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.WithField("path", dbPath).Info("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS forecast_runs (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			symbol           TEXT NOT NULL,
			status           TEXT NOT NULL,
			error            TEXT,
			source           TEXT,
			rows_fetched     INTEGER,
			rows_used        INTEGER,
			current_price    REAL,
			horizon_days     INTEGER,
			optimal_date     TEXT,
			optimal_price    REAL,
			optimal_days     INTEGER,
			expected_30d     REAL,
			expected_full    REAL,
			std_dev          REAL,
			avg_band_width   REAL,
			confidence_level TEXT,
			export_path      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_symbol_ts ON forecast_runs(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	runAt := snap.RunAt
	if runAt.IsZero() {
		runAt = time.Now()
	}
	var optimalDate sql.NullString
	if snap.OptimalDate != nil {
		optimalDate = sql.NullString{String: snap.OptimalDate.Format("2006-01-02"), Valid: true}
	}

	_, err := r.db.Exec(`INSERT INTO forecast_runs
		(timestamp, symbol, status, error, source, rows_fetched, rows_used,
		 current_price, horizon_days,
		 optimal_date, optimal_price, optimal_days,
		 expected_30d, expected_full, std_dev, avg_band_width,
		 confidence_level, export_path)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		runAt.Unix(), snap.Symbol, snap.Status, snap.Error, snap.Source,
		snap.RowsFetched, snap.RowsUsed, snap.CurrentPrice, snap.HorizonDays,
		optimalDate, nullFloat(snap.OptimalPrice), nullInt(snap.OptimalDays),
		nullFloat(snap.Expected30), nullFloat(snap.ExpectedFull),
		nullFloat(snap.StdDev), nullFloat(snap.AvgBandWidth),
		snap.ConfidenceLevel, snap.ExportPath,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs for symbol, newest first.
func (r *SQLiteRecorder) RecentRuns(symbol string, limit int) ([]RunSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT timestamp, symbol, status, error, source,
		rows_fetched, rows_used, current_price, horizon_days,
		optimal_date, optimal_price, optimal_days,
		expected_30d, expected_full, std_dev, avg_band_width,
		confidence_level, export_path
		FROM forecast_runs WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSnapshot
	for rows.Next() {
		var (
			snap                                       RunSnapshot
			ts                                         int64
			errText, source, level, exportPath         sql.NullString
			optimalDate                                sql.NullString
			optimalPrice, exp30, expFull, std, avgBand sql.NullFloat64
			optimalDays                                sql.NullInt64
		)
		if err := rows.Scan(&ts, &snap.Symbol, &snap.Status, &errText, &source,
			&snap.RowsFetched, &snap.RowsUsed, &snap.CurrentPrice, &snap.HorizonDays,
			&optimalDate, &optimalPrice, &optimalDays,
			&exp30, &expFull, &std, &avgBand,
			&level, &exportPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		snap.RunAt = time.Unix(ts, 0)
		snap.Error = errText.String
		snap.Source = source.String
		snap.ConfidenceLevel = level.String
		snap.ExportPath = exportPath.String
		if optimalDate.Valid {
			if d, err := time.Parse("2006-01-02", optimalDate.String); err == nil {
				snap.OptimalDate = &d
			}
		}
		snap.OptimalPrice = floatPtr(optimalPrice)
		snap.Expected30 = floatPtr(exp30)
		snap.ExpectedFull = floatPtr(expFull)
		snap.StdDev = floatPtr(std)
		snap.AvgBandWidth = floatPtr(avgBand)
		if optimalDays.Valid {
			d := int(optimalDays.Int64)
			snap.OptimalDays = &d
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info("closing sqlite recorder")
	return r.db.Close()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
