package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"PriceOutlook/internal/analysis"
	"PriceOutlook/internal/calculator"
	"PriceOutlook/internal/collector"
	"PriceOutlook/internal/config"
	"PriceOutlook/internal/forecast"
	"PriceOutlook/internal/model"
	"PriceOutlook/internal/monitoring"
	"PriceOutlook/internal/normalize"
	"PriceOutlook/internal/recorder"
	"PriceOutlook/internal/report"
)

// Settings are the per-run knobs taken from configuration.
type Settings struct {
	PriceField        string
	LookbackDays      int
	ForecastDays      int
	OutputDir         string
	OutputFormat      string // csv or xlsx
	IncludeComponents bool
}

// SettingsFromConfig extracts run settings from the loaded config.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		PriceField:        cfg.DataSource.PriceField,
		LookbackDays:      cfg.DataSource.LookbackDays,
		ForecastDays:      cfg.Forecast.Days,
		OutputDir:         cfg.Output.Dir,
		OutputFormat:      cfg.Output.Format,
		IncludeComponents: cfg.Output.IncludeComponents,
	}
}

// Outcome is everything one successful run produced.
type Outcome struct {
	Symbol     string
	Now        time.Time
	Series     *model.CanonicalSeries
	Forecast   *model.ForecastTable
	Summary    *report.Summary
	Fill       normalize.FillReport
	ExportPath string
}

// Runner executes the forecast pipeline for one symbol at a time. Runs share
// no state, so concurrent calls are safe as long as the injected
// collaborators are.
type Runner struct {
	Collector  *collector.Collector
	Normalizer *normalize.Normalizer
	NewModel   func() forecast.Model
	Recorder   recorder.Recorder
	Metrics    *monitoring.Metrics // optional
	Clock      func() time.Time
	Settings   Settings

	log *logrus.Entry
}

// NewRunner wires a runner with the linear baseline model, a no-op recorder
// and the wall clock. Callers override fields as needed.
func NewRunner(col *collector.Collector, settings Settings, modelOpts forecast.Options, log *logrus.Entry) *Runner {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Runner{
		Collector:  col,
		Normalizer: normalize.NewNormalizer(log.WithField("stage", "normalize")),
		NewModel:   func() forecast.Model { return forecast.NewLinearTrend(modelOpts) },
		Recorder:   recorder.NewNoopRecorder(),
		Clock:      time.Now,
		Settings:   settings,
		log:        log,
	}
}

// Run executes one pipeline pass. The clock is read once and that instant
// drives every window in the report. Analysis sections that come back empty
// are noted on the summary and never fail the run.
func (r *Runner) Run(ctx context.Context, symbol string) (*Outcome, error) {
	now := r.Clock()
	started := time.Now()
	entry := r.log.WithField("symbol", symbol)

	out, err := r.run(ctx, symbol, now, entry)
	took := time.Since(started)

	snap := &recorder.RunSnapshot{
		Symbol:      symbol,
		RunAt:       now,
		Status:      monitoring.StatusOK,
		Source:      r.Collector.Fetcher.Name(),
		HorizonDays: r.Settings.ForecastDays,
	}
	if err != nil {
		snap.Status = monitoring.StatusFailed
		snap.Error = err.Error()
		entry.WithError(err).Error("forecast run failed")
	} else {
		fillSnapshot(snap, out)
		entry.WithFields(logrus.Fields{
			"rows":   out.Series.Len(),
			"export": out.ExportPath,
			"took":   took.Round(time.Millisecond).String(),
		}).Info("forecast run completed")
	}

	if recErr := r.Recorder.RecordRun(snap); recErr != nil {
		entry.WithError(recErr).Error("record run")
	}
	if r.Metrics != nil {
		r.Metrics.ObserveRun(symbol, snap.Status, took, now)
		if out != nil {
			r.Metrics.AddDroppedRows(symbol, out.Fill.DuplicatesRemoved+out.Fill.RowsOut-out.Series.Len())
			if s := out.Summary; s.Optimal != nil {
				r.Metrics.SetOptimal(symbol, s.Optimal.Expected)
			}
			if s := out.Summary; s.Full != nil {
				r.Metrics.SetSpread(symbol, s.Full.Scenarios.Spread)
			}
		}
	}
	return out, err
}

func (r *Runner) run(ctx context.Context, symbol string, now time.Time, entry *logrus.Entry) (*Outcome, error) {
	start := now.AddDate(0, 0, -r.Settings.LookbackDays)
	raw, err := r.Collector.Collect(ctx, symbol, start, now)
	if err != nil {
		return nil, err
	}

	cleaned, fill, err := r.Normalizer.DedupeAndFill(raw, r.Settings.PriceField)
	if err != nil {
		return nil, fmt.Errorf("dedupe %s: %w", symbol, err)
	}
	series, err := r.Normalizer.Normalize(cleaned, r.Settings.PriceField)
	if err != nil {
		return nil, fmt.Errorf("normalize %s: %w", symbol, err)
	}

	history, err := calculator.SeriesMetrics(series)
	if err != nil {
		return nil, fmt.Errorf("history metrics: %w", err)
	}
	entry.WithFields(logrus.Fields{
		"points": history.Count,
		"mean":   fmt.Sprintf("%.2f", history.Mean),
		"std":    fmt.Sprintf("%.2f", history.StdDev),
		"min":    history.Min,
		"max":    history.Max,
	}).Debug("historical metrics")

	m := r.NewModel()
	if err := m.Train(series); err != nil {
		return nil, fmt.Errorf("train %s: %w", m.Name(), err)
	}
	// The horizon counts from today, not from the last bar.
	periods := r.Settings.ForecastDays
	if lag := analysis.DaysBetween(latest(series), now); lag > 0 {
		periods += lag
	}
	fc, err := m.Predict(periods)
	if err != nil {
		return nil, fmt.Errorf("predict %s: %w", m.Name(), err)
	}

	last, _ := series.Last()
	summary := report.BuildSummary(fc, last.Value, symbol, now)
	summary.History = &history
	for _, note := range summary.Notes {
		entry.WithField("section", note).Warn("report section unavailable")
	}

	path, err := report.Export(fc, r.exportPath(symbol, now), report.Options{IncludeComponents: r.Settings.IncludeComponents})
	if err != nil {
		return nil, fmt.Errorf("export %s: %w", symbol, err)
	}

	return &Outcome{
		Symbol:     symbol,
		Now:        now,
		Series:     series,
		Forecast:   fc,
		Summary:    summary,
		Fill:       fill,
		ExportPath: path,
	}, nil
}

func latest(series *model.CanonicalSeries) time.Time {
	var t time.Time
	for _, p := range series.Points {
		if p.Time.After(t) {
			t = p.Time
		}
	}
	return t
}

func (r *Runner) exportPath(symbol string, now time.Time) string {
	ext := "csv"
	if strings.EqualFold(r.Settings.OutputFormat, "xlsx") {
		ext = "xlsx"
	}
	name := fmt.Sprintf("%s_forecast_%s.%s", strings.ToUpper(symbol), now.Format("20060102"), ext)
	return filepath.Join(r.Settings.OutputDir, name)
}

func fillSnapshot(snap *recorder.RunSnapshot, out *Outcome) {
	s := out.Summary
	snap.RowsFetched = out.Fill.RowsIn
	snap.RowsUsed = out.Series.Len()
	snap.CurrentPrice = s.Current
	snap.ExportPath = out.ExportPath
	if s.Optimal != nil {
		date, price, days := s.Optimal.Date, s.Optimal.Expected, s.Optimal.DaysFromNow
		snap.OptimalDate, snap.OptimalPrice, snap.OptimalDays = &date, &price, &days
	}
	if s.Short != nil {
		v := s.Short.Scenarios.Expected.Price
		snap.Expected30 = &v
	}
	if s.Full != nil {
		v := s.Full.Scenarios.Expected.Price
		snap.ExpectedFull = &v
		snap.ConfidenceLevel = string(s.Full.Confidence.Level)
	}
	if s.Volatility != nil {
		std, band := s.Volatility.StdDev, s.Volatility.AvgBandWidth
		snap.StdDev, snap.AvgBandWidth = &std, &band
	}
}
