package commands

import (
	"github.com/sirupsen/logrus"

	"PriceOutlook/internal/collector"
	"PriceOutlook/internal/config"
	"PriceOutlook/internal/forecast"
	"PriceOutlook/internal/logger"
	"PriceOutlook/internal/monitoring"
	"PriceOutlook/internal/pipeline"
	"PriceOutlook/internal/recorder"
)

func newRunner(cfg *config.Config, log *logrus.Logger, rec recorder.Recorder, metrics *monitoring.Metrics) (*pipeline.Runner, error) {
	fetcher, err := collector.NewFetcher(cfg.DataSource.Provider, cfg.DataSource.CSVDir, cfg.Proxy)
	if err != nil {
		return nil, err
	}
	log.WithField("source", fetcher.Name()).Info("data source ready")

	col := collector.NewCollector(fetcher, logger.WithComponent(log, "collector"))
	runner := pipeline.NewRunner(col, pipeline.SettingsFromConfig(cfg), forecast.Options{
		IntervalWidth:     cfg.Forecast.IntervalWidth,
		WeeklySeasonality: cfg.Forecast.WeeklySeasonality,
	}, logger.WithComponent(log, "pipeline"))
	if rec != nil {
		runner.Recorder = rec
	}
	runner.Metrics = metrics
	return runner, nil
}

// openRecorder falls back to the no-op recorder when SQLite is unset or fails.
func openRecorder(cfg *config.Config, log *logrus.Logger) recorder.Recorder {
	if cfg.Database.SQLitePath == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, logger.WithComponent(log, "recorder"))
	if err != nil {
		log.WithError(err).Warn("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}
