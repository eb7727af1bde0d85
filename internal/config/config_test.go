package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "yahoo", cfg.DataSource.Provider)
	assert.Equal(t, []string{"AAPL"}, cfg.DataSource.Symbols)
	assert.Equal(t, "close", cfg.DataSource.PriceField)
	assert.Equal(t, 90, cfg.Forecast.Days)
	assert.Equal(t, 0.95, cfg.Forecast.IntervalWidth)
	assert.True(t, cfg.Forecast.WeeklySeasonality)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
data_source:
  provider: csv
  csv_dir: prices
  symbols: [msft]
forecast:
  days: 30
  weekly_seasonality: false
output:
  format: xlsx
`)
	t.Setenv("OUTLOOK_SYMBOLS", "aapl, googl")
	t.Setenv("OUTLOOK_FORECAST_DAYS", "45")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "csv", cfg.DataSource.Provider)
	assert.Equal(t, "prices", cfg.DataSource.CSVDir)
	assert.Equal(t, []string{"AAPL", "GOOGL"}, cfg.DataSource.Symbols)
	assert.Equal(t, 45, cfg.Forecast.Days)
	assert.False(t, cfg.Forecast.WeeklySeasonality)
	assert.Equal(t, "xlsx", cfg.Output.Format)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "forecast: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.DataSource.Provider = "ftp"
	assert.Error(t, cfg.Validate())
	cfg.DataSource.Provider = "mock"

	cfg.Forecast.IntervalWidth = 1.5
	assert.Error(t, cfg.Validate())
	cfg.Forecast.IntervalWidth = 0.9

	cfg.Output.Format = "parquet"
	assert.Error(t, cfg.Validate())
	cfg.Output.Format = "csv"

	assert.NoError(t, cfg.Validate())
	assert.Error(t, cfg.ValidateNotifier())
	cfg.Telegram.BotToken = "token"
	cfg.Telegram.ChatID = "42"
	assert.NoError(t, cfg.ValidateNotifier())
}
