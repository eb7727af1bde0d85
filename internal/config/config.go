package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"PriceOutlook/internal/logger"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider     string   `yaml:"provider"` // yahoo, csv or mock
		CSVDir       string   `yaml:"csv_dir"`
		Symbols      []string `yaml:"symbols"`
		LookbackDays int      `yaml:"lookback_days"`
		PriceField   string   `yaml:"price_field"`
	} `yaml:"data_source"`
	Forecast struct {
		Days              int     `yaml:"days"`
		IntervalWidth     float64 `yaml:"interval_width"`
		WeeklySeasonality bool    `yaml:"weekly_seasonality"`
	} `yaml:"forecast"`
	Output struct {
		Dir               string `yaml:"dir"`
		IncludeComponents bool   `yaml:"include_components"`
		Format            string `yaml:"format"` // csv or xlsx
	} `yaml:"output"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr"`
	} `yaml:"metrics"`
	Logging logger.Config `yaml:"logging"`
	Proxy   string        `yaml:"proxy"`
}

// Load reads config from a YAML file, then the optional .env file, then applies
// environment variable overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.Forecast.WeeklySeasonality = true

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	applyEnv(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OUTLOOK_PROVIDER"); v != "" {
		cfg.DataSource.Provider = v
	}
	if v := os.Getenv("OUTLOOK_CSV_DIR"); v != "" {
		cfg.DataSource.CSVDir = v
	}
	if v := os.Getenv("OUTLOOK_SYMBOLS"); v != "" {
		var symbols []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				symbols = append(symbols, strings.ToUpper(s))
			}
		}
		cfg.DataSource.Symbols = symbols
	}
	if v := os.Getenv("OUTLOOK_FORECAST_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.Forecast.Days = days
		}
	}
	if v := os.Getenv("OUTLOOK_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.CSVDir == "" {
		cfg.DataSource.CSVDir = "data"
	}
	if len(cfg.DataSource.Symbols) == 0 {
		cfg.DataSource.Symbols = []string{"AAPL"}
	}
	if cfg.DataSource.LookbackDays == 0 {
		cfg.DataSource.LookbackDays = 730
	}
	if cfg.DataSource.PriceField == "" {
		cfg.DataSource.PriceField = "close"
	}
	if cfg.Forecast.Days == 0 {
		cfg.Forecast.Days = 90
	}
	if cfg.Forecast.IntervalWidth == 0 {
		cfg.Forecast.IntervalWidth = 0.95
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "outputs"
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "csv"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 30 22 * * 1-5"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "csv", "mock":
	default:
		return fmt.Errorf("data_source.provider must be yahoo, csv or mock, got %q", c.DataSource.Provider)
	}
	if len(c.DataSource.Symbols) == 0 {
		return fmt.Errorf("data_source.symbols is required")
	}
	if c.DataSource.LookbackDays <= 0 {
		return fmt.Errorf("data_source.lookback_days must be positive")
	}
	if c.Forecast.Days <= 0 {
		return fmt.Errorf("forecast.days must be positive")
	}
	if c.Forecast.IntervalWidth <= 0 || c.Forecast.IntervalWidth >= 1 {
		return fmt.Errorf("forecast.interval_width must be in (0, 1)")
	}
	switch c.Output.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("output.format must be csv or xlsx, got %q", c.Output.Format)
	}
	return nil
}

// ValidateNotifier checks the settings required by the serve command.
func (c *Config) ValidateNotifier() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	return nil
}
