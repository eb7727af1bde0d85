package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"PriceOutlook/internal/report"
)

var (
	runDays       int
	runLookback   int
	runProvider   string
	runFormat     string
	runOutput     string
	runComponents bool
	runText       bool
)

var runCmd = &cobra.Command{
	Use:   "run [SYMBOL...]",
	Short: "Forecast one or more symbols now",
	Long: `Fetch the price history, train the baseline model, print the summary and
export the forecast table. Symbols default to data_source.symbols.

Examples:
  outlook run AAPL
  outlook run AAPL MSFT --days 30 --format xlsx
  outlook run --provider csv --components`,
	RunE: runForecast,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVarP(&runDays, "days", "d", 0, "forecast horizon in days, counted from today")
	runCmd.Flags().IntVar(&runLookback, "lookback", 0, "history length in days")
	runCmd.Flags().StringVar(&runProvider, "provider", "", "data provider (yahoo, csv, mock)")
	runCmd.Flags().StringVarP(&runFormat, "format", "f", "", "export format (csv, xlsx)")
	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "export directory")
	runCmd.Flags().BoolVar(&runComponents, "components", false, "export decomposition components")
	runCmd.Flags().BoolVar(&runText, "text", false, "print the plain-text report instead of a table")
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	if runDays > 0 {
		cfg.Forecast.Days = runDays
	}
	if runLookback > 0 {
		cfg.DataSource.LookbackDays = runLookback
	}
	if runProvider != "" {
		cfg.DataSource.Provider = runProvider
	}
	if runFormat != "" {
		cfg.Output.Format = runFormat
	}
	if runOutput != "" {
		cfg.Output.Dir = runOutput
	}
	if runComponents {
		cfg.Output.IncludeComponents = true
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	symbols := cfg.DataSource.Symbols
	if len(args) > 0 {
		symbols = nil
		for _, a := range args {
			symbols = append(symbols, strings.ToUpper(a))
		}
	}

	rec := openRecorder(cfg, log)
	defer rec.Close()

	runner, err := newRunner(cfg, log, rec, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var failed []string
	out := cmd.OutOrStdout()
	for _, symbol := range symbols {
		outcome, err := runner.Run(ctx, symbol)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %v\n", symbol, err)
			failed = append(failed, symbol)
			continue
		}
		if runText {
			fmt.Fprint(out, report.FormatText(outcome.Summary))
		} else {
			report.RenderTable(out, outcome.Summary)
		}
		fmt.Fprintf(out, "✅ Forecast exported to: %s\n\n", outcome.ExportPath)
	}

	if len(failed) > 0 {
		return fmt.Errorf("forecast failed for %s", strings.Join(failed, ", "))
	}
	return nil
}
