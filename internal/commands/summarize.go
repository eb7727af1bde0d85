package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"PriceOutlook/internal/report"
)

var (
	sumCurrent float64
	sumLabel   string
	sumText    bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize FILE",
	Short: "Summarize a previously exported forecast",
	Long: `Load a forecast written by "outlook run" (CSV or XLSX) and print the
scenario, optimal-exit and volatility summary as of now.

Examples:
  outlook summarize outputs/AAPL_forecast_20240603.csv --current 187.3`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().Float64Var(&sumCurrent, "current", 0, "current price used for percent changes")
	summarizeCmd.Flags().StringVar(&sumLabel, "label", "", "report label (defaults to the file name)")
	summarizeCmd.Flags().BoolVar(&sumText, "text", false, "print the plain-text report instead of a table")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	path := args[0]
	fc, err := report.ReadForecast(path)
	if err != nil {
		return fmt.Errorf("load forecast: %w", err)
	}

	label := sumLabel
	if label == "" {
		label = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	s := report.BuildSummary(fc, sumCurrent, label, time.Now())
	if sumText {
		fmt.Fprint(cmd.OutOrStdout(), report.FormatText(s))
		return nil
	}
	report.RenderTable(cmd.OutOrStdout(), s)
	return nil
}
