package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderTable writes s to w as a rounded console table.
func RenderTable(w io.Writer, s *Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("FORECAST SUMMARY - %s", s.Label))
	t.SetStyle(table.StyleRounded)

	t.AppendRow(table.Row{"💰 Current Price", fmt.Sprintf("$%.2f", s.Current)})

	if s.History != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"📚 History Points", s.History.Count},
			{"📚 Mean / Std Dev", fmt.Sprintf("$%.2f / $%.2f", s.History.Mean, s.History.StdDev)},
			{"📚 Min / Max", fmt.Sprintf("$%.2f / $%.2f", s.History.Min, s.History.Max)},
		})
	}

	for _, h := range []*Horizon{s.Short, s.Full} {
		if h == nil {
			continue
		}
		change := "n/a"
		if h.HasChange {
			change = fmt.Sprintf("%+.2f%%", h.ChangePct)
		}
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"📈 " + h.Title, FormatDate(h.Scenarios.Date)},
			{"   Expected", fmt.Sprintf("$%.2f (%s)", h.Scenarios.Expected.Price, change)},
			{"   Range", fmt.Sprintf("$%.2f - $%.2f", h.Scenarios.Pessimistic.Price, h.Scenarios.Optimistic.Price)},
			{"   Confidence", h.Confidence.Label},
		})
	}

	if s.Optimal != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"🎯 Optimal Sell Date", fmt.Sprintf("%s (%d days)", FormatDate(s.Optimal.Date), s.Optimal.DaysFromNow)},
			{"   Expected Price", fmt.Sprintf("$%.2f", s.Optimal.Expected)},
		})
	}

	if s.Volatility != nil {
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{fmt.Sprintf("📊 Volatility (%dd)", s.Volatility.Window), fmt.Sprintf("σ $%.2f | CV %.3f", s.Volatility.StdDev, s.Volatility.CoefficientOfVariation)},
			{"   Avg Band Width", fmt.Sprintf("$%.2f (%.1f%%)", s.Volatility.AvgBandWidth, s.Volatility.AvgBandWidthPct)},
		})
	}

	for _, n := range s.Notes {
		t.AppendRow(table.Row{"⚠️ Unavailable", n})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 22, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, WidthMax: 60, Align: text.AlignLeft},
	})
	t.Render()
}
