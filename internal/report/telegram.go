package report

import (
	"fmt"
	"html"
	"strings"
)

// FormatTelegram renders s as an HTML Telegram message.
func FormatTelegram(s *Summary) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>%s outlook</b> | %s\n\n", html.EscapeString(s.Label), s.Now.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Current price: %.2f\n", s.Current))

	for _, h := range []*Horizon{s.Short, s.Full} {
		if h == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("\n📈 <b>%s</b> (%s)\n", h.Title, FormatDate(h.Scenarios.Date)))
		b.WriteString(fmt.Sprintf("  Expected: %.2f", h.Scenarios.Expected.Price))
		if h.HasChange {
			b.WriteString(fmt.Sprintf(" (%+.1f%%)", h.ChangePct))
		}
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Range: %.2f - %.2f\n", h.Scenarios.Pessimistic.Price, h.Scenarios.Optimistic.Price))
		b.WriteString(fmt.Sprintf("  %s\n", h.Confidence.Label))
	}

	if s.Optimal != nil {
		b.WriteString(fmt.Sprintf("\n🎯 <b>Best exit:</b> %s (in %d days)\n", FormatDate(s.Optimal.Date), s.Optimal.DaysFromNow))
		b.WriteString(fmt.Sprintf("  Expected: %.2f | Spread: %.2f\n", s.Optimal.Expected, s.Optimal.Spread))
	}

	if s.Volatility != nil {
		b.WriteString(fmt.Sprintf("\n📉 Volatility (%dd): σ %.2f | CV %.3f\n", s.Volatility.Window, s.Volatility.StdDev, s.Volatility.CoefficientOfVariation))
	}

	for _, n := range s.Notes {
		b.WriteString(fmt.Sprintf("\n⚠️ %s", html.EscapeString(n)))
	}
	return b.String()
}
