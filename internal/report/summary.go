package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"PriceOutlook/internal/analysis"
	"PriceOutlook/internal/calculator"
	"PriceOutlook/internal/model"
	"PriceOutlook/internal/strategy"
)

// Summary windows, in days ahead of now.
const (
	ShortHorizonDays     = 30
	VolatilityWindowDays = 90
)

// Horizon is the scenario set at the end of one look-ahead window.
type Horizon struct {
	Title      string
	Days       int
	Scenarios  *model.ScenarioSet
	ChangePct  float64
	HasChange  bool
	Confidence strategy.Confidence
}

// Summary gathers every report section. A nil section was unavailable and
// its reason is listed in Notes.
type Summary struct {
	Label      string
	Now        time.Time
	Current    float64
	Short      *Horizon
	Full       *Horizon
	Optimal    *model.OptimalPoint
	Volatility *model.VolatilityStats
	History    *model.HistoricalMetrics
	Notes      []string
}

// BuildSummary computes each section independently so that one empty
// window never suppresses the others.
func BuildSummary(f *model.ForecastTable, current float64, label string, now time.Time) *Summary {
	s := &Summary{Label: label, Now: now, Current: current}

	short := analysis.FutureValues(f, ShortHorizonDays, now)
	if short.Len() == ShortHorizonDays {
		h, err := horizonAt(f, short.Points[short.Len()-1].Date, current, "30-Day Forecast")
		if err != nil {
			s.note("30-day forecast", err)
		} else {
			h.Days = analysis.DaysBetween(now, h.Scenarios.Date)
			s.Short = h
		}
	} else {
		s.Notes = append(s.Notes, fmt.Sprintf("30-day forecast: horizon covers %d future days", short.Len()))
	}

	all := analysis.FutureValues(f, 0, now)
	if all.Len() > 0 {
		last := all.Points[all.Len()-1].Date
		h, err := horizonAt(f, last, current, "")
		if err != nil {
			s.note("full-horizon forecast", err)
		} else {
			h.Days = analysis.DaysBetween(now, last)
			h.Title = fmt.Sprintf("%d-Day Forecast", h.Days)
			s.Full = h
		}
	} else {
		s.note("full-horizon forecast", analysis.ErrNoFutureData)
	}

	if opt, err := analysis.FindOptimal(f, analysis.DateRange{}, now); err != nil {
		s.note("optimal exit", err)
	} else {
		s.Optimal = opt
	}

	if vol, err := analysis.Volatility(f, VolatilityWindowDays, now); err != nil {
		s.note("volatility", err)
	} else {
		s.Volatility = vol
	}
	return s
}

func horizonAt(f *model.ForecastTable, date time.Time, current float64, title string) (*Horizon, error) {
	set, err := analysis.ScenariosAt(f, date)
	if err != nil {
		return nil, err
	}
	h := &Horizon{
		Title:      title,
		Scenarios:  set,
		Confidence: strategy.Assess(set.Spread, set.Expected.Price),
	}
	h.ChangePct, h.HasChange = calculator.PercentChange(current, set.Expected.Price)
	return h, nil
}

func (s *Summary) note(section string, err error) {
	var rangeErr *analysis.RangeError
	var lookupErr *analysis.LookupError
	if errors.As(err, &rangeErr) || errors.As(err, &lookupErr) {
		s.Notes = append(s.Notes, fmt.Sprintf("%s: %s", section, err))
		return
	}
	s.Notes = append(s.Notes, fmt.Sprintf("%s: unavailable (%v)", section, err))
}

// Summarize renders the plain-text report for a forecast.
func Summarize(f *model.ForecastTable, current float64, label string, now time.Time) string {
	return FormatText(BuildSummary(f, current, label, now))
}

// FormatText renders s as a console report.
func FormatText(s *Summary) string {
	var b strings.Builder
	rule := strings.Repeat("=", 80)

	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("📊 FORECAST SUMMARY - %s\n", s.Label))
	b.WriteString(rule + "\n")
	b.WriteString(fmt.Sprintf("\n💰 Current Price: $%.2f\n", s.Current))

	if s.History != nil {
		b.WriteString(fmt.Sprintf("\n📚 History (%d points):\n", s.History.Count))
		b.WriteString(fmt.Sprintf("   Mean: $%.2f | Std Dev: $%.2f\n", s.History.Mean, s.History.StdDev))
		b.WriteString(fmt.Sprintf("   Min:  $%.2f | Max: $%.2f | Range: $%.2f\n", s.History.Min, s.History.Max, s.History.Range))
	}

	for _, h := range []*Horizon{s.Short, s.Full} {
		if h == nil {
			continue
		}
		b.WriteString(fmt.Sprintf("\n📈 %s (%s):\n", h.Title, FormatDate(h.Scenarios.Date)))
		b.WriteString(fmt.Sprintf("   Expected:    $%.2f\n", h.Scenarios.Expected.Price))
		b.WriteString(fmt.Sprintf("   Optimistic:  $%.2f\n", h.Scenarios.Optimistic.Price))
		b.WriteString(fmt.Sprintf("   Pessimistic: $%.2f\n", h.Scenarios.Pessimistic.Price))
		if h.HasChange {
			b.WriteString(fmt.Sprintf("   Change: %+.2f%%\n", h.ChangePct))
		}
		b.WriteString(fmt.Sprintf("   Confidence: %s (range %.1f%% of price)\n", h.Confidence.Label, h.Confidence.RangePct))
	}

	if s.Optimal != nil {
		b.WriteString(fmt.Sprintf("\n🎯 Optimal Sell Date: %s\n", FormatDate(s.Optimal.Date)))
		b.WriteString(fmt.Sprintf("   Expected Price: $%.2f\n", s.Optimal.Expected))
		b.WriteString(fmt.Sprintf("   Range: $%.2f - $%.2f\n", s.Optimal.Pessimistic, s.Optimal.Optimistic))
		b.WriteString(fmt.Sprintf("   Days from now: %d\n", s.Optimal.DaysFromNow))
	}

	if s.Volatility != nil {
		b.WriteString(fmt.Sprintf("\n📊 Volatility (%d-day):\n", s.Volatility.Window))
		b.WriteString(fmt.Sprintf("   Std Dev: $%.2f\n", s.Volatility.StdDev))
		b.WriteString(fmt.Sprintf("   Avg Confidence Range: $%.2f\n", s.Volatility.AvgBandWidth))
	}

	if len(s.Notes) > 0 {
		b.WriteString("\n⚠️ Unavailable:\n")
		for _, n := range s.Notes {
			b.WriteString("   " + n + "\n")
		}
	}

	b.WriteString("\n" + rule + "\n")
	return b.String()
}
