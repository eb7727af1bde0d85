package analysis

import (
	"time"

	"PriceOutlook/internal/model"
)

// Nominal probability mass of each scenario, reading the bounds as the ends
// of a 95% interval.
const (
	ProbabilityOptimistic  = 0.025
	ProbabilityExpected    = 0.50
	ProbabilityPessimistic = 0.025
)

// ScenariosAt reads the record dated exactly target. A zero target selects
// the last valid date of the forecast.
func ScenariosAt(f *model.ForecastTable, target time.Time) (*model.ScenarioSet, error) {
	if f.Len() == 0 {
		return nil, ErrEmptyForecast
	}
	if target.IsZero() {
		maxDate, ok := f.MaxDate()
		if !ok {
			return nil, ErrNoValidDates
		}
		target = maxDate
	}

	for _, p := range f.Points {
		if p.Date.IsZero() || !p.Date.Equal(target) {
			continue
		}
		return newScenarioSet(p), nil
	}
	return nil, &LookupError{Date: target}
}

func newScenarioSet(p model.ForecastPoint) *model.ScenarioSet {
	spread := p.Upper - p.Lower
	return &model.ScenarioSet{
		Date: p.Date,
		Optimistic: model.Scenario{
			Price:       p.Upper,
			Probability: ProbabilityOptimistic,
			Description: "Best case scenario (97.5th percentile)",
		},
		Expected: model.Scenario{
			Price:       p.Expected,
			Probability: ProbabilityExpected,
			Description: "Most likely outcome",
		},
		Pessimistic: model.Scenario{
			Price:       p.Lower,
			Probability: ProbabilityPessimistic,
			Description: "Worst case scenario (2.5th percentile)",
		},
		Spread:                 spread,
		RelativeUncertaintyPct: spread / p.Expected * 100,
	}
}
