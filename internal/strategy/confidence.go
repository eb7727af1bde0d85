package strategy

import "math"

// Level grades how much the forecast band can be trusted.
type Level string

const (
	LevelHigh     Level = "high"
	LevelModerate Level = "moderate"
	LevelLow      Level = "low"
)

// Confidence is the qualitative reading of a band width relative to price.
type Confidence struct {
	Level    Level
	Label    string
	Advice   string
	RangePct float64
}

// Tiers maps the band width, as a percentage of the expected price, to a
// confidence level. The first tier whose MaxPct exceeds the value wins.
var Tiers = []struct {
	MaxPct float64
	Tier   Confidence
}{
	{15, Confidence{Level: LevelHigh, Label: "🟢 Excellent", Advice: "High confidence. A narrow range signals a predictable series."}},
	{30, Confidence{Level: LevelModerate, Label: "🟡 Moderate", Advice: "Medium confidence. A moderate range is normal over a medium horizon."}},
}

// DefaultTier applies at 30% and above, and whenever the ratio is undefined.
var DefaultTier = Confidence{Level: LevelLow, Label: "🔴 Wide", Advice: "Low confidence. A wide range signals high uncertainty."}

func mapTier(rangePct float64) Confidence {
	if !math.IsNaN(rangePct) && !math.IsInf(rangePct, 0) && rangePct >= 0 {
		for _, t := range Tiers {
			if rangePct < t.MaxPct {
				return t.Tier
			}
		}
	}
	return DefaultTier
}

// Assess grades a spread around an expected price.
func Assess(spread, expected float64) Confidence {
	pct := spread / expected * 100
	c := mapTier(pct)
	c.RangePct = pct
	return c
}
