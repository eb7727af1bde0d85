package strategy

import (
	"math"
	"testing"
)

func TestMapTier_AllBoundaries(t *testing.T) {
	tests := []struct {
		pct   float64
		level Level
	}{
		{0, LevelHigh},
		{14.99, LevelHigh},
		{15, LevelModerate},
		{29.99, LevelModerate},
		{30, LevelLow},
		{120, LevelLow},
		{-5, LevelLow},
		{math.NaN(), LevelLow},
		{math.Inf(1), LevelLow},
	}
	for _, tt := range tests {
		got := mapTier(tt.pct)
		if got.Level != tt.level {
			t.Errorf("mapTier(%.2f) = %s, want %s", tt.pct, got.Level, tt.level)
		}
	}
}

func TestAssess(t *testing.T) {
	c := Assess(12, 100)
	if c.Level != LevelHigh {
		t.Errorf("expected high confidence, got %s", c.Level)
	}
	if c.RangePct != 12 {
		t.Errorf("expected range 12%%, got %.2f", c.RangePct)
	}

	c = Assess(25, 100)
	if c.Level != LevelModerate {
		t.Errorf("expected moderate confidence, got %s", c.Level)
	}

	c = Assess(10, 0)
	if c.Level != LevelLow {
		t.Errorf("zero expected price should grade low, got %s", c.Level)
	}
	if c.Label == "" || c.Advice == "" {
		t.Error("expected label and advice on every tier")
	}
}
