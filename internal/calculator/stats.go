package calculator

import (
	"errors"
	"math"
)

// ErrEmpty is returned when a statistic is requested over no values.
var ErrEmpty = errors.New("no values provided")

// Mean returns the arithmetic mean.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmpty
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// SampleStdDev returns the sample standard deviation (n-1 denominator).
// A single value has zero dispersion.
func SampleStdDev(values []float64) (float64, error) {
	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}
	if len(values) < 2 {
		return 0, nil
	}
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)-1)), nil
}

// MinMax scans values and returns the low and the high.
func MinMax(values []float64) (low, high float64, err error) {
	if len(values) == 0 {
		return 0, 0, ErrEmpty
	}
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, v := range values {
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
	}
	return low, high, nil
}

// PercentChange returns (to-from)/from*100. ok is false when from is zero.
func PercentChange(from, to float64) (pct float64, ok bool) {
	if from == 0 {
		return 0, false
	}
	return (to - from) / from * 100, true
}
