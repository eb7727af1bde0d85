package forecast

import (
	"fmt"
	"math"
	"sort"
	"time"

	"PriceOutlook/internal/model"
)

// Options configures the LinearTrend model.
type Options struct {
	IntervalWidth     float64 // coverage of the uncertainty band, e.g. 0.95
	WeeklySeasonality bool
}

// zScores maps supported interval widths to two-sided normal quantiles.
var zScores = []struct {
	width float64
	z     float64
}{
	{0.80, 1.2816},
	{0.90, 1.6449},
	{0.95, 1.9600},
	{0.99, 2.5758},
}

// LinearTrend fits a least-squares line over day offsets, with an optional
// weekday effect on the residuals. The band widens with the horizon.
type LinearTrend struct {
	opts Options

	trained   bool
	origin    time.Time
	lastDate  time.Time
	history   []time.Time
	intercept float64
	slope     float64
	weekly    [7]float64
	sigma     float64
	n         int
}

// NewLinearTrend creates an untrained model.
func NewLinearTrend(opts Options) *LinearTrend {
	if opts.IntervalWidth <= 0 || opts.IntervalWidth >= 1 {
		opts.IntervalWidth = 0.95
	}
	return &LinearTrend{opts: opts}
}

func (m *LinearTrend) Name() string { return "linear-trend" }

// Train fits the model. At least two points with distinct dates are needed.
func (m *LinearTrend) Train(series *model.CanonicalSeries) error {
	if series.Len() < 2 {
		return fmt.Errorf("forecast: need at least 2 points to train, got %d", series.Len())
	}
	points := make([]model.Point, len(series.Points))
	copy(points, series.Points)
	sort.SliceStable(points, func(i, j int) bool { return points[i].Time.Before(points[j].Time) })

	origin := points[0].Time
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	var sx, sy float64
	for i, p := range points {
		xs[i] = dayOffset(origin, p.Time)
		ys[i] = p.Value
		sx += xs[i]
		sy += ys[i]
	}
	n := float64(len(points))
	mx, my := sx/n, sy/n
	var sxx, sxy float64
	for i := range xs {
		sxx += (xs[i] - mx) * (xs[i] - mx)
		sxy += (xs[i] - mx) * (ys[i] - my)
	}
	if sxx == 0 {
		return fmt.Errorf("forecast: training points share a single date")
	}
	slope := sxy / sxx
	intercept := my - slope*mx

	var weekly [7]float64
	if m.opts.WeeklySeasonality {
		var sums [7]float64
		var counts [7]int
		for i, p := range points {
			wd := p.Time.Weekday()
			sums[wd] += ys[i] - (intercept + slope*xs[i])
			counts[wd]++
		}
		var mean float64
		var days int
		for d := 0; d < 7; d++ {
			if counts[d] > 0 {
				weekly[d] = sums[d] / float64(counts[d])
				mean += weekly[d]
				days++
			}
		}
		if days > 0 {
			mean /= float64(days)
			for d := 0; d < 7; d++ {
				if counts[d] > 0 {
					weekly[d] -= mean
				}
			}
		}
	}

	var ss float64
	for i, p := range points {
		r := ys[i] - (intercept + slope*xs[i] + weekly[p.Time.Weekday()])
		ss += r * r
	}
	dof := len(points) - 2
	if dof < 1 {
		dof = 1
	}

	m.origin = origin
	m.lastDate = points[len(points)-1].Time
	m.history = make([]time.Time, len(points))
	for i, p := range points {
		m.history[i] = p.Time
	}
	m.intercept = intercept
	m.slope = slope
	m.weekly = weekly
	m.sigma = math.Sqrt(ss / float64(dof))
	m.n = len(points)
	m.trained = true
	return nil
}

// Predict returns one record per training date plus periods daily records
// after the last training date.
func (m *LinearTrend) Predict(periods int) (*model.ForecastTable, error) {
	if !m.trained {
		return nil, ErrNotTrained
	}
	if periods < 0 {
		return nil, fmt.Errorf("forecast: periods must not be negative, got %d", periods)
	}

	table := &model.ForecastTable{ComponentNames: []string{model.ComponentTrend}}
	if m.opts.WeeklySeasonality {
		table.ComponentNames = append(table.ComponentNames, model.ComponentWeekly)
	}
	table.Points = make([]model.ForecastPoint, 0, len(m.history)+periods)

	for _, d := range m.history {
		table.Points = append(table.Points, m.point(d, 0))
	}
	for h := 1; h <= periods; h++ {
		table.Points = append(table.Points, m.point(m.lastDate.AddDate(0, 0, h), float64(h)))
	}
	return table, nil
}

func (m *LinearTrend) point(d time.Time, horizon float64) model.ForecastPoint {
	trend := m.intercept + m.slope*dayOffset(m.origin, d)
	components := map[string]float64{model.ComponentTrend: trend}
	expected := trend
	if m.opts.WeeklySeasonality {
		w := m.weekly[d.Weekday()]
		components[model.ComponentWeekly] = w
		expected += w
	}
	half := zFor(m.opts.IntervalWidth) * m.sigma * math.Sqrt(1+horizon/float64(m.n))
	return model.ForecastPoint{
		Date:       d,
		Expected:   expected,
		Lower:      expected - half,
		Upper:      expected + half,
		Components: components,
	}
}

// zFor picks the quantile of the closest supported width.
func zFor(width float64) float64 {
	best := zScores[0]
	for _, s := range zScores[1:] {
		if math.Abs(s.width-width) < math.Abs(best.width-width) {
			best = s
		}
	}
	return best.z
}

func dayOffset(origin, t time.Time) float64 {
	return t.Sub(origin).Hours() / 24
}
