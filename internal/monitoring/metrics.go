// Package monitoring exposes Prometheus metrics for forecast runs.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "price_outlook"

// Run statuses used as the status label.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RunsTotal            *prometheus.CounterVec
	RowsDropped          *prometheus.CounterVec
	OptimalExpectedPrice *prometheus.GaugeVec
	ForecastSpread       *prometheus.GaugeVec
	RunDuration          *prometheus.HistogramVec
	LastSuccessfulRun    *prometheus.GaugeVec
}

// NewMetrics creates the metric set and registers it on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Forecast pipeline runs by outcome",
		}, []string{"symbol", "status"}),
		RowsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Raw rows dropped during normalization",
		}, []string{"symbol"}),
		OptimalExpectedPrice: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "optimal_expected_price",
			Help:      "Expected price at the optimal exit date of the latest run",
		}, []string{"symbol"}),
		ForecastSpread: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "forecast_spread",
			Help:      "Uncertainty band width at the end of the forecast horizon",
		}, []string{"symbol"}),
		RunDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of forecast pipeline runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"symbol"}),
		LastSuccessfulRun: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_successful_run_timestamp_seconds",
			Help:      "Unix time of the last successful run",
		}, []string{"symbol"}),
	}
}

// ObserveRun records the outcome and duration of one run.
func (m *Metrics) ObserveRun(symbol, status string, took time.Duration, finishedAt time.Time) {
	m.RunsTotal.WithLabelValues(symbol, status).Inc()
	m.RunDuration.WithLabelValues(symbol).Observe(took.Seconds())
	if status == StatusOK {
		m.LastSuccessfulRun.WithLabelValues(symbol).Set(float64(finishedAt.Unix()))
	}
}

// AddDroppedRows counts rows lost to de-duplication or normalization.
func (m *Metrics) AddDroppedRows(symbol string, n int) {
	if n > 0 {
		m.RowsDropped.WithLabelValues(symbol).Add(float64(n))
	}
}

// SetOptimal publishes the optimal expected price.
func (m *Metrics) SetOptimal(symbol string, price float64) {
	m.OptimalExpectedPrice.WithLabelValues(symbol).Set(price)
}

// SetSpread publishes the band width at the horizon end.
func (m *Metrics) SetSpread(symbol string, spread float64) {
	m.ForecastSpread.WithLabelValues(symbol).Set(spread)
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
