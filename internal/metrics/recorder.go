// Package metrics exposes run counters for the idea generator over Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Instrument outcomes
const (
	OutcomeEvaluated   = "evaluated"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeHistory     = "insufficient_history"
	OutcomeLiquidity   = "liquidity"
	OutcomeFailed      = "failed"
)

// Recorder records pipeline metrics on its own registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry    *prometheus.Registry
	runs        *prometheus.CounterVec
	runDuration prometheus.Histogram
	instruments *prometheus.CounterVec
	plans       *prometheus.CounterVec
	ideas       *prometheus.GaugeVec
	regimeScore prometheus.Gauge
}

// New creates a new Prometheus metrics recorder
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideagen_runs_total",
				Help: "Total number of idea generation runs",
			},
			[]string{"status"},
		),
		runDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ideagen_run_duration_seconds",
				Help:    "Duration of idea generation runs in seconds",
				Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
			},
		),
		instruments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideagen_instruments_total",
				Help: "Instruments processed, by outcome",
			},
			[]string{"outcome"},
		),
		plans: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ideagen_plans_admitted_total",
				Help: "Candidate plans admitted, by strategy",
			},
			[]string{"strategy", "horizon"},
		),
		ideas: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ideagen_ideas_emitted",
				Help: "Ideas emitted by the last run, by horizon",
			},
			[]string{"horizon"},
		),
		regimeScore: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "ideagen_market_regime_score",
				Help: "Benchmark regime score of the last run (-4..4)",
			},
		),
	}
}

// Registry returns the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// RecordRun records a finished run
func (r *Recorder) RecordRun(status string, d time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(status).Inc()
	r.runDuration.Observe(d.Seconds())
}

// RecordInstrument records the outcome of one instrument
func (r *Recorder) RecordInstrument(outcome string) {
	if r == nil {
		return
	}
	r.instruments.WithLabelValues(outcome).Inc()
}

// RecordPlan records an admitted candidate plan
func (r *Recorder) RecordPlan(strategy, horizon string) {
	if r == nil {
		return
	}
	r.plans.WithLabelValues(strategy, horizon).Inc()
}

// RecordIdeas records the emitted idea counts
func (r *Recorder) RecordIdeas(short, long int) {
	if r == nil {
		return
	}
	r.ideas.WithLabelValues("short").Set(float64(short))
	r.ideas.WithLabelValues("long").Set(float64(long))
}

// RecordRegime records the benchmark regime score
func (r *Recorder) RecordRegime(score int) {
	if r == nil {
		return
	}
	r.regimeScore.Set(float64(score))
}
