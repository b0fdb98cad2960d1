package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	trainingDuration *prometheus.HistogramVec
	modelCache       *prometheus.CounterVec
	lastRMSE         *prometheus.GaugeVec
	forecastsTotal   *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		trainingDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockcast_training_duration_seconds",
				Help:    "Duration of model training runs in seconds",
				Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"symbol"},
		),
		modelCache: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_model_cache_total",
				Help: "Model cache lookups by outcome",
			},
			[]string{"outcome"},
		),
		lastRMSE: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "stockcast_last_rmse",
				Help: "RMSE of the most recent evaluation for a symbol, in price units",
			},
			[]string{"symbol"},
		),
		forecastsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_forecasts_total",
				Help: "Total number of multi-step forecasts produced",
			},
			[]string{"symbol"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockcast_errors_total",
				Help: "Total number of errors by kind",
			},
			[]string{"kind"},
		),
	}
}

// RecordTrainingDuration records one training run's wall time.
func (r *Recorder) RecordTrainingDuration(symbol string, seconds float64) {
	r.trainingDuration.WithLabelValues(symbol).Observe(seconds)
}

// RecordModelCache records a cache hit or miss.
func (r *Recorder) RecordModelCache(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	r.modelCache.WithLabelValues(outcome).Inc()
}

// RecordRMSE records the evaluation RMSE for a symbol.
func (r *Recorder) RecordRMSE(symbol string, rmse float64) {
	r.lastRMSE.WithLabelValues(symbol).Set(rmse)
}

// RecordForecast counts a produced forecast.
func (r *Recorder) RecordForecast(symbol string) {
	r.forecastsTotal.WithLabelValues(symbol).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}
