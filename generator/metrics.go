package generator

import "github.com/prometheus/client_golang/prometheus"

var (
	recordsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "demand_generator_records_total",
		Help: "Total demand records emitted",
	}, []string{"area_type"})
	tripsSum = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "demand_generator_trips_sum",
		Help: "Sum of observed trip counts",
	})
	lastEmit = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "demand_generator_last_emit_timestamp_seconds",
		Help: "Last emission time",
	})
	emitErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "demand_generator_emit_errors_total",
		Help: "Errors while emitting observations",
	})
	intervalHist = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "demand_generator_interval_seconds",
		Help:    "Interval between emissions",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})
)

func init() {
	prometheus.MustRegister(recordsTotal, tripsSum, lastEmit, emitErrors, intervalHist)
}
