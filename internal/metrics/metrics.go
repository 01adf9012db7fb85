// Package metrics provides Prometheus metrics for monitoring dataset loading and timeline requests.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "etltimeline_records_loaded",
			Help: "Number of ETL run records held by the dataset",
		},
	)
	DistinctNames = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "etltimeline_distinct_names",
			Help: "Number of distinct ETL names in the dataset",
		},
	)
	LoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "etltimeline_load_duration_seconds",
			Help:    "Time spent loading the dataset from its source",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
		},
		[]string{"source"},
	)
	LoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etltimeline_load_failures_total",
			Help: "Total number of failed dataset loads by error kind",
		},
		[]string{"source", "kind"},
	)
	FilterRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etltimeline_filter_requests_total",
			Help: "Total number of timeline filter requests",
		},
		[]string{"query"},
	)
	FilterResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "etltimeline_filter_result_size",
			Help:    "Number of records returned per filter request",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		},
	)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "etltimeline_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "etltimeline_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

func RecordDatasetLoaded(source string, records, names int, duration time.Duration) {
	RecordsLoaded.Set(float64(records))
	DistinctNames.Set(float64(names))
	LoadDuration.WithLabelValues(source).Observe(duration.Seconds())
}

func RecordLoadFailure(source, kind string) {
	LoadFailures.WithLabelValues(source, kind).Inc()
}

func RecordFilter(hasQuery bool, resultSize int) {
	label := "none"
	if hasQuery {
		label = "text"
	}

	FilterRequests.WithLabelValues(label).Inc()
	FilterResultSize.Observe(float64(resultSize))
}

func RecordHTTPRequest(method, endpoint, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}
