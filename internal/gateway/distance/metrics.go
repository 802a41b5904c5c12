package distance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RetriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "distance_retries_total",
			Help: "Total number of distance lookups that needed a retry",
		},
		[]string{"result"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "distance_request_duration_seconds",
			Help:    "Duration of distance lookups including retries",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"result"},
	)

	FallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "distance_fallbacks_total",
			Help: "Total number of lookups answered with the default distance",
		},
	)

	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "distance_cache_requests_total",
			Help: "Distance cache lookups by result",
		},
		[]string{"result"},
	)
)
