package builder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SweepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "builder_sweep_duration_seconds",
			Help:    "Duration of route building sweeps",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"mode"},
	)

	RoutesOpenedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_routes_opened_total",
			Help: "Total number of routes opened by the builder",
		},
	)

	StopsDeferredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "builder_stops_deferred_total",
			Help: "Total number of stops moved to a later window",
		},
	)
)
