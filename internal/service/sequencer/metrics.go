package sequencer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SequencedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sequencer_routes_total",
			Help: "Routes sequenced, by outcome",
		},
		[]string{"outcome"},
	)

	SequenceDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sequencer_duration_seconds",
			Help:    "Time spent sequencing a route including distance lookups",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
	)
)
