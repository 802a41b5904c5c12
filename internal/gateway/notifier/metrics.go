package notifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notifier_events_published_total",
		Help: "Published state transition events by type and result",
	},
	[]string{"type", "result"},
)
