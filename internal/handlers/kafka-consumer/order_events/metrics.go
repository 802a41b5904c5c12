package order_events

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var processedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "order_events_processed_total",
		Help: "Marketplace order events by event type and outcome",
	},
	[]string{"event", "outcome"},
)
