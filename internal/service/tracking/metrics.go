package tracking

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StopTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_stop_transitions_total",
			Help: "Stop status transitions by target status",
		},
		[]string{"status"},
	)

	OrdersCancelledTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_orders_cancelled_total",
			Help: "Cancelled orders by stage",
		},
		[]string{"stage"},
	)
)
