package intake

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var OrdersSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "intake_orders_submitted_total",
		Help: "Submitted orders by result",
	},
	[]string{"result"},
)
