package earnings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "earnings_records_total",
			Help: "Total number of earnings records written",
		},
		[]string{"kind"},
	)

	SettledCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "earnings_settled_cents_total",
			Help: "Total amount of settled driver earnings in cents",
		},
	)
)
