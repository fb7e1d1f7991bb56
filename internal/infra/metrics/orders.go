package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_total",
			Help: "Orders by event (placed/approved/rejected).",
		},
		[]string{"event"},
	)
)

func init() { register(ordersTotal) }

func IncOrder(event string) { ordersTotal.WithLabelValues(event).Inc() }
