package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	cacheRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_requests_total",
			Help: "Cache lookups by entity and outcome (hit/miss).",
		},
		[]string{"entity", "outcome"},
	)
)

func init() { register(cacheRequests) }

func IncCacheRequest(entity, outcome string) {
	cacheRequests.WithLabelValues(entity, outcome).Inc()
}
