package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	creditsMoved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_credits_total",
			Help: "Absolute credits moved through the ledger per transaction kind.",
		},
		[]string{"kind"},
	)

	ledgerRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_rejections_total",
			Help: "Ledger operations refused before mutation (insufficient/quota/blocked).",
		},
		[]string{"reason"},
	)
)

func init() { register(creditsMoved, ledgerRejections) }

func AddCreditsMoved(kind string, amount int64) {
	if amount < 0 {
		amount = -amount
	}
	creditsMoved.WithLabelValues(kind).Add(float64(amount))
}

func IncLedgerRejection(reason string) { ledgerRejections.WithLabelValues(reason).Inc() }
