package localnet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rpcRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "localnet",
			Name:      "rpc_requests_total",
			Help:      "Total JSON-RPC requests handled.",
		},
		[]string{"method", "outcome"}, // outcome: "ok" or the JSON-RPC error code
	)

	rpcRequestDurationHist = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "localnet",
			Name:      "rpc_request_duration_seconds",
			Help:      "Duration of JSON-RPC requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	transactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "localnet",
			Name:      "transactions_total",
			Help:      "Transactions submitted, by result.",
		},
		[]string{"result"},
	)

	slotGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "localnet",
		Name:      "slot",
		Help:      "Current slot.",
	})
)
