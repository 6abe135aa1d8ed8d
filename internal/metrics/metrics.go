// Package metrics defines the Prometheus collectors of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExportsTotal counts rendered exports by format (csv, xlsx).
	ExportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moneybalance",
		Name:      "exports_total",
		Help:      "Number of calculation exports rendered, by format.",
	}, []string{"format"})

	// SettlementsTotal counts settlement computations.
	SettlementsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "moneybalance",
		Name:      "settlements_total",
		Help:      "Number of settlements computed.",
	})

	// RPCRequestsTotal counts RPC calls by procedure and result code.
	RPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "moneybalance",
		Name:      "rpc_requests_total",
		Help:      "Number of RPC calls, by procedure and code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes RPC latency by procedure.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "moneybalance",
		Name:      "rpc_duration_seconds",
		Help:      "RPC latency, by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})
)
