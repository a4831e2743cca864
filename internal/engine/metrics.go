package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderbook",
		Name:      "orders_submitted_total",
		Help:      "Total orders handed to the matching engine.",
	}, []string{"symbol", "side"})

	ordersDropped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderbook",
		Name:      "orders_dropped_total",
		Help:      "Total orders with inadmissible shapes seen at the engine boundary.",
	}, []string{"symbol"})

	cancelsRequested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderbook",
		Name:      "cancels_requested_total",
		Help:      "Total cancel requests, including no-ops on unknown ids.",
	}, []string{"symbol"})

	tradesExecuted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderbook",
		Name:      "trades_executed_total",
		Help:      "Total trades emitted by the matcher.",
	}, []string{"symbol"})

	tradedVolume = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "orderbook",
		Name:      "traded_volume_total",
		Help:      "Total quantity matched across all trades.",
	}, []string{"symbol"})
)
