package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Point transactions
	TransactionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_transactions_total",
			Help: "Committed point transactions",
		},
		[]string{"type"}, // charge|use
	)
	TransactionsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_transactions_rejected_total",
			Help: "Point transactions that failed, by type and error kind",
		},
		[]string{"type", "kind"},
	)
	UserLocks = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "point_user_locks",
			Help: "Distinct per-user locks created since start",
		},
	)

	// Event delivery
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "point_events_published_total",
			Help: "Transaction events handed to the broker, by outcome",
		},
		[]string{"outcome"}, // ok|error|dropped
	)
	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

// /metrics endpoint handler
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(TransactionsTotal)
	prometheus.MustRegister(TransactionsRejected)
	prometheus.MustRegister(UserLocks)
	prometheus.MustRegister(EventsPublished)
	prometheus.MustRegister(WorkerQueueDepth)
}
