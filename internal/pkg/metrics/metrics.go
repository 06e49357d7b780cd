package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auction_http_request_duration_seconds",
		Help:    "Request latency",
		Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	}, []string{"method", "route"})

	// Outcomes of Create, Purchase, Cancel and Expire by result label.
	Operations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_operations_total",
		Help: "Transaction workflow outcomes",
	}, []string{"operation", "outcome"})

	Compensations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_compensations_total",
		Help: "Buyer refunds after a failed seller payout",
	}, []string{"result"})

	ReconciliationEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_reconciliation_events_total",
		Help: "Events escalated for manual reconciliation",
	}, []string{"kind"})

	LockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "auction_lock_wait_seconds",
		Help:    "Time spent waiting for a per-listing lock",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
	})

	SweepDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "auction_sweep_duration_seconds",
		Help:    "Duration of one expiry sweep tick",
		Buckets: prometheus.DefBuckets,
	})

	SweepItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_sweep_items_total",
		Help: "Listings handled by the expiry sweeper",
	}, []string{"result"})
)
