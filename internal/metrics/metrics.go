// Package metrics registers lockdrop's Prometheus collectors. The panel
// listener serves them at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestMessages counts processed envelopes by declared type and outcome
	// (stored, logged, reported, error).
	IngestMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lockdrop",
		Subsystem: "ingest",
		Name:      "messages_total",
		Help:      "Envelopes processed, by message type and outcome.",
	}, []string{"type", "outcome"})

	// EncryptSeconds observes chunked-cipher encryption latency.
	EncryptSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lockdrop",
		Subsystem: "cipher",
		Name:      "encrypt_duration_seconds",
		Help:      "Time spent chunk-encrypting one payload.",
		Buckets:   prometheus.DefBuckets,
	})

	// HTTPRequests counts requests by route and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lockdrop",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route and status code.",
	}, []string{"route", "code"})

	// RateLimited counts ingest requests rejected by the per-source limiter.
	RateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "lockdrop",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Ingest requests rejected by the rate limiter.",
	})
)
