// Package metrics provides Prometheus metrics for mapai: province detection
// outcomes, chat traffic, assistant latency, and region cache freshness.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Resolver ───────────────────────────────────────────────────────────────

// DetectionsTotal counts resolver outcomes by result kind (none, matched,
// ambiguous).
var DetectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mapai",
	Name:      "detections_total",
	Help:      "Total province detections by outcome.",
}, []string{"result"})

// ─── Chat ───────────────────────────────────────────────────────────────────

// ChatRequests counts chat sends by outcome (answered, disambiguation,
// error).
var ChatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "mapai",
	Name:      "chat_requests_total",
	Help:      "Total chat messages processed by outcome.",
}, []string{"outcome"})

// AssistantLatency tracks round-trip time to the conversational backend.
var AssistantLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "mapai",
	Name:      "assistant_latency_seconds",
	Help:      "Latency of upstream assistant calls in seconds.",
	Buckets:   prometheus.DefBuckets,
})

// SessionsCreated counts new chat sessions.
var SessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "mapai",
	Name:      "sessions_created_total",
	Help:      "Total chat sessions created.",
})

// ─── Region catalog ─────────────────────────────────────────────────────────

// RegionsCached reports how many region records the local cache holds.
var RegionsCached = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "mapai",
	Name:      "regions_cached",
	Help:      "Region records currently cached from the upstream catalog.",
})
