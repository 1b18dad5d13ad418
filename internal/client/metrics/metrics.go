// Package metrics collects prometheus metrics for outbound GraphQL traffic.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels.
const (
	OutcomeOK           = "ok"
	OutcomeNetworkError = "network_error"
	OutcomeGraphQLError = "graphql_error"
)

// Recorder is what the GraphQL client reports to.
type Recorder interface {
	RecordOperation(operation string, outcome string, latency time.Duration)
	RecordRefetch(operation string, ok bool)
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordOperation(string, string, time.Duration) {}
func (Nop) RecordRefetch(string, bool)                    {}

type Collector struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	refetches  *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophsocial_graphql_operations_total",
			Help: "GraphQL operations sent, by operation name and outcome.",
		}, []string{"operation", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gophsocial_graphql_latency_seconds",
			Help:    "Round-trip latency of GraphQL operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		refetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gophsocial_graphql_refetches_total",
			Help: "Queries re-run after a mutation, by result.",
		}, []string{"operation", "result"}),
	}

	reg.MustRegister(c.operations, c.latency, c.refetches)
	return c
}

func (c *Collector) RecordOperation(operation string, outcome string, latency time.Duration) {
	c.operations.WithLabelValues(operation, outcome).Inc()
	c.latency.WithLabelValues(operation).Observe(latency.Seconds())
}

func (c *Collector) RecordRefetch(operation string, ok bool) {
	result := "ok"
	if !ok {
		result = "failed"
	}
	c.refetches.WithLabelValues(operation, result).Inc()
}

// Handler serves /metrics for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return mux
}
