// Package metrics holds the Prometheus collectors of the assistant.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "assistant"

// Extraction results.
const (
	ResultMerged = "merged"
	ResultEmpty  = "empty"
	ResultError  = "error"
)

var (
	// RouterDecisions counts routed utterances by intent and whether the default was used.
	RouterDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "router_decisions_total",
			Help:      "Routed utterances by selected intent",
		},
		[]string{"intent", "fallback"},
	)

	// ExtractionTurns counts schema extraction turns by outcome.
	ExtractionTurns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_turns_total",
			Help:      "Schema extraction turns by result",
		},
		[]string{"schema", "result"},
	)

	// TurnLatency tracks end-to-end turn latency per conversation log backend.
	TurnLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "turn_latency_seconds",
			Help:      "Turn latency in seconds by conversation log backend",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"backend"},
	)

	// LLMCalls tracks provider call latency by provider and outcome.
	LLMCalls = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_call_seconds",
			Help:      "LLM provider call latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "result"},
	)

	// HTTPRequests counts API requests by route and status.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		},
		[]string{"method", "route", "status"},
	)
)

// ObserveRoute records one routing decision.
func ObserveRoute(intent string, fallback bool) {
	RouterDecisions.WithLabelValues(intent, strconv.FormatBool(fallback)).Inc()
}

// ObserveExtraction records one extraction turn.
func ObserveExtraction(schema, result string) {
	ExtractionTurns.WithLabelValues(schema, result).Inc()
}

// ObserveTurn records the latency of one turn.
func ObserveTurn(backend string, d time.Duration) {
	TurnLatency.WithLabelValues(backend).Observe(d.Seconds())
}

// ObserveLLM records one provider call.
func ObserveLLM(provider string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = ResultError
	}
	LLMCalls.WithLabelValues(provider, result).Observe(d.Seconds())
}
