// Package services – domain metrics
//
// This file exposes Prometheus counters for the analysis pipeline. HTTP
// traffic is measured by the middleware layer; these counters track what the
// business logic actually did, independent of transport:
//
//   - outcome: one bounded bucket per terminal state of GetOrCreate
//     (cache_hit, generated, lock_conflict, limit_exceeded, timeout,
//     upstream_rate_limited, upstream_quota, upstream_auth, vpn_blocked,
//     empty, persist_failed, error)
//
// The outcome set is closed and small, so cardinality stays bounded.
package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// analysisOutcomes counts analysis requests by terminal outcome.
	analysisOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_generations_total",
			Help: "Total number of analysis requests by outcome.",
		},
		[]string{"outcome"},
	)

	// agentRuns counts agent run requests by terminal outcome.
	agentRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agent_runs_total",
			Help: "Total number of agent run requests by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(analysisOutcomes, agentRuns)
}

func observeGeneration(outcome string) {
	analysisOutcomes.WithLabelValues(outcome).Inc()
}

func observeAgentRun(outcome string) {
	agentRuns.WithLabelValues(outcome).Inc()
}
