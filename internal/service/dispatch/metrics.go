package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DispatchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dispatch_attempts_total",
			Help: "Total number of dispatch attempts by result",
		},
		[]string{"result"},
	)

	DispatchClaimConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dispatch_claim_conflicts_total",
			Help: "Total number of claims that did not apply",
		},
	)

	DispatchCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_candidates",
			Help:    "Number of eligible couriers per dispatch attempt",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	DispatchWinningScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_winning_score",
			Help:    "Score of the courier that received the order",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

const (
	resultAssigned    = "assigned"
	resultNoCandidate = "no_candidates"
	resultAllFailed   = "all_claims_failed"
	resultLostRace    = "lost_race"
	resultError       = "error"
)
