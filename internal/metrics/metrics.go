package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Play pipeline metrics. Outcome is one of won, lost, denied.
var (
	PlaysTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wheelplay_plays_total",
		Help: "Total play attempts by outcome.",
	}, []string{"outcome"})

	PlayDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wheelplay_play_duration_seconds",
		Help:    "End-to-end duration of the play pipeline.",
		Buckets: prometheus.DefBuckets,
	})

	RewardsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wheelplay_rewards_issued_total",
		Help: "Reward codes issued to winning plays.",
	})

	RewardsRedeemed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wheelplay_rewards_redeemed_total",
		Help: "Reward codes redeemed by staff.",
	})
)

// RecordPlay records one finished play attempt.
func RecordPlay(outcome string, seconds float64) {
	PlaysTotal.WithLabelValues(outcome).Inc()
	PlayDuration.Observe(seconds)
}
