package gamemetrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "dartstats"

type prometheusMetrics struct {
	attempts       *prometheus.CounterVec
	successes      *prometheus.CounterVec
	failures       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	gamesRecorded  *prometheus.CounterVec
	playersPerGame prometheus.Histogram
	playersRanked  prometheus.Histogram
}

// NewPrometheus registers the game collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (GameMetrics, error) {
	m := &prometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"operation", "service"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "operation_success_total",
			Help:      "Service operations that completed successfully.",
		}, []string{"operation", "service"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "operation_failures_total",
			Help:      "Service operations that failed.",
		}, []string{"operation", "service"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
		gamesRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "recorded_total",
			Help:      "Games persisted, by game mode.",
		}, []string{"game_mode"}),
		playersPerGame: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "game",
			Name:      "players_per_game",
			Help:      "Players in each recorded game.",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		}),
		playersRanked: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "ranking",
			Name:      "players",
			Help:      "Players in each computed ranking.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
	}

	for _, c := range []prometheus.Collector{
		m.attempts, m.successes, m.failures, m.duration,
		m.gamesRecorded, m.playersPerGame, m.playersRanked,
	} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register game metrics: %w", err)
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

func (m *prometheusMetrics) RecordGameRecorded(_ context.Context, gameMode string, players int) {
	m.gamesRecorded.WithLabelValues(gameMode).Inc()
	m.playersPerGame.Observe(float64(players))
}

func (m *prometheusMetrics) RecordPlayersRanked(_ context.Context, players int) {
	m.playersRanked.Observe(float64(players))
}
