package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service is the Prometheus-backed Metrics implementation.
type Service struct {
	ScorecardSaves        prometheus.Counter
	ScorecardSaveFailures prometheus.Counter
	Finalizes             prometheus.Counter
	Unlocks               prometheus.Counter
	LeaderboardBuilds     prometheus.Counter
	LeaderboardDuration   prometheus.Histogram
	SlackNotifSent        prometheus.Counter
	SlackNotifFailed      prometheus.Counter
	StartupTimeSeconds    prometheus.Gauge
}
