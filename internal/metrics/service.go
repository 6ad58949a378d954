package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ScorecardSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outing_scorecard_saves_total",
			Help: "The total number of scorecard save batches applied.",
		}),
		ScorecardSaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outing_scorecard_save_failures_total",
			Help: "The total number of scorecard save batches rejected or rolled back.",
		}),
		Finalizes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outing_round_finalizes_total",
			Help: "The total number of rounds finalized.",
		}),
		Unlocks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outing_round_unlocks_total",
			Help: "The total number of finalized rounds unlocked by an administrator.",
		}),
		LeaderboardBuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outing_leaderboard_builds_total",
			Help: "The total number of leaderboard computations.",
		}),
		LeaderboardDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "outing_leaderboard_build_duration_seconds",
			Help:    "The duration of individual leaderboard computations.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outing_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outing_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "outing_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ScorecardSaves,
		s.ScorecardSaveFailures,
		s.Finalizes,
		s.Unlocks,
		s.LeaderboardBuilds,
		s.LeaderboardDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncScorecardSaves() {
	s.ScorecardSaves.Inc()
}

func (s *Service) IncScorecardSaveFailures() {
	s.ScorecardSaveFailures.Inc()
}

func (s *Service) IncFinalizes() {
	s.Finalizes.Inc()
}

func (s *Service) IncUnlocks() {
	s.Unlocks.Inc()
}

func (s *Service) IncLeaderboardBuilds() {
	s.LeaderboardBuilds.Inc()
}

func (s *Service) ObserveLeaderboardBuildDuration(duration float64) {
	s.LeaderboardDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
