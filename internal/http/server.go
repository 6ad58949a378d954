package http

import (
	"net/http"

	"github.com/beeropen/scramble/internal/auth"
	"github.com/beeropen/scramble/internal/config"
	"github.com/beeropen/scramble/internal/event"
	"github.com/beeropen/scramble/internal/leaderboard"
	"github.com/beeropen/scramble/internal/metrics"
	"github.com/beeropen/scramble/internal/notifier"
	"github.com/beeropen/scramble/internal/roster"
	"github.com/beeropen/scramble/internal/scorecard"
)

func NewServer(
	rosterStore roster.Store,
	scorecardEngine *scorecard.Engine,
	leaderboardEngine *leaderboard.Engine,
	settings event.SettingsStore,
	identity auth.Identity,
	notifier notifier.Notifier,
	metricsSvc metrics.Metrics,
	metricsHandler http.Handler,
	cfg config.Config,
) *Server {
	server := &Server{
		Roster:         rosterStore,
		Scorecard:      scorecardEngine,
		Leaderboard:    leaderboardEngine,
		Settings:       settings,
		Identity:       identity,
		Notifier:       notifier,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/clear", Chain(s.ClearStoreHandler(), paramsMiddleware))
	s.Router.Handle("/players", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("/teams", Chain(s.ListTeamsHandler(), paramsMiddleware))
	s.Router.Handle("/scorecard", Chain(s.ViewScorecardHandler(), paramsMiddleware))
	s.Router.Handle("/scorecard/save", Chain(s.SaveScorecardHandler(), paramsMiddleware))
	s.Router.Handle("/scorecard/hole", Chain(s.SaveHoleHandler(), paramsMiddleware))
	s.Router.Handle("/scorecard/finalize", Chain(s.FinalizeHandler(), paramsMiddleware))
	s.Router.Handle("/scorecard/unlock", Chain(s.UnlockHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/leaderboard/announce", Chain(s.AnnounceLeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("/settings/visibility", Chain(s.SetVisibilityHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
