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

type Server struct {
	Roster         roster.Store
	Scorecard      *scorecard.Engine
	Leaderboard    *leaderboard.Engine
	Settings       event.SettingsStore
	Identity       auth.Identity
	Notifier       notifier.Notifier
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux
}
