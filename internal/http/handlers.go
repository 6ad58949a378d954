package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/beeropen/scramble/internal/scorecard"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) ClearStoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to clear entire store")
		s.Roster.Clear()
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "Store cleared!")
		log.Info("Store cleared successfully")
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Roster.GetAllPlayers()
		if err != nil {
			http.Error(w, "Failed to get players", http.StatusInternalServerError)
			log.Error("Failed to get players from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) ListTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teams, err := s.Roster.ListTeams()
		if err != nil {
			http.Error(w, "Failed to get teams", http.StatusInternalServerError)
			log.Error("Failed to get teams from store", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, teams)
	}
}

// ViewScorecardHandler serves one team's full card for the event date.
func (s *Server) ViewScorecardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}

		eventDate, err := s.eventDate()
		if err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}

		card, err := s.Scorecard.ViewCard(actorFromContext(r), teamID, eventDate)
		if err != nil {
			s.writeScorecardError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, card)
	}
}

// holeEntryPayload is one hole of a submitted card. Strokes arrive as the
// raw string the caller typed; normalization happens engine-side.
type holeEntryPayload struct {
	Hole          int     `json:"hole"`
	Strokes       string  `json:"strokes"`
	DrivePlayerID *string `json:"drive_player_id"`
}

func (p holeEntryPayload) toEntry() scorecard.HoleEntry {
	return scorecard.HoleEntry{
		Hole:          p.Hole,
		Strokes:       scorecard.ParseStrokes(p.Strokes),
		DrivePlayerID: p.DrivePlayerID,
	}
}

// SaveScorecardHandler applies a full-card batch of hole writes.
func (s *Server) SaveScorecardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			TeamID string             `json:"team_id"`
			Holes  []holeEntryPayload `json:"holes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if payload.TeamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}

		eventDate, err := s.eventDate()
		if err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}

		entries := make([]scorecard.HoleEntry, 0, len(payload.Holes))
		for _, h := range payload.Holes {
			entries = append(entries, h.toEntry())
		}

		result, err := s.Scorecard.SaveCard(actorFromContext(r), payload.TeamID, eventDate, entries)
		if err != nil {
			s.writeScorecardError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// SaveHoleHandler is the sequential one-hole-at-a-time entry path.
func (s *Server) SaveHoleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			TeamID string           `json:"team_id"`
			Entry  holeEntryPayload `json:"entry"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if payload.TeamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}

		eventDate, err := s.eventDate()
		if err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}

		result, err := s.Scorecard.SaveHole(actorFromContext(r), payload.TeamID, eventDate, payload.Entry.toEntry())
		if err != nil {
			s.writeScorecardError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// FinalizeHandler locks a team's card and announces the result.
func (s *Server) FinalizeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}
		actor := actorFromContext(r)

		eventDate, err := s.eventDate()
		if err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}

		err = s.Scorecard.Finalize(actor, teamID, eventDate)
		if errors.Is(err, scorecard.ErrAlreadyFinal) {
			writeJSON(w, http.StatusOK, scorecard.SaveResult{Messages: []scorecard.Message{
				{Level: scorecard.LevelInfo, Text: "Scorecard is already final."},
			}})
			return
		}
		if err != nil {
			s.writeScorecardError(w, err)
			return
		}

		s.announceFinalize(teamID, isDryRunFromContext(r))
		writeJSON(w, http.StatusOK, scorecard.SaveResult{Messages: []scorecard.Message{
			{Level: scorecard.LevelInfo, Text: "Scorecard finalized."},
		}})
	}
}

// announceFinalize posts the turned-in card to Slack. Failures are logged,
// never surfaced: the finalize itself already committed.
func (s *Server) announceFinalize(teamID string, dryRun bool) {
	board, err := s.Leaderboard.Build()
	if err != nil {
		log.Error("Failed to build leaderboard for finalize announcement", "error", err)
		return
	}
	for _, row := range board {
		if row.TeamID == teamID {
			if err := s.Notifier.SendFinalizeNotification(row, dryRun); err != nil {
				log.Error("Failed to announce finalize", "teamID", teamID, "error", err)
			}
			return
		}
	}
}

// UnlockHandler reopens a finalized card. Administrators only.
func (s *Server) UnlockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team_id")
		if teamID == "" {
			http.Error(w, "team_id is required", http.StatusBadRequest)
			return
		}

		eventDate, err := s.eventDate()
		if err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}

		if err := s.Scorecard.Unlock(actorFromContext(r), teamID, eventDate); err != nil {
			s.writeScorecardError(w, err)
			return
		}

		if team, err := s.Roster.GetTeam(teamID); err == nil {
			if err := s.Notifier.SendUnlockNotification(team.Name, isDryRunFromContext(r)); err != nil {
				log.Error("Failed to announce unlock", "teamID", teamID, "error", err)
			}
		}
		writeJSON(w, http.StatusOK, scorecard.SaveResult{Messages: []scorecard.Message{
			{Level: scorecard.LevelInfo, Text: "Scorecard unlocked."},
		}})
	}
}

// LeaderboardHandler serves the ranked standings. When the board is not
// public, only administrators may read it.
func (s *Server) LeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings, err := s.Settings.Load()
		if err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}
		if !settings.LeaderboardPublic && !s.Identity.IsAdministrator(actorFromContext(r)) {
			http.Error(w, "Leaderboard is not public yet", http.StatusForbidden)
			return
		}

		board, err := s.Leaderboard.Build()
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "error", err)
			return
		}
		writeJSON(w, http.StatusOK, board)
	}
}

// AnnounceLeaderboardHandler posts the standings to Slack. Administrators only.
func (s *Server) AnnounceLeaderboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Identity.IsAdministrator(actorFromContext(r)) {
			http.Error(w, "Permission denied", http.StatusForbidden)
			return
		}

		settings, err := s.Settings.Load()
		if err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}
		board, err := s.Leaderboard.Build()
		if err != nil {
			http.Error(w, "Failed to build leaderboard", http.StatusInternalServerError)
			log.Error("Failed to build leaderboard", "error", err)
			return
		}
		if err := s.Notifier.SendLeaderboard(settings.EventName, board, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to post leaderboard", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Leaderboard posted.")
	}
}

// SetVisibilityHandler flips the site-wide leaderboard visibility flag.
func (s *Server) SetVisibilityHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.Identity.IsAdministrator(actorFromContext(r)) {
			http.Error(w, "Permission denied", http.StatusForbidden)
			return
		}

		public := r.URL.Query().Get("public") == "true"
		// Load first so the singleton row exists before the update.
		if _, err := s.Settings.Load(); err != nil {
			http.Error(w, "Failed to load event settings", http.StatusInternalServerError)
			return
		}
		if err := s.Settings.SetLeaderboardPublic(public); err != nil {
			http.Error(w, "Failed to update visibility", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "Leaderboard public: %t", public)
	}
}

func (s *Server) eventDate() (string, error) {
	settings, err := s.Settings.Load()
	if err != nil {
		log.Error("Failed to load event settings", "error", err)
		return "", err
	}
	return settings.EventDate, nil
}

// writeScorecardError maps engine errors onto HTTP statuses.
func (s *Server) writeScorecardError(w http.ResponseWriter, err error) {
	var finErr *scorecard.FinalizeError
	switch {
	case errors.Is(err, scorecard.ErrPermissionDenied):
		http.Error(w, "Permission denied", http.StatusForbidden)
	case errors.Is(err, scorecard.ErrRoundLocked):
		http.Error(w, "Scorecard is locked", http.StatusConflict)
	case errors.Is(err, scorecard.ErrNotFinal):
		http.Error(w, "Scorecard is not final", http.StatusConflict)
	case errors.As(err, &finErr):
		writeJSON(w, http.StatusUnprocessableEntity, finErr)
	default:
		log.Error("Scorecard operation failed", "error", err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}
