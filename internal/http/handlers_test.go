package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beeropen/scramble/internal/auth"
	"github.com/beeropen/scramble/internal/config"
	"github.com/beeropen/scramble/internal/course"
	"github.com/beeropen/scramble/internal/database"
	"github.com/beeropen/scramble/internal/event"
	"github.com/beeropen/scramble/internal/leaderboard"
	"github.com/beeropen/scramble/internal/metrics"
	"github.com/beeropen/scramble/internal/notifier"
	"github.com/beeropen/scramble/internal/roster"
	"github.com/beeropen/scramble/internal/scorecard"
)

const testEventDate = "2026-06-20"

// setupTestServer initializes a new server over a test database with a
// seeded roster: team "eagles" with scorer "p1", plain member "p2", and a
// global admin "admin".
func setupTestServer(t *testing.T, n notifier.Notifier) (*Server, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	rosterStore := roster.New(db)
	require.NoError(t, rosterStore.UpsertPlayer(roster.PlayerInfo{ID: "p1", FirstName: "Al", LastName: "Czervik", CanScore: true}))
	require.NoError(t, rosterStore.UpsertPlayer(roster.PlayerInfo{ID: "p2", FirstName: "Ty", LastName: "Webb"}))
	require.NoError(t, rosterStore.UpsertPlayer(roster.PlayerInfo{ID: "admin", FirstName: "Judge", LastName: "Smails", IsAdmin: true}))
	require.NoError(t, rosterStore.CreateTeam("eagles", "Eagles"))
	require.NoError(t, rosterStore.AddPlayerToTeam("eagles", "p1"))
	require.NoError(t, rosterStore.AddPlayerToTeam("eagles", "p2"))

	courseStore := course.New(db)
	for h := 1; h <= 18; h++ {
		require.NoError(t, courseStore.SetLegacyPar(h, 4))
	}

	settings := event.New(db, "Beer Open", testEventDate)
	identity := auth.New(db)

	reg := prometheus.NewRegistry()
	metricsSvc := metrics.NewService(reg)
	metricsHandler := metrics.NewMetricsHandler(reg)

	scorecardEngine := scorecard.NewEngine(scorecard.New(db), rosterStore, identity, metricsSvc)
	leaderboardEngine := leaderboard.NewEngine(leaderboard.New(db), courseStore, settings, metricsSvc)

	server := NewServer(rosterStore, scorecardEngine, leaderboardEngine, settings, identity, n, metricsSvc, metricsHandler, config.Config{})

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return server, teardown
}

// doRequest runs a request through the router as the given actor.
func doRequest(server *Server, method, target, actor string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, reqBody)
	if actor != "" {
		req.Header.Set("X-Actor-ID", actor)
	}
	rr := httptest.NewRecorder()
	server.Router.ServeHTTP(rr, req)
	return rr
}

type savePayload struct {
	TeamID string        `json:"team_id"`
	Holes  []holePayload `json:"holes"`
}

type holePayload struct {
	Hole          int     `json:"hole"`
	Strokes       string  `json:"strokes"`
	DrivePlayerID *string `json:"drive_player_id"`
}

func strPtr(s string) *string { return &s }

func TestHealthCheckHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doRequest(server, "GET", "/health", "", nil)

	assert.Equal(t, http.StatusOK, rr.Code, "handler returned wrong status code")
	assert.Equal(t, "OK!", rr.Body.String(), "handler returned unexpected body")
}

func TestListTeamsHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doRequest(server, "GET", "/teams", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var teams []roster.TeamInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &teams))
	require.Len(t, teams, 1)
	assert.Equal(t, "Eagles", teams[0].Name)
	assert.Len(t, teams[0].Players, 2)
}

func TestViewScorecardHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	t.Run("requires team_id", func(t *testing.T) {
		rr := doRequest(server, "GET", "/scorecard", "p1", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("rejects non-members", func(t *testing.T) {
		rr := doRequest(server, "GET", "/scorecard?team_id=eagles", "stranger", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("serves the card to members", func(t *testing.T) {
		rr := doRequest(server, "GET", "/scorecard?team_id=eagles", "p2", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var card scorecard.Card
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &card))
		assert.Len(t, card.Holes, 18)
		assert.False(t, card.CanEdit, "a plain member cannot edit")
	})
}

func TestSaveScorecardHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	payload := savePayload{
		TeamID: "eagles",
		Holes: []holePayload{
			{Hole: 1, Strokes: "4", DrivePlayerID: strPtr("p1")},
			{Hole: 2, Strokes: "not-a-number", DrivePlayerID: strPtr("p2")},
		},
	}

	t.Run("member without scoring capability is rejected", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/save", "p2", payload)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("scorer saves and malformed strokes are cleared", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/save", "p1", payload)
		require.Equal(t, http.StatusOK, rr.Code)

		view := doRequest(server, "GET", "/scorecard?team_id=eagles", "p1", nil)
		var card scorecard.Card
		require.NoError(t, json.Unmarshal(view.Body.Bytes(), &card))
		require.NotNil(t, card.Holes[0].Strokes)
		assert.Equal(t, 4, *card.Holes[0].Strokes)
		// The typo on hole 2 cleared the strokes but kept the drive.
		assert.Nil(t, card.Holes[1].Strokes)
		require.NotNil(t, card.Holes[1].DrivePlayerID)
		assert.Equal(t, "p2", *card.Holes[1].DrivePlayerID)
	})

	t.Run("invalid drive player surfaces a per-hole error", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/save", "p1", savePayload{
			TeamID: "eagles",
			Holes:  []holePayload{{Hole: 3, Strokes: "5", DrivePlayerID: strPtr("ghost")}},
		})
		require.Equal(t, http.StatusOK, rr.Code)

		var result scorecard.SaveResult
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
		require.Len(t, result.Messages, 1)
		assert.Equal(t, scorecard.LevelError, result.Messages[0].Level)
	})
}

func TestSaveHoleHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	body := map[string]any{
		"team_id": "eagles",
		"entry":   holePayload{Hole: 1, Strokes: "4"},
	}
	rr := doRequest(server, "POST", "/scorecard/hole", "p1", body)
	require.Equal(t, http.StatusOK, rr.Code)

	var result scorecard.HoleSaveResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	// Sequential mode refuses strokes without a drive.
	require.Len(t, result.Messages, 1)
	assert.Equal(t, scorecard.LevelError, result.Messages[0].Level)
	assert.Equal(t, 1, result.NextHole)

	body["entry"] = holePayload{Hole: 1, Strokes: "4", DrivePlayerID: strPtr("p1")}
	rr = doRequest(server, "POST", "/scorecard/hole", "p1", body)
	require.Equal(t, http.StatusOK, rr.Code)
	// Reset so fields omitted from this response don't carry over from the
	// previous decode.
	result = scorecard.HoleSaveResult{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Empty(t, result.Messages)
	assert.Equal(t, 2, result.NextHole)
}

// fillCard enters a complete, drive-covered round for the team.
func fillCard(t *testing.T, server *Server) {
	t.Helper()
	payload := savePayload{TeamID: "eagles"}
	for h := 1; h <= 18; h++ {
		driver := "p1"
		if h%2 == 0 {
			driver = "p2"
		}
		payload.Holes = append(payload.Holes, holePayload{Hole: h, Strokes: "4", DrivePlayerID: strPtr(driver)})
	}
	rr := doRequest(server, "POST", "/scorecard/save", "p1", payload)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestFinalizeHandler(t *testing.T) {
	mock := notifier.NewMock()
	server, teardown := setupTestServer(t, mock)
	defer teardown()

	t.Run("incomplete card is rejected with details", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/finalize?team_id=eagles", "p1", nil)
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		var finErr scorecard.FinalizeError
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &finErr))
		assert.Len(t, finErr.MissingHoles, 18)
		assert.Empty(t, mock.FinalizeCalls)
	})

	t.Run("complete card finalizes and announces", func(t *testing.T) {
		fillCard(t, server)

		rr := doRequest(server, "POST", "/scorecard/finalize?team_id=eagles", "p1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		require.Len(t, mock.FinalizeCalls, 1)
		assert.Equal(t, "Eagles", mock.FinalizeCalls[0].TeamName)

		// Writes are now rejected.
		rr = doRequest(server, "POST", "/scorecard/save", "p1", savePayload{
			TeamID: "eagles",
			Holes:  []holePayload{{Hole: 1, Strokes: "3", DrivePlayerID: strPtr("p1")}},
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("re-finalize is a reported no-op", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/finalize?team_id=eagles", "p1", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "already final")
		assert.Len(t, mock.FinalizeCalls, 1, "no second announcement")
	})
}

func TestUnlockHandler(t *testing.T) {
	mock := notifier.NewMock()
	server, teardown := setupTestServer(t, mock)
	defer teardown()

	fillCard(t, server)
	rr := doRequest(server, "POST", "/scorecard/finalize?team_id=eagles", "p1", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	t.Run("scorer cannot unlock", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/unlock?team_id=eagles", "p1", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin unlocks and editing resumes", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/unlock?team_id=eagles", "admin", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []string{"Eagles"}, mock.UnlockCalls)

		save := doRequest(server, "POST", "/scorecard/save", "p1", savePayload{
			TeamID: "eagles",
			Holes:  []holePayload{{Hole: 1, Strokes: "3", DrivePlayerID: strPtr("p1")}},
		})
		assert.Equal(t, http.StatusOK, save.Code)
	})

	t.Run("unlocking an open card conflicts", func(t *testing.T) {
		rr := doRequest(server, "POST", "/scorecard/unlock?team_id=eagles", "admin", nil)
		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestLeaderboardHandlerVisibilityGate(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	t.Run("hidden from non-admins by default", func(t *testing.T) {
		rr := doRequest(server, "GET", "/leaderboard", "p1", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admins always see it", func(t *testing.T) {
		rr := doRequest(server, "GET", "/leaderboard", "admin", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var board []leaderboard.Row
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &board))
		require.Len(t, board, 1)
		assert.Equal(t, "Eagles", board[0].TeamName)
	})

	t.Run("flipping visibility opens it up", func(t *testing.T) {
		rr := doRequest(server, "POST", "/settings/visibility?public=true", "p1", nil)
		assert.Equal(t, http.StatusForbidden, rr.Code, "only admins flip visibility")

		rr = doRequest(server, "POST", "/settings/visibility?public=true", "admin", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		rr = doRequest(server, "GET", "/leaderboard", "p1", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestAnnounceLeaderboardHandler(t *testing.T) {
	mock := notifier.NewMock()
	server, teardown := setupTestServer(t, mock)
	defer teardown()

	rr := doRequest(server, "POST", "/leaderboard/announce", "p1", nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = doRequest(server, "POST", "/leaderboard/announce", "admin", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Len(t, mock.LeaderboardCalls, 1)
	require.Len(t, mock.LeaderboardCalls[0], 1)
	assert.Equal(t, "Eagles", mock.LeaderboardCalls[0][0].TeamName)
}

func TestClearStoreHandler(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doRequest(server, "GET", "/clear", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Store cleared!", rr.Body.String())

	teams := doRequest(server, "GET", "/teams", "", nil)
	var list []roster.TeamInfo
	require.NoError(t, json.Unmarshal(teams.Body.Bytes(), &list))
	assert.Empty(t, list)
}

func TestMetricsEndpoint(t *testing.T) {
	server, teardown := setupTestServer(t, notifier.NewMock())
	defer teardown()

	rr := doRequest(server, "GET", "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "outing_scorecard_saves_total")
}
