package scorecard_test

import (
	"testing"

	"github.com/beeropen/scramble/internal/auth"
	"github.com/beeropen/scramble/internal/metrics"
	"github.com/beeropen/scramble/internal/roster"
	"github.com/beeropen/scramble/internal/scorecard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventDate = "2026-06-20"

type engineFixture struct {
	engine   *scorecard.Engine
	store    *scorecard.Mock
	roster   *roster.Mock
	identity *auth.Mock
	metrics  *metrics.Mock
}

// setupEngine builds an engine over mocks with team "Eagles" of four players.
// "p1" can score, "p2" is a plain member and "admin" is an administrator.
func setupEngine(t *testing.T) *engineFixture {
	t.Helper()

	rosterMock := roster.NewMock()
	identity := auth.NewMock()
	storeMock := scorecard.NewMock()
	metricsMock := metrics.NewMock()

	names := [][2]string{{"Al", "Czervik"}, {"Ty", "Webb"}, {"Carl", "Spackler"}, {"Danny", "Noonan"}}
	require.NoError(t, rosterMock.CreateTeam("eagles", "Eagles"))
	for i, n := range names {
		id := []string{"p1", "p2", "p3", "p4"}[i]
		require.NoError(t, rosterMock.UpsertPlayer(roster.PlayerInfo{ID: id, FirstName: n[0], LastName: n[1]}))
		require.NoError(t, rosterMock.AddPlayerToTeam("eagles", id))
		identity.AddMember("eagles", id, id == "p1")
	}
	identity.Admins["admin"] = true

	return &engineFixture{
		engine:   scorecard.NewEngine(storeMock, rosterMock, identity, metricsMock),
		store:    storeMock,
		roster:   rosterMock,
		identity: identity,
		metrics:  metricsMock,
	}
}

func entries(holes ...scorecard.HoleEntry) []scorecard.HoleEntry { return holes }

func strPtr(s string) *string { return &s }

func TestParseStrokes(t *testing.T) {
	assert.Equal(t, 4, *scorecard.ParseStrokes("4"))
	assert.Equal(t, 12, *scorecard.ParseStrokes(" 12 "))
	assert.Nil(t, scorecard.ParseStrokes(""))
	assert.Nil(t, scorecard.ParseStrokes("abc"))
	assert.Nil(t, scorecard.ParseStrokes("-3"))
	assert.Nil(t, scorecard.ParseStrokes("4.5"))
}

func TestViewCardPermissions(t *testing.T) {
	f := setupEngine(t)

	_, err := f.engine.ViewCard("stranger", "eagles", eventDate)
	assert.ErrorIs(t, err, scorecard.ErrPermissionDenied)

	// A plain member may view but not edit.
	card, err := f.engine.ViewCard("p2", "eagles", eventDate)
	require.NoError(t, err)
	assert.False(t, card.CanEdit)

	card, err = f.engine.ViewCard("p1", "eagles", eventDate)
	require.NoError(t, err)
	assert.True(t, card.CanEdit)
	assert.Len(t, card.Holes, 18)
	assert.Nil(t, card.Total)

	// Drive maps cover every current member even with nothing recorded.
	assert.Len(t, card.FrontDrives, 4)
	assert.Zero(t, card.FrontDrives["p3"])
}

func TestViewCardTotals(t *testing.T) {
	f := setupEngine(t)

	_, err := f.engine.SaveCard("p1", "eagles", eventDate, entries(
		scorecard.HoleEntry{Hole: 1, Strokes: intPtr(4), DrivePlayerID: strPtr("p1")},
		scorecard.HoleEntry{Hole: 2, Strokes: intPtr(5)},
		scorecard.HoleEntry{Hole: 10, Strokes: intPtr(3), DrivePlayerID: strPtr("p2")},
	))
	require.NoError(t, err)

	card, err := f.engine.ViewCard("p1", "eagles", eventDate)
	require.NoError(t, err)
	assert.Equal(t, 9, *card.OutTotal)
	assert.Equal(t, 3, *card.InTotal)
	assert.Equal(t, 12, *card.Total)
	assert.Equal(t, 1, card.FrontDrives["p1"])
	assert.Equal(t, 1, card.BackDrives["p2"])
}

func TestSaveCardPermissions(t *testing.T) {
	f := setupEngine(t)

	// A member without scoring capability cannot save; an admin can.
	_, err := f.engine.SaveCard("p2", "eagles", eventDate, nil)
	assert.ErrorIs(t, err, scorecard.ErrPermissionDenied)

	_, err = f.engine.SaveCard("admin", "eagles", eventDate, nil)
	require.NoError(t, err)
}

func TestSaveCardRejectsNonMemberDriveButKeepsStrokes(t *testing.T) {
	f := setupEngine(t)

	// Establish a prior drive on hole 1 so the invalid write has something
	// to leave untouched.
	_, err := f.engine.SaveCard("p1", "eagles", eventDate, entries(
		scorecard.HoleEntry{Hole: 1, Strokes: intPtr(5), DrivePlayerID: strPtr("p1")},
	))
	require.NoError(t, err)

	result, err := f.engine.SaveCard("p1", "eagles", eventDate, entries(
		scorecard.HoleEntry{Hole: 1, Strokes: intPtr(4), DrivePlayerID: strPtr("ghost")},
	))
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, scorecard.LevelError, result.Messages[0].Level)
	assert.Contains(t, result.Messages[0].Text, "Hole 1")

	round, err := f.store.GetOrCreateRound("eagles", eventDate)
	require.NoError(t, err)
	scores, err := f.store.RoundScores(round.ID)
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.Equal(t, 4, *scores[0].Strokes)
	// The previous drive survives the rejected selection.
	assert.Equal(t, "p1", *scores[0].DrivePlayerID)
}

func TestSaveCardOnFinalRoundFails(t *testing.T) {
	f := setupEngine(t)

	round, err := f.store.GetOrCreateRound("eagles", eventDate)
	require.NoError(t, err)
	require.NoError(t, f.store.Finalize(round.ID, "admin"))

	_, err = f.engine.SaveCard("p1", "eagles", eventDate, entries(
		scorecard.HoleEntry{Hole: 1, Strokes: intPtr(4)},
	))
	assert.ErrorIs(t, err, scorecard.ErrRoundLocked)
	assert.Equal(t, 0, f.metrics.ScorecardSaveCount)
}

// Full-scenario test: a complete front nine with drives covering only three
// of four members saves fine with an advisory, and finalize enumerates both
// the uncovered member and the unentered back nine.
func TestFrontNineAdvisoryAndBlockedFinalize(t *testing.T) {
	f := setupEngine(t)

	var batch []scorecard.HoleEntry
	drivers := []string{"p1", "p1", "p1", "p2", "p2", "p2", "p3", "p3", "p3"}
	for h := 1; h <= 9; h++ {
		batch = append(batch, scorecard.HoleEntry{Hole: h, Strokes: intPtr(4), DrivePlayerID: strPtr(drivers[h-1])})
	}

	result, err := f.engine.SaveCard("p1", "eagles", eventDate, batch)
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, scorecard.LevelWarning, result.Messages[0].Level)
	assert.Contains(t, result.Messages[0].Text, "Danny Noonan")

	err = f.engine.Finalize("p1", "eagles", eventDate)
	var finErr *scorecard.FinalizeError
	require.ErrorAs(t, err, &finErr)
	assert.Equal(t, []int{10, 11, 12, 13, 14, 15, 16, 17, 18}, finErr.MissingHoles)
	assert.Equal(t, []string{"Danny Noonan"}, finErr.MissingFront)
	assert.Len(t, finErr.MissingBack, 4)

	// The round stays open.
	round, err := f.store.GetOrCreateRound("eagles", eventDate)
	require.NoError(t, err)
	assert.False(t, round.IsFinal())
	assert.Equal(t, 0, f.metrics.FinalizeCount)
}

func completeRound(t *testing.T, f *engineFixture) {
	t.Helper()
	drivers := []string{"p1", "p2", "p3", "p4"}
	var batch []scorecard.HoleEntry
	for h := 1; h <= 18; h++ {
		batch = append(batch, scorecard.HoleEntry{Hole: h, Strokes: intPtr(4), DrivePlayerID: strPtr(drivers[(h-1)%4])})
	}
	result, err := f.engine.SaveCard("p1", "eagles", eventDate, batch)
	require.NoError(t, err)
	assert.Empty(t, result.Messages)
}

func TestFinalizeLifecycle(t *testing.T) {
	f := setupEngine(t)
	completeRound(t, f)

	require.NoError(t, f.engine.Finalize("p1", "eagles", eventDate))
	assert.Equal(t, 1, f.metrics.FinalizeCount)

	round, err := f.store.GetOrCreateRound("eagles", eventDate)
	require.NoError(t, err)
	assert.True(t, round.IsFinal())
	assert.Equal(t, "p1", *round.FinalizedBy)

	// Re-finalizing is a no-op.
	err = f.engine.Finalize("admin", "eagles", eventDate)
	assert.ErrorIs(t, err, scorecard.ErrAlreadyFinal)
	assert.Equal(t, 1, f.metrics.FinalizeCount)
	round, err = f.store.GetOrCreateRound("eagles", eventDate)
	require.NoError(t, err)
	assert.Equal(t, "p1", *round.FinalizedBy)

	// Only an administrator can unlock.
	err = f.engine.Unlock("p1", "eagles", eventDate)
	assert.ErrorIs(t, err, scorecard.ErrPermissionDenied)

	require.NoError(t, f.engine.Unlock("admin", "eagles", eventDate))
	assert.Equal(t, 1, f.metrics.UnlockCount)

	// Unlocking an open round fails; edits work again.
	err = f.engine.Unlock("admin", "eagles", eventDate)
	assert.ErrorIs(t, err, scorecard.ErrNotFinal)

	_, err = f.engine.SaveCard("p1", "eagles", eventDate, entries(
		scorecard.HoleEntry{Hole: 1, Strokes: intPtr(3), DrivePlayerID: strPtr("p1")},
	))
	require.NoError(t, err)
}

func TestFinalizePermissions(t *testing.T) {
	f := setupEngine(t)
	completeRound(t, f)

	err := f.engine.Finalize("p2", "eagles", eventDate)
	assert.ErrorIs(t, err, scorecard.ErrPermissionDenied)

	require.NoError(t, f.engine.Finalize("admin", "eagles", eventDate))
}

func TestSaveHoleSequentialFlow(t *testing.T) {
	f := setupEngine(t)

	// Strokes without a drive selection are not accepted in this mode.
	result, err := f.engine.SaveHole("p1", "eagles", eventDate, scorecard.HoleEntry{Hole: 1, Strokes: intPtr(4)})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, scorecard.LevelError, result.Messages[0].Level)
	assert.Equal(t, 1, result.NextHole)

	round, err := f.store.GetOrCreateRound("eagles", eventDate)
	require.NoError(t, err)
	scores, err := f.store.RoundScores(round.ID)
	require.NoError(t, err)
	assert.Empty(t, scores)

	// A non-member drive is also rejected without saving.
	result, err = f.engine.SaveHole("p1", "eagles", eventDate, scorecard.HoleEntry{Hole: 1, Strokes: intPtr(4), DrivePlayerID: strPtr("ghost")})
	require.NoError(t, err)
	require.Len(t, result.Messages, 1)
	assert.Equal(t, 1, result.NextHole)

	result, err = f.engine.SaveHole("p1", "eagles", eventDate, scorecard.HoleEntry{Hole: 1, Strokes: intPtr(4), DrivePlayerID: strPtr("p1")})
	require.NoError(t, err)
	assert.Empty(t, result.Messages)
	assert.Equal(t, 2, result.NextHole)

	// The turn and the 18th return to the card.
	result, err = f.engine.SaveHole("p1", "eagles", eventDate, scorecard.HoleEntry{Hole: 9, Strokes: intPtr(5), DrivePlayerID: strPtr("p2")})
	require.NoError(t, err)
	assert.Zero(t, result.NextHole)

	result, err = f.engine.SaveHole("p1", "eagles", eventDate, scorecard.HoleEntry{Hole: 18, Strokes: intPtr(4), DrivePlayerID: strPtr("p3")})
	require.NoError(t, err)
	assert.Zero(t, result.NextHole)

	_, err = f.engine.SaveHole("p1", "eagles", eventDate, scorecard.HoleEntry{Hole: 19})
	assert.Error(t, err)
}

func TestRemovedMemberDrivesDoNotCount(t *testing.T) {
	f := setupEngine(t)

	_, err := f.engine.SaveCard("p1", "eagles", eventDate, entries(
		scorecard.HoleEntry{Hole: 1, Strokes: intPtr(4), DrivePlayerID: strPtr("p4")},
	))
	require.NoError(t, err)

	require.NoError(t, f.roster.RemovePlayerFromTeam("eagles", "p4"))

	card, err := f.engine.ViewCard("p1", "eagles", eventDate)
	require.NoError(t, err)
	// The stored drive record survives, but p4 is gone from the coverage map.
	_, ok := card.FrontDrives["p4"]
	assert.False(t, ok)
	assert.Len(t, card.FrontDrives, 3)
}
