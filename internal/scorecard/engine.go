package scorecard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/beeropen/scramble/internal/auth"
	"github.com/beeropen/scramble/internal/metrics"
	"github.com/beeropen/scramble/internal/roster"
)

// Engine owns the round lifecycle: it decides whether a round may be edited,
// applies hole writes with quota feedback and drives the OPEN/FINAL
// transitions.
type Engine struct {
	store    Store
	roster   roster.Store
	identity auth.Identity
	metrics  metrics.Metrics
}

// NewEngine creates a new scorecard Engine.
func NewEngine(store Store, rosterStore roster.Store, identity auth.Identity, m metrics.Metrics) *Engine {
	return &Engine{
		store:    store,
		roster:   rosterStore,
		identity: identity,
		metrics:  m,
	}
}

// ParseStrokes normalizes raw stroke input: a string of digits becomes a
// value, anything else (blank, negative, garbage) becomes nil. A typo clears
// the hole rather than blocking the rest of the card from saving.
func ParseStrokes(raw string) *int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return nil
		}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &n
}

func (e *Engine) canView(actorID, teamID string) bool {
	return e.identity.IsAdministrator(actorID) || e.identity.IsTeamMember(actorID, teamID)
}

func (e *Engine) canEdit(actorID, teamID string) bool {
	return e.identity.IsAdministrator(actorID) || e.identity.HasScoringCapability(actorID, teamID)
}

// ViewCard returns the full card for a team's round, creating the round
// lazily on first access.
func (e *Engine) ViewCard(actorID, teamID, eventDate string) (*Card, error) {
	if !e.canView(actorID, teamID) {
		return nil, ErrPermissionDenied
	}

	round, err := e.store.GetOrCreateRound(teamID, eventDate)
	if err != nil {
		return nil, err
	}

	scores, err := e.store.RoundScores(round.ID)
	if err != nil {
		return nil, err
	}

	card := &Card{
		Round:   round,
		Holes:   make([]HoleScore, 18),
		CanEdit: e.canEdit(actorID, teamID) && !round.IsFinal(),
	}
	for h := 1; h <= 18; h++ {
		card.Holes[h-1] = HoleScore{Hole: h}
	}

	var out, in int
	var outSet, inSet bool
	for _, sc := range scores {
		card.Holes[sc.Hole-1] = sc
		if sc.Strokes == nil {
			continue
		}
		if sc.Hole <= 9 {
			out += *sc.Strokes
			outSet = true
		} else {
			in += *sc.Strokes
			inSet = true
		}
	}
	if outSet {
		card.OutTotal = &out
	}
	if inSet {
		card.InTotal = &in
	}
	if outSet || inSet {
		total := out + in
		card.Total = &total
	}

	members, err := e.roster.CurrentMembers(teamID)
	if err != nil {
		return nil, err
	}
	card.FrontDrives, card.BackDrives, err = e.driveCoverage(round.ID, members)
	if err != nil {
		return nil, err
	}

	return card, nil
}

// SaveCard applies a batch of hole writes as one unit. Drive selections
// naming a non-member are skipped for that hole only (the strokes still
// apply) and surfaced as per-hole errors. After the batch, completed nines
// produce non-blocking quota advisories.
func (e *Engine) SaveCard(actorID, teamID, eventDate string, entries []HoleEntry) (*SaveResult, error) {
	if !e.canEdit(actorID, teamID) {
		return nil, ErrPermissionDenied
	}

	round, err := e.store.GetOrCreateRound(teamID, eventDate)
	if err != nil {
		return nil, err
	}
	if round.IsFinal() {
		return nil, ErrRoundLocked
	}

	members, err := e.roster.CurrentMembers(teamID)
	if err != nil {
		return nil, err
	}
	memberNames := make(map[string]string, len(members))
	for _, m := range members {
		memberNames[m.ID] = m.FullName()
	}

	result := &SaveResult{}
	writes := make([]HoleWrite, 0, len(entries))
	for _, entry := range entries {
		w := HoleWrite{Hole: entry.Hole, Strokes: entry.Strokes}
		switch {
		case entry.DrivePlayerID == nil:
			w.Drive = DriveClear
		default:
			if _, ok := memberNames[*entry.DrivePlayerID]; ok {
				w.Drive = DriveSet
				w.DrivePlayerID = *entry.DrivePlayerID
			} else {
				// Keep whatever drive was there before; only this
				// hole's selection is rejected.
				w.Drive = DriveKeep
				result.add(LevelError, fmt.Sprintf("Hole %d: selected drive player is not on this team.", entry.Hole))
			}
		}
		writes = append(writes, w)
	}

	if err := e.store.SaveHoles(round.ID, writes); err != nil {
		e.metrics.IncScorecardSaveFailures()
		return nil, err
	}
	e.metrics.IncScorecardSaves()

	if err := e.addQuotaAdvisories(round.ID, members, result); err != nil {
		return nil, err
	}
	return result, nil
}

// SaveHole is the sequential entry path: one hole at a time, and stricter
// than the full card in that strokes are only accepted alongside a valid
// drive selection for the same hole.
func (e *Engine) SaveHole(actorID, teamID, eventDate string, entry HoleEntry) (*HoleSaveResult, error) {
	if !e.canEdit(actorID, teamID) {
		return nil, ErrPermissionDenied
	}
	if entry.Hole < 1 || entry.Hole > 18 {
		return nil, fmt.Errorf("hole number %d out of range", entry.Hole)
	}

	round, err := e.store.GetOrCreateRound(teamID, eventDate)
	if err != nil {
		return nil, err
	}
	if round.IsFinal() {
		return nil, ErrRoundLocked
	}

	result := &HoleSaveResult{NextHole: entry.Hole}

	if entry.Strokes != nil && entry.DrivePlayerID == nil {
		result.add(LevelError, fmt.Sprintf("Hole %d: select whose drive was used before entering a score.", entry.Hole))
		return result, nil
	}

	members, err := e.roster.CurrentMembers(teamID)
	if err != nil {
		return nil, err
	}

	w := HoleWrite{Hole: entry.Hole, Strokes: entry.Strokes, Drive: DriveClear}
	if entry.DrivePlayerID != nil {
		valid := false
		for _, m := range members {
			if m.ID == *entry.DrivePlayerID {
				valid = true
				break
			}
		}
		if !valid {
			result.add(LevelError, fmt.Sprintf("Hole %d: selected drive player is not on this team.", entry.Hole))
			return result, nil
		}
		w.Drive = DriveSet
		w.DrivePlayerID = *entry.DrivePlayerID
	}

	if err := e.store.SaveHoles(round.ID, []HoleWrite{w}); err != nil {
		e.metrics.IncScorecardSaveFailures()
		return nil, err
	}
	e.metrics.IncScorecardSaves()

	if err := e.addQuotaAdvisories(round.ID, members, &result.SaveResult); err != nil {
		return nil, err
	}

	// Advance to the next hole; the turn and the 18th return to the card.
	switch entry.Hole {
	case 9, 18:
		result.NextHole = 0
	default:
		result.NextHole = entry.Hole + 1
	}
	return result, nil
}

// Finalize moves the round OPEN -> FINAL. It fails with a FinalizeError
// enumerating every missing hole and every member without a drive on each
// nine; nothing is written on failure.
func (e *Engine) Finalize(actorID, teamID, eventDate string) error {
	if !e.canEdit(actorID, teamID) {
		return ErrPermissionDenied
	}

	round, err := e.store.GetOrCreateRound(teamID, eventDate)
	if err != nil {
		return err
	}
	if round.IsFinal() {
		return ErrAlreadyFinal
	}

	scores, err := e.store.RoundScores(round.ID)
	if err != nil {
		return err
	}
	entered := make(map[int]bool, len(scores))
	for _, sc := range scores {
		if sc.Strokes != nil {
			entered[sc.Hole] = true
		}
	}
	finErr := &FinalizeError{}
	for h := 1; h <= 18; h++ {
		if !entered[h] {
			finErr.MissingHoles = append(finErr.MissingHoles, h)
		}
	}

	members, err := e.roster.CurrentMembers(teamID)
	if err != nil {
		return err
	}
	front, back, err := e.driveCoverage(round.ID, members)
	if err != nil {
		return err
	}
	for _, m := range members {
		if front[m.ID] == 0 {
			finErr.MissingFront = append(finErr.MissingFront, m.FullName())
		}
		if back[m.ID] == 0 {
			finErr.MissingBack = append(finErr.MissingBack, m.FullName())
		}
	}

	if len(finErr.MissingHoles) > 0 || len(finErr.MissingFront) > 0 || len(finErr.MissingBack) > 0 {
		log.Info("Finalize blocked", "roundID", round.ID, "missing_holes", len(finErr.MissingHoles),
			"missing_front", len(finErr.MissingFront), "missing_back", len(finErr.MissingBack))
		return finErr
	}

	if err := e.store.Finalize(round.ID, actorID); err != nil {
		return err
	}
	e.metrics.IncFinalizes()
	return nil
}

// Unlock moves the round FINAL -> OPEN. Administrators only.
func (e *Engine) Unlock(actorID, teamID, eventDate string) error {
	if !e.identity.IsAdministrator(actorID) {
		return ErrPermissionDenied
	}

	round, err := e.store.GetOrCreateRound(teamID, eventDate)
	if err != nil {
		return err
	}
	if !round.IsFinal() {
		return ErrNotFinal
	}

	if err := e.store.Unlock(round.ID); err != nil {
		return err
	}
	e.metrics.IncUnlocks()
	return nil
}

// driveCoverage computes drives used per current member on each nine. Drives
// recorded for since-removed members stay in the store but do not count
// here. Both the save-time advisory and the finalize gate go through this.
func (e *Engine) driveCoverage(roundID string, members []roster.PlayerInfo) (map[string]int, map[string]int, error) {
	rawFront, rawBack, err := e.store.DriveCounts(roundID)
	if err != nil {
		return nil, nil, err
	}

	front := make(map[string]int, len(members))
	back := make(map[string]int, len(members))
	for _, m := range members {
		front[m.ID] = rawFront[m.ID]
		back[m.ID] = rawBack[m.ID]
	}
	return front, back, nil
}

// addQuotaAdvisories appends a warning per member without a drive on a nine,
// but only once all nine holes of that nine have strokes entered. These
// never block a save.
func (e *Engine) addQuotaAdvisories(roundID string, members []roster.PlayerInfo, result *SaveResult) error {
	scores, err := e.store.RoundScores(roundID)
	if err != nil {
		return err
	}
	var enteredFront, enteredBack int
	for _, sc := range scores {
		if sc.Strokes == nil {
			continue
		}
		if sc.Hole <= 9 {
			enteredFront++
		} else {
			enteredBack++
		}
	}

	front, back, err := e.driveCoverage(roundID, members)
	if err != nil {
		return err
	}

	if enteredFront == 9 {
		if missing := membersWithoutDrives(members, front); len(missing) > 0 {
			result.add(LevelWarning, "Front nine quota: no drive used yet for "+strings.Join(missing, ", ")+".")
		}
	}
	if enteredBack == 9 {
		if missing := membersWithoutDrives(members, back); len(missing) > 0 {
			result.add(LevelWarning, "Back nine quota: no drive used yet for "+strings.Join(missing, ", ")+".")
		}
	}
	return nil
}

func membersWithoutDrives(members []roster.PlayerInfo, counts map[string]int) []string {
	var missing []string
	for _, m := range members {
		if counts[m.ID] == 0 {
			missing = append(missing, m.FullName())
		}
	}
	return missing
}
