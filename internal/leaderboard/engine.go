package leaderboard

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beeropen/scramble/internal/course"
	"github.com/beeropen/scramble/internal/event"
	"github.com/beeropen/scramble/internal/metrics"
)

// Engine computes the ranked board for the event date. It never mutates
// anything: every build is a fresh aggregation over committed data.
type Engine struct {
	store    Store
	courses  course.Store
	settings event.SettingsStore
	metrics  metrics.Metrics
}

// NewEngine creates a new leaderboard Engine.
func NewEngine(store Store, courses course.Store, settings event.SettingsStore, m metrics.Metrics) *Engine {
	return &Engine{
		store:    store,
		courses:  courses,
		settings: settings,
		metrics:  m,
	}
}

// Build aggregates, sorts and ranks every team for the configured event date.
func (e *Engine) Build() ([]Row, error) {
	start := time.Now()

	settings, err := e.settings.Load()
	if err != nil {
		return nil, err
	}
	pars, err := course.Resolve(e.courses, settings)
	if err != nil {
		return nil, err
	}

	rounds, err := e.store.TeamRounds(settings.EventDate)
	if err != nil {
		return nil, err
	}

	board := make([]Row, 0, len(rounds))
	for _, tr := range rounds {
		board = append(board, buildRow(tr, pars))
	}

	sortRows(board)
	assignRanks(board)

	e.metrics.IncLeaderboardBuilds()
	e.metrics.ObserveLeaderboardBuildDuration(time.Since(start).Seconds())
	log.Debug("Leaderboard built", "teams", len(board), "eventDate", settings.EventDate)
	return board, nil
}

// buildRow computes one team's totals. To-par sums par only over the holes
// actually scored, so a team three holes in compares against three holes of
// par, not eighteen.
func buildRow(tr TeamRound, pars course.ParProvider) Row {
	row := Row{
		TeamID:       tr.TeamID,
		TeamName:     tr.TeamName,
		Final:        tr.Final,
		HolesEntered: len(tr.Strokes),
	}
	if len(tr.Strokes) == 0 {
		return row
	}

	var out, in, strokesSum, parSum int
	var outSet, inSet bool
	parsComplete := true
	for hole, strokes := range tr.Strokes {
		if hole <= 9 {
			out += strokes
			outSet = true
		} else {
			in += strokes
			inSet = true
		}
		strokesSum += strokes
		par, ok := pars.Par(hole)
		if !ok {
			parsComplete = false
			continue
		}
		parSum += par
	}

	if outSet {
		row.OutTotal = &out
	}
	if inSet {
		row.InTotal = &in
	}
	total := out + in
	row.Total = &total

	if parsComplete {
		toPar := strokesSum - parSum
		row.ToPar = &toPar
		row.ToParDisplay = formatToPar(toPar)
	}
	return row
}

func formatToPar(toPar int) string {
	switch {
	case toPar == 0:
		return "E"
	case toPar > 0:
		return fmt.Sprintf("+%d", toPar)
	default:
		return strconv.Itoa(toPar)
	}
}

// sortRows orders best-first: to-par ascending with absent last, then total
// ascending with absent last, then team name.
func sortRows(board []Row) {
	sort.SliceStable(board, func(i, j int) bool {
		a, b := board[i], board[j]
		if c := compareNilLast(a.ToPar, b.ToPar); c != 0 {
			return c < 0
		}
		if c := compareNilLast(a.Total, b.Total); c != 0 {
			return c < 0
		}
		return a.TeamName < b.TeamName
	})
}

func compareNilLast(a, b *int) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	default:
		return 0
	}
}

// assignRanks applies competition ranking: ties share the 1-based position
// of the first row carrying their value, prefixed "T-" when shared; the next
// distinct value takes its own row's position. Rows with neither a to-par
// nor a total stay unranked.
func assignRanks(board []Row) {
	groupOf := func(r Row) (string, bool) {
		if r.ToPar != nil {
			return "p" + strconv.Itoa(*r.ToPar), true
		}
		if r.Total != nil {
			return "t" + strconv.Itoa(*r.Total), true
		}
		return "", false
	}

	freq := make(map[string]int)
	firstPos := make(map[string]int)
	for i, r := range board {
		key, ok := groupOf(r)
		if !ok {
			continue
		}
		freq[key]++
		if _, seen := firstPos[key]; !seen {
			firstPos[key] = i + 1
		}
	}

	for i := range board {
		key, ok := groupOf(board[i])
		if !ok {
			continue
		}
		if freq[key] > 1 {
			board[i].Rank = fmt.Sprintf("T-%d", firstPos[key])
		} else {
			board[i].Rank = strconv.Itoa(firstPos[key])
		}
	}
}
