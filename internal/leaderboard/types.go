package leaderboard

import (
	"database/sql"
	"sync"
)

// store handles the read-only aggregation queries behind the leaderboard.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// TeamRound is the raw per-team scoring data the ranking engine consumes:
// the scored holes only, keyed by hole number.
type TeamRound struct {
	TeamID   string
	TeamName string
	Final    bool
	Strokes  map[int]int
}

// Row is one ranked leaderboard line. Pointer fields are absent (not zero)
// until the team has at least one scored hole.
type Row struct {
	TeamID       string `json:"team_id"`
	TeamName     string `json:"team_name"`
	OutTotal     *int   `json:"out_total,omitempty"`
	InTotal      *int   `json:"in_total,omitempty"`
	Total        *int   `json:"total,omitempty"`
	ToPar        *int   `json:"to_par,omitempty"`
	ToParDisplay string `json:"to_par_display,omitempty"`
	HolesEntered int    `json:"holes_entered"`
	Final        bool   `json:"final"`
	Rank         string `json:"rank,omitempty"` // "3", "T-1", or "" when unrankable
}
