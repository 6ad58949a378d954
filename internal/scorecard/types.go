package scorecard

import (
	"database/sql"
	"sync"
)

// store handles all database operations for rounds, scores and drives.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Round is one team's scoring record for the event date.
type Round struct {
	ID          string  `json:"id"`
	TeamID      string  `json:"team_id"`
	EventDate   string  `json:"event_date"`
	CreatedAt   int64   `json:"created_at"`
	FinalizedAt *int64  `json:"finalized_at,omitempty"`
	FinalizedBy *string `json:"finalized_by,omitempty"`
}

// IsFinal reports whether the round is locked.
func (r Round) IsFinal() bool {
	return r.FinalizedAt != nil
}

// HoleScore is the recorded state of one hole: strokes (nil until entered)
// and which player's drive was used (nil when none selected).
type HoleScore struct {
	Hole          int     `json:"hole"`
	Strokes       *int    `json:"strokes,omitempty"`
	DrivePlayerID *string `json:"drive_player_id,omitempty"`
}

// HoleEntry is one hole's worth of input from a scorecard submission.
// Nil Strokes clears the stroke value; nil DrivePlayerID clears the drive.
type HoleEntry struct {
	Hole          int
	Strokes       *int
	DrivePlayerID *string
}

// MessageLevel classifies a structured outcome message.
type MessageLevel string

const (
	LevelInfo    MessageLevel = "info"
	LevelWarning MessageLevel = "warning"
	LevelError   MessageLevel = "error"
)

// Message is a structured outcome surfaced to the caller for display; the
// engine never sends notifications itself.
type Message struct {
	Level MessageLevel `json:"level"`
	Text  string       `json:"text"`
}

// SaveResult reports the outcome of a hole-write batch. Warnings carry the
// non-blocking drive quota advisories; errors carry per-hole drive
// validation failures that did not stop the rest of the batch.
type SaveResult struct {
	Messages []Message `json:"messages,omitempty"`
}

func (r *SaveResult) add(level MessageLevel, text string) {
	r.Messages = append(r.Messages, Message{Level: level, Text: text})
}

// HoleSaveResult is the outcome of a sequential-mode single-hole save.
// NextHole is the hole to advance to; 0 means return to the full card.
type HoleSaveResult struct {
	SaveResult
	NextHole int `json:"next_hole"`
}

// Card is the full view of one team's round.
type Card struct {
	Round       Round          `json:"round"`
	Holes       []HoleScore    `json:"holes"` // always 18 entries, holes 1-18
	OutTotal    *int           `json:"out_total,omitempty"`
	InTotal     *int           `json:"in_total,omitempty"`
	Total       *int           `json:"total,omitempty"`
	FrontDrives map[string]int `json:"front_drives"` // per current member
	BackDrives  map[string]int `json:"back_drives"`
	CanEdit     bool           `json:"can_edit"`
}
