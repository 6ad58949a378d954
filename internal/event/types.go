package event

import (
	"database/sql"
	"sync"
)

// Settings is the single global configuration row for the event.
type Settings struct {
	EventName         string  `json:"event_name"`
	EventDate         string  `json:"event_date"`
	LeaderboardPublic bool    `json:"leaderboard_public"`
	ScoringCourseID   *string `json:"scoring_course_id,omitempty"`
	ScoringTeeID      *string `json:"scoring_tee_id,omitempty"`
}

// store handles the event_settings table.
type store struct {
	db *sql.DB
	mu sync.Mutex

	defaultName string
	defaultDate string
}
