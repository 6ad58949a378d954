package roster

import (
	"database/sql"
	"sync"
)

// store handles all database operations for players and teams.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// PlayerInfo represents a player in the store.
type PlayerInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Playing   bool   `json:"playing"`
	CanScore  bool   `json:"can_score"`
	IsAdmin   bool   `json:"is_admin"`
}

// FullName returns "First Last" for display in messages.
func (p PlayerInfo) FullName() string {
	return p.FirstName + " " + p.LastName
}

// TeamInfo represents a team and, when loaded, its current members.
type TeamInfo struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	TeeTime *string      `json:"tee_time,omitempty"`
	Players []PlayerInfo `json:"players,omitempty"`
}
