package auth

import (
	"database/sql"

	"github.com/charmbracelet/log"
)

// identity is the store-backed Identity implementation.
type identity struct {
	db *sql.DB
}

// New creates an Identity backed by the roster tables.
func New(db *sql.DB) Identity {
	return &identity{db: db}
}

func (i *identity) IsAdministrator(actorID string) bool {
	var isAdmin bool
	err := i.db.QueryRow("SELECT is_admin FROM players WHERE id = ?", actorID).Scan(&isAdmin)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error("Failed to check administrator flag", "error", err, "actorID", actorID)
		}
		return false
	}
	return isAdmin
}

func (i *identity) IsTeamMember(actorID, teamID string) bool {
	var exists bool
	err := i.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM team_players WHERE team_id = ? AND player_id = ?)",
		teamID, actorID,
	).Scan(&exists)
	if err != nil {
		log.Error("Failed to check team membership", "error", err, "actorID", actorID, "teamID", teamID)
		return false
	}
	return exists
}

func (i *identity) HasScoringCapability(actorID, teamID string) bool {
	var exists bool
	err := i.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM team_players tp
			JOIN players p ON p.id = tp.player_id
			WHERE tp.team_id = ? AND tp.player_id = ? AND p.can_score = 1
		)
	`, teamID, actorID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check scoring capability", "error", err, "actorID", actorID, "teamID", teamID)
		return false
	}
	return exists
}
