package leaderboard

import (
	"database/sql"
	"fmt"
)

// New creates a new leaderboard Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) TeamRounds(eventDate string) ([]TeamRound, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.id, t.name, r.finalized_at, sc.hole, sc.strokes
		FROM teams t
		LEFT JOIN rounds r ON r.team_id = t.id AND r.event_date = ?
		LEFT JOIN scores sc ON sc.round_id = r.id AND sc.strokes IS NOT NULL
		ORDER BY t.name, t.id, sc.hole
	`, eventDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query team rounds: %w", err)
	}
	defer rows.Close()

	var result []TeamRound
	index := make(map[string]int)
	for rows.Next() {
		var teamID, teamName string
		var finalizedAt, strokes sql.NullInt64
		var hole sql.NullInt64
		if err := rows.Scan(&teamID, &teamName, &finalizedAt, &hole, &strokes); err != nil {
			return nil, err
		}

		i, ok := index[teamID]
		if !ok {
			result = append(result, TeamRound{
				TeamID:   teamID,
				TeamName: teamName,
				Final:    finalizedAt.Valid,
				Strokes:  make(map[int]int),
			})
			i = len(result) - 1
			index[teamID] = i
		}
		if hole.Valid && strokes.Valid {
			result[i].Strokes[int(hole.Int64)] = int(strokes.Int64)
		}
	}
	return result, rows.Err()
}
