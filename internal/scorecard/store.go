package scorecard

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new scorecard Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

// GetOrCreateRound upserts the round for (team, event date). The unique
// constraint makes a concurrent first access converge on the same row.
func (s *store) GetOrCreateRound(teamID, eventDate string) (Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO rounds (id, team_id, event_date, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(team_id, event_date) DO NOTHING;
	`, uuid.NewString(), teamID, eventDate, time.Now().Unix())
	if err != nil {
		return Round{}, fmt.Errorf("failed to ensure round: %w", err)
	}

	return s.getRoundWhere("team_id = ? AND event_date = ?", teamID, eventDate)
}

func (s *store) GetRound(roundID string) (Round, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRoundWhere("id = ?", roundID)
}

func (s *store) getRoundWhere(where string, args ...any) (Round, error) {
	var r Round
	var finalizedAt sql.NullInt64
	var finalizedBy sql.NullString
	err := s.db.QueryRow(
		"SELECT id, team_id, event_date, created_at, finalized_at, finalized_by FROM rounds WHERE "+where,
		args...,
	).Scan(&r.ID, &r.TeamID, &r.EventDate, &r.CreatedAt, &finalizedAt, &finalizedBy)
	if err != nil {
		if err == sql.ErrNoRows {
			return Round{}, fmt.Errorf("round not found")
		}
		return Round{}, fmt.Errorf("database error: %w", err)
	}
	if finalizedAt.Valid {
		r.FinalizedAt = &finalizedAt.Int64
	}
	if finalizedBy.Valid {
		r.FinalizedBy = &finalizedBy.String
	}
	return r, nil
}

func (s *store) RoundScores(roundID string) ([]HoleScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT sc.hole, sc.strokes, du.player_id
		FROM scores sc
		LEFT JOIN drives_used du ON du.score_id = sc.id
		WHERE sc.round_id = ?
		ORDER BY sc.hole
	`, roundID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []HoleScore
	for rows.Next() {
		var hs HoleScore
		var strokes sql.NullInt64
		var drivePID sql.NullString
		if err := rows.Scan(&hs.Hole, &strokes, &drivePID); err != nil {
			return nil, err
		}
		if strokes.Valid {
			v := int(strokes.Int64)
			hs.Strokes = &v
		}
		if drivePID.Valid {
			hs.DrivePlayerID = &drivePID.String
		}
		scores = append(scores, hs)
	}
	return scores, rows.Err()
}

// SaveHoles applies the batch inside one transaction so a failure midway
// leaves no hole updated. The lock check runs inside the same transaction.
func (s *store) SaveHoles(roundID string, writes []HoleWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var finalizedAt sql.NullInt64
	if err := tx.QueryRow("SELECT finalized_at FROM rounds WHERE id = ?", roundID).Scan(&finalizedAt); err != nil {
		tx.Rollback()
		if err == sql.ErrNoRows {
			return fmt.Errorf("round not found")
		}
		return fmt.Errorf("failed to check round state: %w", err)
	}
	if finalizedAt.Valid {
		tx.Rollback()
		return ErrRoundLocked
	}

	for _, w := range writes {
		if w.Hole < 1 || w.Hole > 18 {
			tx.Rollback()
			return fmt.Errorf("hole number %d out of range", w.Hole)
		}

		_, err := tx.Exec(`
			INSERT INTO scores (id, round_id, hole, strokes) VALUES (?, ?, ?, ?)
			ON CONFLICT(round_id, hole) DO UPDATE SET strokes = excluded.strokes;
		`, uuid.NewString(), roundID, w.Hole, w.Strokes)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert score for hole %d: %w", w.Hole, err)
		}

		var scoreID string
		if err := tx.QueryRow("SELECT id FROM scores WHERE round_id = ? AND hole = ?", roundID, w.Hole).Scan(&scoreID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to load score for hole %d: %w", w.Hole, err)
		}

		switch w.Drive {
		case DriveSet:
			_, err = tx.Exec(`
				INSERT INTO drives_used (score_id, player_id) VALUES (?, ?)
				ON CONFLICT(score_id) DO UPDATE SET player_id = excluded.player_id;
			`, scoreID, w.DrivePlayerID)
		case DriveClear:
			_, err = tx.Exec("DELETE FROM drives_used WHERE score_id = ?", scoreID)
		case DriveKeep:
			// leave the existing record as it is
		}
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to update drive for hole %d: %w", w.Hole, err)
		}
	}

	return tx.Commit()
}

func (s *store) DriveCounts(roundID string) (map[string]int, map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT du.player_id, sc.hole
		FROM drives_used du
		JOIN scores sc ON sc.id = du.score_id
		WHERE sc.round_id = ?
	`, roundID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	front := make(map[string]int)
	back := make(map[string]int)
	for rows.Next() {
		var playerID string
		var hole int
		if err := rows.Scan(&playerID, &hole); err != nil {
			return nil, nil, err
		}
		if hole <= 9 {
			front[playerID]++
		} else {
			back[playerID]++
		}
	}
	return front, back, rows.Err()
}

// Finalize stamps the lock fields. The IS NULL guard makes a repeated
// finalize a no-op instead of overwriting the original timestamp.
func (s *store) Finalize(roundID, actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"UPDATE rounds SET finalized_at = ?, finalized_by = ? WHERE id = ? AND finalized_at IS NULL",
		time.Now().Unix(), actorID, roundID,
	)
	if err != nil {
		return fmt.Errorf("failed to finalize round: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyFinal
	}
	log.Info("Round finalized", "roundID", roundID, "by", actorID)
	return nil
}

func (s *store) Unlock(roundID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE rounds SET finalized_at = NULL, finalized_by = NULL WHERE id = ?", roundID)
	if err != nil {
		return fmt.Errorf("failed to unlock round: %w", err)
	}
	log.Info("Round unlocked", "roundID", roundID)
	return nil
}
