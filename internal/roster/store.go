package roster

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrPlayerReferenced is returned when a player cannot be deleted because a
// drive record still points at them.
var ErrPlayerReferenced = errors.New("player is referenced by a recorded drive")

// New creates a new roster Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) UpsertPlayer(p PlayerInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO players (id, first_name, last_name, email, phone, playing, can_score, is_admin)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			email = excluded.email,
			phone = excluded.phone,
			playing = excluded.playing,
			can_score = excluded.can_score,
			is_admin = excluded.is_admin;
	`, p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.Playing, p.CanScore, p.IsAdmin)
	if err != nil {
		log.Error("Failed to upsert player", "error", err, "playerID", p.ID)
	}
	return err
}

func (s *store) GetPlayer(playerID string) (*PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, first_name, last_name, email, phone, playing, can_score, is_admin
		FROM players WHERE id = ?
	`, playerID)

	var p PlayerInfo
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Playing, &p.CanScore, &p.IsAdmin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player %s not found", playerID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &p, nil
}

func (s *store) GetAllPlayers() ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, first_name, last_name, email, phone, playing, can_score, is_admin
		FROM players ORDER BY last_name, first_name
	`)
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func (s *store) IsKnownPlayer(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}

// DeletePlayer removes a player unless a drive record still references them.
// The explicit check gives a clean error instead of surfacing the FK failure.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var referenced bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM drives_used WHERE player_id = ?)", playerID).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("failed to check drive references: %w", err)
	}
	if referenced {
		return ErrPlayerReferenced
	}

	_, err = s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		log.Error("Failed to delete player", "error", err, "playerID", playerID)
	}
	return err
}

func (s *store) CreateTeam(teamID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("INSERT INTO teams (id, name) VALUES (?, ?)", teamID, name)
	if err != nil {
		log.Error("Failed to create team", "error", err, "teamID", teamID)
	}
	return err
}

func (s *store) GetTeam(teamID string) (*TeamInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var t TeamInfo
	var teeTime sql.NullString
	err := s.db.QueryRow("SELECT id, name, tee_time FROM teams WHERE id = ?", teamID).
		Scan(&t.ID, &t.Name, &teeTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("team %s not found", teamID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if teeTime.Valid {
		t.TeeTime = &teeTime.String
	}

	members, err := s.currentMembersLocked(teamID)
	if err != nil {
		return nil, err
	}
	t.Players = members
	return &t, nil
}

func (s *store) ListTeams() ([]TeamInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, tee_time FROM teams ORDER BY tee_time, name")
	if err != nil {
		log.Error("Failed to query teams", "error", err)
		return nil, err
	}
	defer rows.Close()

	var teams []TeamInfo
	for rows.Next() {
		var t TeamInfo
		var teeTime sql.NullString
		if err := rows.Scan(&t.ID, &t.Name, &teeTime); err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		if teeTime.Valid {
			t.TeeTime = &teeTime.String
		}
		teams = append(teams, t)
	}
	return teams, nil
}

func (s *store) SetTeeTime(teamID, teeTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE teams SET tee_time = ? WHERE id = ?", teeTime, teamID)
	if err != nil {
		log.Error("Failed to set tee time", "error", err, "teamID", teamID)
	}
	return err
}

// DeleteTeam relies on the cascading foreign keys to remove the team's
// rounds, scores and drive records in one statement.
func (s *store) DeleteTeam(teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM teams WHERE id = ?", teamID)
	if err != nil {
		log.Error("Failed to delete team", "error", err, "teamID", teamID)
	}
	return err
}

func (s *store) AddPlayerToTeam(teamID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO team_players (team_id, player_id) VALUES (?, ?)
		ON CONFLICT(team_id, player_id) DO NOTHING;
	`, teamID, playerID)
	if err != nil {
		log.Error("Failed to add player to team", "error", err, "teamID", teamID, "playerID", playerID)
	}
	return err
}

func (s *store) RemovePlayerFromTeam(teamID, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM team_players WHERE team_id = ? AND player_id = ?", teamID, playerID)
	if err != nil {
		log.Error("Failed to remove player from team", "error", err, "teamID", teamID, "playerID", playerID)
	}
	return err
}

func (s *store) CurrentMembers(teamID string) ([]PlayerInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentMembersLocked(teamID)
}

func (s *store) currentMembersLocked(teamID string) ([]PlayerInfo, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.first_name, p.last_name, p.email, p.phone, p.playing, p.can_score, p.is_admin
		FROM players p
		JOIN team_players tp ON tp.player_id = p.id
		WHERE tp.team_id = ?
		ORDER BY p.last_name, p.first_name
	`, teamID)
	if err != nil {
		log.Error("Failed to query team members", "error", err, "teamID", teamID)
		return nil, err
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]PlayerInfo, error) {
	var players []PlayerInfo
	for rows.Next() {
		var p PlayerInfo
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.Playing, &p.CanScore, &p.IsAdmin); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"drives_used", "scores", "rounds", "team_players", "teams", "players"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}
