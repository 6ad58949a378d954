package event

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new SettingsStore. The defaults are only written the first
// time the singleton row is created.
func New(db *sql.DB, defaultName, defaultDate string) SettingsStore {
	return &store{
		db:          db,
		defaultName: defaultName,
		defaultDate: defaultDate,
	}
}

// Load returns the settings row, creating it on first access. The primary key
// is fixed at 1 and guarded by a CHECK constraint, so a concurrent first load
// cannot create a duplicate row.
func (s *store) Load() (Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO event_settings (id, event_name, event_date) VALUES (1, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, s.defaultName, s.defaultDate)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to ensure event settings row: %w", err)
	}

	var st Settings
	var courseID, teeID sql.NullString
	err = s.db.QueryRow(`
		SELECT event_name, event_date, leaderboard_public, scoring_course_id, scoring_tee_id
		FROM event_settings WHERE id = 1
	`).Scan(&st.EventName, &st.EventDate, &st.LeaderboardPublic, &courseID, &teeID)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to load event settings: %w", err)
	}
	if courseID.Valid {
		st.ScoringCourseID = &courseID.String
	}
	if teeID.Valid {
		st.ScoringTeeID = &teeID.String
	}
	return st, nil
}

func (s *store) SetLeaderboardPublic(public bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE event_settings SET leaderboard_public = ? WHERE id = 1", public)
	if err != nil {
		log.Error("Failed to update leaderboard visibility", "error", err)
	}
	return err
}

func (s *store) SetEventDate(date string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE event_settings SET event_date = ? WHERE id = 1", date)
	if err != nil {
		log.Error("Failed to update event date", "error", err)
	}
	return err
}

func (s *store) SetScoringCourse(courseID, teeID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("UPDATE event_settings SET scoring_course_id = ?, scoring_tee_id = ? WHERE id = 1", courseID, teeID)
	if err != nil {
		log.Error("Failed to update scoring course", "error", err)
	}
	return err
}
