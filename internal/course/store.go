package course

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new course Store.
func New(db *sql.DB) Store {
	return &store{
		db: db,
	}
}

func (s *store) GetOrCreateCourse(name string) (Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO courses (id, name) VALUES (?, ?)
		ON CONFLICT(name) DO NOTHING;
	`, uuid.NewString(), name)
	if err != nil {
		return Course{}, fmt.Errorf("failed to ensure course %q: %w", name, err)
	}

	var c Course
	err = s.db.QueryRow("SELECT id, name, city, state FROM courses WHERE name = ?", name).
		Scan(&c.ID, &c.Name, &c.City, &c.State)
	if err != nil {
		return Course{}, fmt.Errorf("failed to load course %q: %w", name, err)
	}
	return c, nil
}

func (s *store) GetOrCreateTee(courseID, name string) (TeeBox, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tee_boxes (id, course_id, name) VALUES (?, ?, ?)
		ON CONFLICT(course_id, name) DO NOTHING;
	`, uuid.NewString(), courseID, name)
	if err != nil {
		return TeeBox{}, fmt.Errorf("failed to ensure tee %q: %w", name, err)
	}

	var t TeeBox
	err = s.db.QueryRow("SELECT id, course_id, name FROM tee_boxes WHERE course_id = ? AND name = ?", courseID, name).
		Scan(&t.ID, &t.CourseID, &t.Name)
	if err != nil {
		return TeeBox{}, fmt.Errorf("failed to load tee %q: %w", name, err)
	}
	return t, nil
}

// UpsertHole writes the par (and handicap) for a hole and returns the hole id.
func (s *store) UpsertHole(courseID string, number, par int, handicap *int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if number < 1 || number > 18 {
		return "", fmt.Errorf("hole number %d out of range", number)
	}

	_, err := s.db.Exec(`
		INSERT INTO holes (id, course_id, number, par, handicap) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(course_id, number) DO UPDATE SET
			par = excluded.par,
			handicap = excluded.handicap;
	`, uuid.NewString(), courseID, number, par, handicap)
	if err != nil {
		return "", fmt.Errorf("failed to upsert hole %d: %w", number, err)
	}

	var id string
	err = s.db.QueryRow("SELECT id FROM holes WHERE course_id = ? AND number = ?", courseID, number).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to load hole %d: %w", number, err)
	}
	return id, nil
}

func (s *store) SetTeeYardage(teeID, holeID string, yards int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO tee_yardages (tee_id, hole_id, yards) VALUES (?, ?, ?)
		ON CONFLICT(tee_id, hole_id) DO UPDATE SET yards = excluded.yards;
	`, teeID, holeID, yards)
	if err != nil {
		log.Error("Failed to set tee yardage", "error", err, "teeID", teeID, "holeID", holeID)
	}
	return err
}

func (s *store) CoursePars(courseID string) (map[int]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT number, par FROM holes WHERE course_id = ?", courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIntPairs(rows)
}

func (s *store) TeeYardages(teeID string) (map[int]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT h.number, ty.yards
		FROM tee_yardages ty
		JOIN holes h ON h.id = ty.hole_id
		WHERE ty.tee_id = ?
	`, teeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIntPairs(rows)
}

func (s *store) LegacyPars() (map[int]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT hole, par FROM course_pars")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanIntPairs(rows)
}

func (s *store) SetLegacyPar(hole, par int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO course_pars (hole, par) VALUES (?, ?)
		ON CONFLICT(hole) DO UPDATE SET par = excluded.par;
	`, hole, par)
	if err != nil {
		log.Error("Failed to set legacy par", "error", err, "hole", hole)
	}
	return err
}

func scanIntPairs(rows *sql.Rows) (map[int]int, error) {
	out := make(map[int]int)
	for rows.Next() {
		var k, v int
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}
