package course

import (
	"database/sql"
	"sync"
)

// store handles course, tee and hole data.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Course is a golf course that can be configured as the scoring course.
type Course struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	State string `json:"state,omitempty"`
}

// TeeBox is a named set of tees on a course (Blue, White, ...).
type TeeBox struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Name     string `json:"name"`
}

// HoleInfo is one hole of a course.
type HoleInfo struct {
	ID       string `json:"id"`
	CourseID string `json:"course_id"`
	Number   int    `json:"number"`
	Par      int    `json:"par"`
	Handicap *int   `json:"handicap,omitempty"`
}
