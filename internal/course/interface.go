package course

// ParProvider answers par and yardage lookups for the active scoring source.
// The second return is false when the value is not configured.
type ParProvider interface {
	Par(hole int) (int, bool)
	Yardage(hole int) (int, bool)
}

// Store defines the interface for course and par data.
type Store interface {
	GetOrCreateCourse(name string) (Course, error)
	GetOrCreateTee(courseID, name string) (TeeBox, error)
	UpsertHole(courseID string, number, par int, handicap *int) (string, error)
	SetTeeYardage(teeID, holeID string, yards int) error

	CoursePars(courseID string) (map[int]int, error)
	TeeYardages(teeID string) (map[int]int, error)

	// Legacy flat 18-row par table, the fallback when no course is configured.
	LegacyPars() (map[int]int, error)
	SetLegacyPar(hole, par int) error
}
