package event

// SettingsStore owns the singleton event configuration row.
type SettingsStore interface {
	// Load returns the settings row, creating it with defaults if absent.
	Load() (Settings, error)
	SetLeaderboardPublic(public bool) error
	SetEventDate(date string) error
	SetScoringCourse(courseID, teeID *string) error
}
