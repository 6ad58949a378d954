package roster

// Store defines the interface for interacting with the event roster.
type Store interface {
	UpsertPlayer(p PlayerInfo) error
	GetPlayer(playerID string) (*PlayerInfo, error)
	GetAllPlayers() ([]PlayerInfo, error)
	IsKnownPlayer(playerID string) bool
	// DeletePlayer fails with ErrPlayerReferenced while any drive record
	// points at the player.
	DeletePlayer(playerID string) error

	CreateTeam(teamID, name string) error
	GetTeam(teamID string) (*TeamInfo, error)
	ListTeams() ([]TeamInfo, error)
	SetTeeTime(teamID, teeTime string) error
	// DeleteTeam cascades to the team's rounds, scores and drive records.
	DeleteTeam(teamID string) error

	AddPlayerToTeam(teamID, playerID string) error
	RemovePlayerFromTeam(teamID, playerID string) error
	// CurrentMembers re-reads the membership table; callers must not cache
	// the result across writes.
	CurrentMembers(teamID string) ([]PlayerInfo, error)

	Clear()
}
