package auth

// Mock is a configurable Identity for testing.
type Mock struct {
	Admins  map[string]bool
	Members map[string]bool // key: teamID + "/" + actorID
	Scorers map[string]bool // key: teamID + "/" + actorID
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		Admins:  make(map[string]bool),
		Members: make(map[string]bool),
		Scorers: make(map[string]bool),
	}
}

// AddMember registers an actor on a team, optionally with scoring capability.
func (m *Mock) AddMember(teamID, actorID string, canScore bool) {
	m.Members[teamID+"/"+actorID] = true
	if canScore {
		m.Scorers[teamID+"/"+actorID] = true
	}
}

func (m *Mock) IsAdministrator(actorID string) bool {
	return m.Admins[actorID]
}

func (m *Mock) IsTeamMember(actorID, teamID string) bool {
	return m.Members[teamID+"/"+actorID]
}

func (m *Mock) HasScoringCapability(actorID, teamID string) bool {
	return m.Scorers[teamID+"/"+actorID]
}
