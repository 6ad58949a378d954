package roster

import (
	"errors"
	"fmt"
	"sync"
)

var errTeamNotFound = errors.New("team not found")

// Mock is a mock implementation of the roster Store for testing.
type Mock struct {
	mu sync.Mutex

	Players map[string]PlayerInfo
	Teams   map[string]TeamInfo

	CurrentMembersFunc func(teamID string) ([]PlayerInfo, error)
	GetTeamFunc        func(teamID string) (*TeamInfo, error)

	DeletePlayerCalls []string
	DeleteTeamCalls   []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		Players: make(map[string]PlayerInfo),
		Teams:   make(map[string]TeamInfo),
	}
}

func (m *Mock) UpsertPlayer(p PlayerInfo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Players[p.ID] = p
	return nil
}

func (m *Mock) GetPlayer(playerID string) (*PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.Players[playerID]
	if !ok {
		return nil, fmt.Errorf("player %s not found", playerID)
	}
	return &p, nil
}

func (m *Mock) GetAllPlayers() ([]PlayerInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var players []PlayerInfo
	for _, p := range m.Players {
		players = append(players, p)
	}
	return players, nil
}

func (m *Mock) IsKnownPlayer(playerID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Players[playerID]
	return ok
}

func (m *Mock) DeletePlayer(playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeletePlayerCalls = append(m.DeletePlayerCalls, playerID)
	delete(m.Players, playerID)
	return nil
}

func (m *Mock) CreateTeam(teamID, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Teams[teamID] = TeamInfo{ID: teamID, Name: name}
	return nil
}

func (m *Mock) GetTeam(teamID string) (*TeamInfo, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Teams[teamID]
	if !ok {
		return nil, errTeamNotFound
	}
	return &t, nil
}

func (m *Mock) ListTeams() ([]TeamInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var teams []TeamInfo
	for _, t := range m.Teams {
		teams = append(teams, t)
	}
	return teams, nil
}

func (m *Mock) SetTeeTime(teamID, teeTime string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.Teams[teamID]
	if ok {
		t.TeeTime = &teeTime
		m.Teams[teamID] = t
	}
	return nil
}

func (m *Mock) DeleteTeam(teamID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteTeamCalls = append(m.DeleteTeamCalls, teamID)
	delete(m.Teams, teamID)
	return nil
}

func (m *Mock) AddPlayerToTeam(teamID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.Teams[teamID]
	if p, ok := m.Players[playerID]; ok {
		t.Players = append(t.Players, p)
		m.Teams[teamID] = t
	}
	return nil
}

func (m *Mock) RemovePlayerFromTeam(teamID, playerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.Teams[teamID]
	var kept []PlayerInfo
	for _, p := range t.Players {
		if p.ID != playerID {
			kept = append(kept, p)
		}
	}
	t.Players = kept
	m.Teams[teamID] = t
	return nil
}

func (m *Mock) CurrentMembers(teamID string) ([]PlayerInfo, error) {
	if m.CurrentMembersFunc != nil {
		return m.CurrentMembersFunc(teamID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Teams[teamID].Players, nil
}

func (m *Mock) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Players = make(map[string]PlayerInfo)
	m.Teams = make(map[string]TeamInfo)
}
