package leaderboard

import "sync"

var _ Store = (*Mock)(nil)

// Mock is a mock implementation of the leaderboard Store for testing.
type Mock struct {
	mu sync.Mutex

	Rounds []TeamRound

	TeamRoundsFunc func(eventDate string) ([]TeamRound, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) TeamRounds(eventDate string) ([]TeamRound, error) {
	if m.TeamRoundsFunc != nil {
		return m.TeamRoundsFunc(eventDate)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TeamRound(nil), m.Rounds...), nil
}
