package notifier

import (
	"sync"

	"github.com/beeropen/scramble/internal/leaderboard"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	FinalizeCalls    []leaderboard.Row
	UnlockCalls      []string
	LeaderboardCalls [][]leaderboard.Row

	SendFinalizeNotificationFunc func(row leaderboard.Row, dryRun bool) error
	SendLeaderboardFunc          func(eventName string, rows []leaderboard.Row, dryRun bool) error
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeCalls = nil
	m.UnlockCalls = nil
	m.LeaderboardCalls = nil
}

func (m *Mock) SendFinalizeNotification(row leaderboard.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeCalls = append(m.FinalizeCalls, row)
	if m.SendFinalizeNotificationFunc != nil {
		return m.SendFinalizeNotificationFunc(row, dryRun)
	}
	return nil
}

func (m *Mock) SendUnlockNotification(teamName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnlockCalls = append(m.UnlockCalls, teamName)
	return nil
}

func (m *Mock) SendLeaderboard(eventName string, rows []leaderboard.Row, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LeaderboardCalls = append(m.LeaderboardCalls, rows)
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(eventName, rows, dryRun)
	}
	return nil
}
