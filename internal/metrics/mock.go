package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
type Mock struct {
	mu sync.Mutex

	ScorecardSaveCount        int
	ScorecardSaveFailureCount int
	FinalizeCount             int
	UnlockCount               int
	LeaderboardBuildCount     int
	LeaderboardDurations      []float64
	SlackSentCount            int
	SlackFailedCount          int
	StartupTime               float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) IncScorecardSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScorecardSaveCount++
}

func (m *Mock) IncScorecardSaveFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ScorecardSaveFailureCount++
}

func (m *Mock) IncFinalizes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeCount++
}

func (m *Mock) IncUnlocks() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnlockCount++
}

func (m *Mock) IncLeaderboardBuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LeaderboardBuildCount++
}

func (m *Mock) ObserveLeaderboardBuildDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LeaderboardDurations = append(m.LeaderboardDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackSentCount++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackFailedCount++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StartupTime = duration
}
