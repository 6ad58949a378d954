package scorecard

import (
	"fmt"
	"sync"
)

var _ Store = (*Mock)(nil)

// Mock is an in-memory implementation of the scorecard Store for testing.
type Mock struct {
	mu sync.Mutex

	Rounds map[string]Round       // keyed by teamID + "/" + eventDate
	Scores map[string][]HoleScore // keyed by round ID

	SaveHolesFunc func(roundID string, writes []HoleWrite) error

	FinalizeCalls []string
	UnlockCalls   []string

	nextID int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		Rounds: make(map[string]Round),
		Scores: make(map[string][]HoleScore),
	}
}

func (m *Mock) GetOrCreateRound(teamID, eventDate string) (Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := teamID + "/" + eventDate
	if r, ok := m.Rounds[key]; ok {
		return r, nil
	}
	m.nextID++
	r := Round{ID: fmt.Sprintf("round-%d", m.nextID), TeamID: teamID, EventDate: eventDate}
	m.Rounds[key] = r
	return r, nil
}

func (m *Mock) GetRound(roundID string) (Round, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Rounds {
		if r.ID == roundID {
			return r, nil
		}
	}
	return Round{}, fmt.Errorf("round not found")
}

func (m *Mock) RoundScores(roundID string) ([]HoleScore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]HoleScore(nil), m.Scores[roundID]...), nil
}

func (m *Mock) SaveHoles(roundID string, writes []HoleWrite) error {
	if m.SaveHolesFunc != nil {
		return m.SaveHolesFunc(roundID, writes)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.Rounds {
		if r.ID == roundID && r.IsFinal() {
			return ErrRoundLocked
		}
	}
	for _, w := range writes {
		m.applyWrite(roundID, w)
	}
	return nil
}

func (m *Mock) applyWrite(roundID string, w HoleWrite) {
	scores := m.Scores[roundID]
	for i := range scores {
		if scores[i].Hole == w.Hole {
			scores[i].Strokes = w.Strokes
			switch w.Drive {
			case DriveSet:
				pid := w.DrivePlayerID
				scores[i].DrivePlayerID = &pid
			case DriveClear:
				scores[i].DrivePlayerID = nil
			}
			return
		}
	}
	hs := HoleScore{Hole: w.Hole, Strokes: w.Strokes}
	if w.Drive == DriveSet {
		pid := w.DrivePlayerID
		hs.DrivePlayerID = &pid
	}
	m.Scores[roundID] = append(scores, hs)
}

func (m *Mock) DriveCounts(roundID string) (map[string]int, map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	front := make(map[string]int)
	back := make(map[string]int)
	for _, sc := range m.Scores[roundID] {
		if sc.DrivePlayerID == nil {
			continue
		}
		if sc.Hole <= 9 {
			front[*sc.DrivePlayerID]++
		} else {
			back[*sc.DrivePlayerID]++
		}
	}
	return front, back, nil
}

func (m *Mock) Finalize(roundID, actorID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FinalizeCalls = append(m.FinalizeCalls, roundID)
	for key, r := range m.Rounds {
		if r.ID != roundID {
			continue
		}
		if r.IsFinal() {
			return ErrAlreadyFinal
		}
		now := int64(1)
		r.FinalizedAt = &now
		r.FinalizedBy = &actorID
		m.Rounds[key] = r
		return nil
	}
	return fmt.Errorf("round not found")
}

func (m *Mock) Unlock(roundID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UnlockCalls = append(m.UnlockCalls, roundID)
	for key, r := range m.Rounds {
		if r.ID == roundID {
			r.FinalizedAt = nil
			r.FinalizedBy = nil
			m.Rounds[key] = r
			return nil
		}
	}
	return fmt.Errorf("round not found")
}
