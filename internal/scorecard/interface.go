package scorecard

// DriveOp says what a hole write does to the drive record.
type DriveOp int

const (
	// DriveKeep leaves any existing drive record untouched.
	DriveKeep DriveOp = iota
	// DriveSet upserts the drive record to DrivePlayerID.
	DriveSet
	// DriveClear deletes any existing drive record.
	DriveClear
)

// HoleWrite is one validated hole mutation, ready for the store.
type HoleWrite struct {
	Hole          int
	Strokes       *int
	Drive         DriveOp
	DrivePlayerID string
}

// Store defines the persistence interface for rounds, scores and drives.
type Store interface {
	// GetOrCreateRound returns the unique round for (team, event date),
	// creating it lazily on first access.
	GetOrCreateRound(teamID, eventDate string) (Round, error)
	GetRound(roundID string) (Round, error)
	// RoundScores returns the existing score rows (holes without a row yet
	// are simply absent).
	RoundScores(roundID string) ([]HoleScore, error)
	// SaveHoles applies a batch of hole writes in a single transaction.
	// It fails with ErrRoundLocked, touching nothing, if the round is final.
	SaveHoles(roundID string, writes []HoleWrite) error
	// DriveCounts returns drives used per player on the front and back nine.
	DriveCounts(roundID string) (front, back map[string]int, err error)
	// Finalize stamps the lock fields; fails with ErrAlreadyFinal if set.
	Finalize(roundID, actorID string) error
	// Unlock clears both lock fields atomically.
	Unlock(roundID string) error
}
