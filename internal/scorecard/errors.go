package scorecard

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPermissionDenied means the actor lacks view/edit/finalize/unlock
	// rights for the target round.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrRoundLocked means a write was attempted on a finalized round.
	ErrRoundLocked = errors.New("scorecard is locked")

	// ErrAlreadyFinal means finalize was called on a round that is already
	// final; the call is a no-op.
	ErrAlreadyFinal = errors.New("round is already final")

	// ErrNotFinal means unlock was called on a round that is not locked.
	ErrNotFinal = errors.New("round is not final")
)

// FinalizeError enumerates everything blocking a finalize: holes without a
// stroke count and members without a drive on each nine.
type FinalizeError struct {
	MissingHoles []int    `json:"missing_holes,omitempty"`
	MissingFront []string `json:"missing_front,omitempty"` // player names
	MissingBack  []string `json:"missing_back,omitempty"`
}

func (e *FinalizeError) Error() string {
	var parts []string
	if len(e.MissingHoles) > 0 {
		parts = append(parts, fmt.Sprintf("%d/18 holes missing scores", len(e.MissingHoles)))
	}
	if len(e.MissingFront) > 0 {
		parts = append(parts, "front nine missing drive from: "+strings.Join(e.MissingFront, ", "))
	}
	if len(e.MissingBack) > 0 {
		parts = append(parts, "back nine missing drive from: "+strings.Join(e.MissingBack, ", "))
	}
	return "cannot finalize: " + strings.Join(parts, "; ")
}
