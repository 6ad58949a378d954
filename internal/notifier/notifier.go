package notifier

import "github.com/beeropen/scramble/internal/leaderboard"

// Notifier defines a high-level interface for announcing scoring events.
// This decouples the rest of the application from the specific notification
// provider (e.g., Slack).
type Notifier interface {
	// SendFinalizeNotification announces a team turning in its card.
	SendFinalizeNotification(row leaderboard.Row, dryRun bool) error
	// SendUnlockNotification announces an admin reopening a card.
	SendUnlockNotification(teamName string, dryRun bool) error
	// SendLeaderboard posts the current standings.
	SendLeaderboard(eventName string, rows []leaderboard.Row, dryRun bool) error
}
