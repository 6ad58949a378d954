package leaderboard

// Store defines the read side the ranking engine runs over.
type Store interface {
	// TeamRounds returns every team with its scored holes for the event
	// date. Teams without a round (or without any scored hole) are included
	// with an empty Strokes map so they still appear on the board.
	TeamRounds(eventDate string) ([]TeamRound, error)
}
