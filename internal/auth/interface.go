package auth

// Identity exposes the opaque permission predicates the scoring engine needs.
// The engine never inspects accounts directly.
type Identity interface {
	IsAdministrator(actorID string) bool
	IsTeamMember(actorID, teamID string) bool
	HasScoringCapability(actorID, teamID string) bool
}
