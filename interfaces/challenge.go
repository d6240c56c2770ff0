package interfaces

import "github.com/ruachost/domainstack/dto"

type ChallengeService interface {
	// Issue creates a fresh arithmetic challenge signed with the server key.
	Issue() (*dto.Challenge, error)
	// Verify re-derives challenge validity from the signature and checks the
	// answer. It reports only pass/fail, never which part was wrong.
	Verify(answer int, challengeID, sig string) bool
}
