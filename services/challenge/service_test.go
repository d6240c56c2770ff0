package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruachost/domainstack/internal/config"
)

func newTestService(secret string) *challengeService {
	return NewChallengeService(&config.ChallengeConfig{Secret: secret}).(*challengeService)
}

func TestChallengeService_Issue(t *testing.T) {
	// Arrange
	svc := newTestService("test-secret")

	// Act
	challenge, err := svc.Issue()

	// Assert
	require.NoError(t, err)
	assert.GreaterOrEqual(t, challenge.A, 1)
	assert.LessOrEqual(t, challenge.A, 9)
	assert.GreaterOrEqual(t, challenge.B, 1)
	assert.LessOrEqual(t, challenge.B, 9)
	assert.Len(t, challenge.ChallengeID, 16)
	assert.Len(t, challenge.Sig, 64)
}

func TestChallengeService_VerifyRoundTrip(t *testing.T) {
	svc := newTestService("test-secret")

	challenge, err := svc.Issue()
	require.NoError(t, err)

	assert.True(t, svc.Verify(challenge.A+challenge.B, challenge.ChallengeID, challenge.Sig))
}

func TestChallengeService_VerifyWrongAnswer(t *testing.T) {
	svc := newTestService("test-secret")

	challenge, err := svc.Issue()
	require.NoError(t, err)

	assert.False(t, svc.Verify(challenge.A+challenge.B+1, challenge.ChallengeID, challenge.Sig))
	assert.False(t, svc.Verify(-1, challenge.ChallengeID, challenge.Sig))
}

func TestChallengeService_VerifyTamperedSignature(t *testing.T) {
	svc := newTestService("test-secret")

	challenge, err := svc.Issue()
	require.NoError(t, err)

	tampered := "0" + challenge.Sig[1:]
	if tampered == challenge.Sig {
		tampered = "1" + challenge.Sig[1:]
	}

	assert.False(t, svc.Verify(challenge.A+challenge.B, challenge.ChallengeID, tampered))
}

func TestChallengeService_VerifyMalformedInput(t *testing.T) {
	svc := newTestService("test-secret")

	challenge, err := svc.Issue()
	require.NoError(t, err)

	assert.False(t, svc.Verify(challenge.A+challenge.B, "", challenge.Sig))
	assert.False(t, svc.Verify(challenge.A+challenge.B, challenge.ChallengeID, ""))
	assert.False(t, svc.Verify(challenge.A+challenge.B, challenge.ChallengeID, "not-hex"))
	assert.False(t, svc.Verify(challenge.A+challenge.B, "other-challenge-id", challenge.Sig))
}

func TestChallengeService_SecretRotationInvalidatesChallenges(t *testing.T) {
	issued := newTestService("old-secret")
	rotated := newTestService("new-secret")

	challenge, err := issued.Issue()
	require.NoError(t, err)

	assert.True(t, issued.Verify(challenge.A+challenge.B, challenge.ChallengeID, challenge.Sig))
	assert.False(t, rotated.Verify(challenge.A+challenge.B, challenge.ChallengeID, challenge.Sig))
}

func TestChallengeService_VerifyIsStateless(t *testing.T) {
	// a challenge stays valid across repeated checks, there is no
	// server-side store to consume it from
	svc := newTestService("test-secret")

	challenge, err := svc.Issue()
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		assert.True(t, svc.Verify(challenge.A+challenge.B, challenge.ChallengeID, challenge.Sig))
	}
}
