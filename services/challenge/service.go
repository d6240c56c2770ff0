package challenge

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/ruachost/domainstack/dto"
	"github.com/ruachost/domainstack/interfaces"
	"github.com/ruachost/domainstack/internal/config"
)

const (
	operandMin = 1
	operandMax = 9
)

// Signer produces a keyed MAC over a challenge payload. The verification
// loop only depends on this contract, so the algorithm can be swapped
// without touching it.
type Signer interface {
	Sign(payload string) string
}

type hmacSigner struct {
	secret []byte
}

func (s *hmacSigner) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

type challengeService struct {
	signer Signer
}

func NewChallengeService(cfg *config.ChallengeConfig) interfaces.ChallengeService {
	return &challengeService{
		signer: &hmacSigner{secret: []byte(cfg.Secret)},
	}
}

// NewChallengeServiceWithSigner is used by tests and callers that need a
// different MAC.
func NewChallengeServiceWithSigner(signer Signer) interfaces.ChallengeService {
	return &challengeService{signer: signer}
}

func (s *challengeService) Issue() (*dto.Challenge, error) {
	a, err := randomOperand()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create challenge")
	}
	b, err := randomOperand()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create challenge")
	}

	idBytes := make([]byte, 8)
	if _, err = rand.Read(idBytes); err != nil {
		return nil, errors.Wrap(err, "failed to create challenge")
	}
	challengeID := hex.EncodeToString(idBytes)

	return &dto.Challenge{
		A:           a,
		B:           b,
		ChallengeID: challengeID,
		Sig:         s.signer.Sign(payload(a, b, challengeID)),
	}, nil
}

// Verify brute-forces all 81 operand pairs against the provided signature.
// There is no server-side challenge store to look up, validity is re-derived
// entirely from the keyed MAC. hmac.Equal is constant time per candidate and
// returns false on length mismatch without panicking.
func (s *challengeService) Verify(answer int, challengeID, sig string) bool {
	if challengeID == "" || sig == "" {
		return false
	}

	sigBytes := []byte(sig)
	valid := false
	for x := operandMin; x <= operandMax && !valid; x++ {
		for y := operandMin; y <= operandMax && !valid; y++ {
			expected := s.signer.Sign(payload(x, y, challengeID))
			if hmac.Equal([]byte(expected), sigBytes) {
				valid = answer == x+y
			}
		}
	}
	return valid
}

func payload(a, b int, challengeID string) string {
	return fmt.Sprintf("%d:%d:%s", a, b, challengeID)
}

func randomOperand() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(operandMax-operandMin+1))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + operandMin, nil
}
