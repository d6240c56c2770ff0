package enum

type VerificationStatus string

const (
	VerificationStatusPending  VerificationStatus = "pending"
	VerificationStatusVerified VerificationStatus = "verified"
	VerificationStatusFailed   VerificationStatus = "failed"
)

func (verificationStatus VerificationStatus) String() string {
	return string(verificationStatus)
}

// Terminal reports whether the status ends the verification loop.
func (verificationStatus VerificationStatus) Terminal() bool {
	return verificationStatus == VerificationStatusVerified || verificationStatus == VerificationStatusFailed
}
