package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// common errors
	ErrConnectionTimeout = errors.New("connection timeout")
	ErrNotConfigured     = errors.New("api configuration is missing")

	// domain errors
	ErrDomainRequired  = errors.New("domain parameter is required")
	ErrDomainInvalid   = errors.New("invalid domain name")
	ErrDomainNotFound  = errors.New("domain not found")
	ErrPricingNotFound = errors.New("no pricing data found for tld")

	// challenge errors
	ErrChallengeInvalid    = errors.New("invalid challenge response")
	ErrChallengeIncomplete = errors.New("challenge validation failed")

	// order errors
	ErrOrderNotFound      = errors.New("order not found")
	ErrClientCreateFailed = errors.New("failed to create client")

	// payment errors
	ErrSignatureMissing = errors.New("missing signature")
	ErrSignatureInvalid = errors.New("invalid signature")
	ErrPaymentFailed    = errors.New("payment verification failed")
)

// ValidationError marks request payloads that fail field-level checks,
// so handlers can map them to a 400 instead of a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
