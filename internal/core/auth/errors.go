package auth

import "fmt"

// Reason enumerates why a bearer token failed verification (spec §4.1).
type Reason string

const (
	ReasonMissing      Reason = "missing"
	ReasonMalformed    Reason = "malformed"
	ReasonExpired      Reason = "expired"
	ReasonBadSignature Reason = "bad_signature"
	ReasonBadAudience  Reason = "bad_audience"
)

// UnauthenticatedError is returned by a Verifier on any validation failure.
// It never wraps details that would help an attacker distinguish token
// shapes beyond the coarse Reason (spec §7: Forbidden/NotFound never
// reveal why; the same discipline applies here to Unauthenticated).
type UnauthenticatedError struct {
	Reason Reason
}

func (e *UnauthenticatedError) Error() string {
	return fmt.Sprintf("unauthenticated: %s", e.Reason)
}

func newUnauthenticated(reason Reason) error {
	return &UnauthenticatedError{Reason: reason}
}
