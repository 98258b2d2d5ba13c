package service

import "time"

// Claims is the verified content of a bearer token.
type Claims struct {
	Subject   string    // The identity string embedded in the token ("sub").
	ExpiresAt time.Time // Absolute expiry ("exp").
}

// VerifyFailure names why a token failed verification. The delivery layer
// treats every failure identically; the reason exists for internal diagnostics only.
type VerifyFailure string

const (
	// FailureNone means the token verified successfully.
	FailureNone VerifyFailure = ""
	// FailureMalformed means the token could not be parsed at all.
	FailureMalformed VerifyFailure = "malformed"
	// FailureExpired means the token's exp claim is in the past.
	FailureExpired VerifyFailure = "expired"
	// FailureSignature means the signature did not match the signing secret.
	FailureSignature VerifyFailure = "signature"
)

// VerifyResult is the typed outcome of token verification: either valid claims
// or an invalid sentinel with an internal failure reason. Callers must treat
// any invalid result as "not authenticated" without distinguishing the cause.
type VerifyResult struct {
	Claims  *Claims
	Failure VerifyFailure
}

// Valid reports whether the token verified successfully.
func (r VerifyResult) Valid() bool {
	return r.Failure == FailureNone
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	// Issue signs the given claims with the configured secret and the default
	// TTL. Claims must include "sub"; a non-string subject is coerced to its
	// decimal string form before signing so later lookups can rely on exact
	// string equality.
	Issue(claims map[string]any) (string, error)

	// IssueWithTTL is Issue with an explicit time-to-live.
	IssueWithTTL(claims map[string]any, ttl time.Duration) (string, error)

	// Verify checks signature and expiry. It never panics and never lets a
	// signature-library error escape; all failures collapse into the result's
	// Failure field.
	Verify(token string) VerifyResult
}
