package domain

import (
	"github.com/allisson/containertoken/internal/errors"
)

// Token validation error kinds.
//
// All five are terminal for the presentation attempt that produced them:
// the secret manager never retries with a different key or a lenient
// comparison, and the session layer surfaces them verbatim. The split
// lets operators distinguish misconfiguration (ErrKeyNotFound, clock
// skew showing up as ErrTokenExpired) from active tampering
// (ErrSignatureMismatch).
var (
	// ErrMalformedToken indicates the identifier bytes could not be decoded:
	// truncated, carrying trailing garbage, or structurally invalid.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed token")

	// ErrSignatureMismatch indicates the presented signature does not match
	// the one recomputed over the decoded identifier. Either the payload was
	// tampered with or the presenting side signs with an unsynced key.
	ErrSignatureMismatch = errors.Wrap(errors.ErrUnauthorized, "token signature mismatch")

	// ErrTokenExpired indicates the current time is outside the token's
	// validity window.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token outside validity window")

	// ErrKeyNotFound indicates the signing key version referenced by the
	// token was never issued or has been evicted from the retention window.
	ErrKeyNotFound = errors.Wrap(errors.ErrUnauthorized, "signing key version not found")

	// ErrUnauthorizedIdentity indicates a structurally valid, correctly
	// signed token whose identity does not match the operation being
	// requested (wrong service endpoint, wrong container id, wrong kind).
	// Raised by the calling layer, never by the secret manager itself.
	ErrUnauthorizedIdentity = errors.Wrap(errors.ErrForbidden, "token identity does not authorize this operation")
)
