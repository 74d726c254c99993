// Package service implements the container token secret manager: master key
// storage with rotation, HMAC signing of canonical identifier bytes, and
// single-shot verification of presented tokens.
package service

import (
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// SecretManager issues and validates container launch tokens.
//
// Both operations are pure and bounded-latency: no I/O, no blocking waits,
// no internal retries. A failed validation is terminal for that
// presentation attempt. Implementations must be safe for concurrent use
// from session-handshake paths while rotation runs.
type SecretManager interface {
	// Issue signs the identifier's canonical bytes with the active master
	// key and returns the wire token. The identifier's KeyVersion field is
	// overwritten with the active version before encoding.
	Issue(identifier tokenDomain.TokenIdentifier) (tokenDomain.Token, error)

	// Validate verifies a presented token. It decodes the identifier bytes,
	// re-encodes the decoded fields canonically, recomputes the signature
	// under the key version the identifier references, compares it against
	// the presented signature in constant time, and checks the validity
	// window. The signature is never checked against raw presented bytes
	// that were not round-tripped through decode/encode, so any field
	// tampering is caught even when the tampered encoding is structurally
	// valid.
	//
	// Failure kinds, in evaluation order: ErrMalformedToken,
	// ErrKeyNotFound, ErrSignatureMismatch, ErrTokenExpired.
	Validate(identifierBytes, signature []byte) (*tokenDomain.ValidatedIdentity, error)
}
