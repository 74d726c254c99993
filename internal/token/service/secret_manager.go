package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"io"
	"time"

	"golang.org/x/crypto/hkdf"

	apperrors "github.com/allisson/containertoken/internal/errors"
	"github.com/allisson/containertoken/internal/token/codec"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// secretManager implements SecretManager using HKDF-SHA256 for signing key
// derivation and HMAC-SHA256 for signature generation, against a KeyStore
// shared with the rotation path.
type secretManager struct {
	keys *KeyStore
	now  func() time.Time
}

// NewSecretManager creates a secret manager backed by the given key store.
func NewSecretManager(keys *KeyStore) SecretManager {
	return &secretManager{
		keys: keys,
		now:  time.Now,
	}
}

// newSecretManagerWithClock is used by tests to control the validity-window check.
func newSecretManagerWithClock(keys *KeyStore, now func() time.Time) SecretManager {
	return &secretManager{keys: keys, now: now}
}

// Issue signs the identifier under the active master key.
func (m *secretManager) Issue(identifier tokenDomain.TokenIdentifier) (tokenDomain.Token, error) {
	version, secret := m.keys.Current()
	defer zero(secret)

	identifier.KeyVersion = version
	canonical := codec.Encode(identifier)

	signature, err := sign(secret, canonical)
	if err != nil {
		return tokenDomain.Token{}, err
	}

	return tokenDomain.Token{
		Identifier: canonical,
		Signature:  signature,
		Kind:       tokenDomain.KindContainerToken,
		Service:    identifier.NodeAddress,
	}, nil
}

// Validate verifies a presented token as described on the SecretManager
// interface. The expected signature is always recomputed over the
// re-encoded decoded identifier, so a payload edit that reuses the
// original signature fails the constant-time comparison.
func (m *secretManager) Validate(
	identifierBytes, signature []byte,
) (*tokenDomain.ValidatedIdentity, error) {
	identifier, err := codec.Decode(identifierBytes)
	if err != nil {
		return nil, err
	}

	secret, err := m.keys.Get(identifier.KeyVersion)
	if err != nil {
		return nil, err
	}
	defer zero(secret)

	canonical := codec.Encode(identifier)
	expected, err := sign(secret, canonical)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal(signature, expected) {
		return nil, tokenDomain.ErrSignatureMismatch
	}

	now := m.now()
	if now.Before(identifier.IssuedAt) || now.After(identifier.ExpiresAt) {
		return nil, tokenDomain.ErrTokenExpired
	}

	return &tokenDomain.ValidatedIdentity{
		ContainerID:   identifier.ContainerID,
		ApplicationID: identifier.ContainerID.ApplicationID,
		NodeAddress:   identifier.NodeAddress,
		Resource:      identifier.Resource,
		ExpiresAt:     identifier.ExpiresAt,
	}, nil
}

// deriveSigningKey uses HKDF-SHA256 to derive a 32-byte signing key from a
// master key secret. Separates master key usage from signing key usage.
// Info parameter is versioned for future algorithm changes.
func deriveSigningKey(secret []byte) ([]byte, error) {
	info := []byte("container-token-signing-v1")
	kdf := hkdf.New(sha256.New, secret, nil, info)

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(kdf, signingKey); err != nil {
		return nil, apperrors.Wrap(err, "failed to derive signing key")
	}

	return signingKey, nil
}

// sign computes the HMAC-SHA256 signature of canonical identifier bytes.
func sign(secret, canonical []byte) ([]byte, error) {
	signingKey, err := deriveSigningKey(secret)
	if err != nil {
		return nil, err
	}
	defer zero(signingKey)

	mac := hmac.New(sha256.New, signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}
