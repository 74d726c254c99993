package dto

import (
	"encoding/base64"
	"time"

	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// TokenResponse carries a signed container token on the wire. Identifier and
// signature bytes are base64-encoded.
type TokenResponse struct {
	Identifier string    `json:"identifier"`
	Signature  string    `json:"signature"`
	Kind       string    `json:"kind"`
	Service    string    `json:"service"`
	ExpiresAt  time.Time `json:"expires_at"`
	KeyVersion uint32    `json:"key_version"`
}

// MapTokenToResponse builds the wire representation of an issued token.
func MapTokenToResponse(token tokenDomain.Token, identifier tokenDomain.TokenIdentifier) TokenResponse {
	return TokenResponse{
		Identifier: base64.StdEncoding.EncodeToString(token.Identifier),
		Signature:  base64.StdEncoding.EncodeToString(token.Signature),
		Kind:       string(token.Kind),
		Service:    token.Service,
		ExpiresAt:  identifier.ExpiresAt,
		KeyVersion: identifier.KeyVersion,
	}
}

// RotateKeyResponse carries the master key version activated by a rotation.
type RotateKeyResponse struct {
	KeyVersion uint32 `json:"key_version"`
}
