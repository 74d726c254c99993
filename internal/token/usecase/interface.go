// Package usecase orchestrates container token issuance, validation, and
// master key rotation on top of the secret manager service.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// IssueTokenInput carries the container placement to be authorized.
type IssueTokenInput struct {
	ApplicationID     uuid.UUID
	ContainerSequence int32
	NodeAddress       string
	MemoryMB          int64
	VCores            int32
}

// IssueTokenOutput carries the signed wire token and the identifier it was
// built from, with the validity window the issuer applied.
type IssueTokenOutput struct {
	Token      tokenDomain.Token
	Identifier tokenDomain.TokenIdentifier
}

// TokenUseCase defines the business logic for the container token lifecycle.
type TokenUseCase interface {
	// Issue builds a token identifier for the requested placement, stamps
	// the validity window from the configured TTL, and signs it under the
	// active master key.
	Issue(ctx context.Context, input *IssueTokenInput) (*IssueTokenOutput, error)

	// Validate verifies a presented token and returns the authorized
	// identity on success.
	Validate(ctx context.Context, identifierBytes, signature []byte) (*tokenDomain.ValidatedIdentity, error)

	// RotateKey activates a new master key and returns its version.
	// Previously issued tokens remain verifiable while their key version
	// stays inside the retention window.
	RotateKey(ctx context.Context) (uint32, error)
}

// clock is injectable for validity-window tests.
type clock func() time.Time
