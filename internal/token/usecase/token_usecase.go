package usecase

import (
	"context"
	"time"

	"github.com/allisson/containertoken/internal/token/codec"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
	"github.com/allisson/containertoken/internal/token/service"
)

// tokenUseCase implements TokenUseCase backed by the secret manager and the
// shared key store.
type tokenUseCase struct {
	manager  service.SecretManager
	keys     *service.KeyStore
	tokenTTL time.Duration
	now      clock
}

// NewTokenUseCase creates a TokenUseCase. tokenTTL bounds the validity
// window stamped on issued tokens.
func NewTokenUseCase(
	manager service.SecretManager,
	keys *service.KeyStore,
	tokenTTL time.Duration,
) TokenUseCase {
	return &tokenUseCase{
		manager:  manager,
		keys:     keys,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// newTokenUseCaseWithClock is used by tests to pin the issuance time.
func newTokenUseCaseWithClock(
	manager service.SecretManager,
	keys *service.KeyStore,
	tokenTTL time.Duration,
	now clock,
) TokenUseCase {
	return &tokenUseCase{manager: manager, keys: keys, tokenTTL: tokenTTL, now: now}
}

// Issue stamps the validity window and signs the identifier.
func (u *tokenUseCase) Issue(ctx context.Context, input *IssueTokenInput) (*IssueTokenOutput, error) {
	issuedAt := u.now()
	expiresAt := issuedAt.Add(u.tokenTTL)

	identifier := tokenDomain.NewTokenIdentifier(
		tokenDomain.ContainerID{
			ApplicationID: input.ApplicationID,
			Sequence:      input.ContainerSequence,
		},
		input.NodeAddress,
		tokenDomain.Resource{
			MemoryMB: input.MemoryMB,
			VCores:   input.VCores,
		},
		issuedAt,
		expiresAt,
	)

	token, err := u.manager.Issue(identifier)
	if err != nil {
		return nil, err
	}

	// Decode the signed bytes back so the returned identifier carries the
	// key version the manager stamped, even if a rotation ran concurrently.
	stamped, err := codec.Decode(token.Identifier)
	if err != nil {
		return nil, err
	}

	return &IssueTokenOutput{
		Token:      token,
		Identifier: stamped,
	}, nil
}

// Validate verifies a presented token through the secret manager.
func (u *tokenUseCase) Validate(
	ctx context.Context,
	identifierBytes, signature []byte,
) (*tokenDomain.ValidatedIdentity, error) {
	return u.manager.Validate(identifierBytes, signature)
}

// RotateKey activates a new master key version.
func (u *tokenUseCase) RotateKey(ctx context.Context) (uint32, error) {
	return u.keys.Rotate()
}
