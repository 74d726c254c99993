package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/allisson/containertoken/internal/errors"
	"github.com/allisson/containertoken/internal/token/service"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestUseCase(t *testing.T, ttl time.Duration) (TokenUseCase, *service.KeyStore) {
	t.Helper()

	keys, err := service.NewKeyStore(2, nil)
	require.NoError(t, err)
	t.Cleanup(keys.Close)

	manager := service.NewSecretManager(keys)
	return NewTokenUseCase(manager, keys, ttl), keys
}

func newTestInput() *IssueTokenInput {
	return &IssueTokenInput{
		ApplicationID:     uuid.Must(uuid.NewV7()),
		ContainerSequence: 1,
		NodeAddress:       "nm1:1234",
		MemoryMB:          1024,
		VCores:            1,
	}
}

func TestTokenUseCase_Issue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_IssuesSignedToken", func(t *testing.T) {
		t.Parallel()
		useCase, _ := newTestUseCase(t, 10*time.Minute)
		input := newTestInput()

		output, err := useCase.Issue(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, tokenDomain.KindContainerToken, output.Token.Kind)
		assert.Equal(t, "nm1:1234", output.Token.Service)
		assert.NotEmpty(t, output.Token.Identifier)
		assert.NotEmpty(t, output.Token.Signature)
		assert.Equal(t, input.ApplicationID, output.Identifier.ContainerID.ApplicationID)
		assert.Equal(t, input.ContainerSequence, output.Identifier.ContainerID.Sequence)
		assert.Equal(t, int64(1024), output.Identifier.Resource.MemoryMB)
	})

	t.Run("Success_StampsValidityWindowFromTTL", func(t *testing.T) {
		t.Parallel()
		keys, err := service.NewKeyStore(2, nil)
		require.NoError(t, err)
		t.Cleanup(keys.Close)

		issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		useCase := newTokenUseCaseWithClock(
			service.NewSecretManager(keys),
			keys,
			time.Minute,
			func() time.Time { return issuedAt },
		)

		output, err := useCase.Issue(ctx, newTestInput())

		require.NoError(t, err)
		assert.True(t, output.Identifier.IssuedAt.Equal(issuedAt))
		assert.True(t, output.Identifier.ExpiresAt.Equal(issuedAt.Add(time.Minute)))
	})

	t.Run("Success_IdentifierCarriesActiveKeyVersion", func(t *testing.T) {
		t.Parallel()
		useCase, keys := newTestUseCase(t, 10*time.Minute)

		_, err := keys.Rotate()
		require.NoError(t, err)

		output, err := useCase.Issue(ctx, newTestInput())
		require.NoError(t, err)

		version, _ := keys.Current()
		assert.Equal(t, version, output.Identifier.KeyVersion)
	})
}

func TestTokenUseCase_Validate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		t.Parallel()
		useCase, _ := newTestUseCase(t, 10*time.Minute)
		input := newTestInput()

		output, err := useCase.Issue(ctx, input)
		require.NoError(t, err)

		identity, err := useCase.Validate(ctx, output.Token.Identifier, output.Token.Signature)

		require.NoError(t, err)
		assert.Equal(t, input.ApplicationID, identity.ApplicationID)
		assert.Equal(t, input.NodeAddress, identity.NodeAddress)
		assert.Equal(t, int64(1024), identity.Resource.MemoryMB)
	})

	t.Run("Error_MalformedIdentifier", func(t *testing.T) {
		t.Parallel()
		useCase, _ := newTestUseCase(t, 10*time.Minute)

		identity, err := useCase.Validate(ctx, []byte{0xff, 0x00}, []byte("sig"))

		assert.Nil(t, identity)
		assert.ErrorIs(t, err, tokenDomain.ErrMalformedToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})
}

func TestTokenUseCase_RotateKey(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_ActivatesNewVersion", func(t *testing.T) {
		t.Parallel()
		useCase, keys := newTestUseCase(t, 10*time.Minute)

		before, _ := keys.Current()
		version, err := useCase.RotateKey(ctx)

		require.NoError(t, err)
		assert.Equal(t, before+1, version)
	})

	t.Run("Success_TokensSurviveRotationWithinRetention", func(t *testing.T) {
		t.Parallel()
		useCase, _ := newTestUseCase(t, 10*time.Minute)

		output, err := useCase.Issue(ctx, newTestInput())
		require.NoError(t, err)

		_, err = useCase.RotateKey(ctx)
		require.NoError(t, err)

		_, err = useCase.Validate(ctx, output.Token.Identifier, output.Token.Signature)
		assert.NoError(t, err)
	})
}
