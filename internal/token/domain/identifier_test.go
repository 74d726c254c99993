package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContainerID_String(t *testing.T) {
	t.Run("Success_CanonicalForm", func(t *testing.T) {
		appID := uuid.MustParse("018f4e2a-0000-7000-8000-000000000001")
		containerID := ContainerID{ApplicationID: appID, Sequence: 3}

		assert.Equal(t, "container_018f4e2a-0000-7000-8000-000000000001_000003", containerID.String())
	})
}

func TestNewTokenIdentifier(t *testing.T) {
	t.Run("Success_NormalizesTimestampsToUTC", func(t *testing.T) {
		loc := time.FixedZone("UTC+5", 5*3600)
		issued := time.Date(2026, 8, 25, 12, 0, 0, 0, loc)
		expires := issued.Add(10 * time.Minute)

		identifier := NewTokenIdentifier(
			ContainerID{ApplicationID: uuid.New(), Sequence: 1},
			"nm1:1234",
			Resource{MemoryMB: 1024, VCores: 1},
			issued,
			expires,
		)

		assert.Equal(t, time.UTC, identifier.IssuedAt.Location())
		assert.Equal(t, time.UTC, identifier.ExpiresAt.Location())
		assert.True(t, identifier.IssuedAt.Equal(issued))
		assert.True(t, identifier.ExpiresAt.Equal(expires))
	})
}

func TestTokenIdentifier_Equal(t *testing.T) {
	appID := uuid.New()
	base := NewTokenIdentifier(
		ContainerID{ApplicationID: appID, Sequence: 1},
		"nm1:1234",
		Resource{MemoryMB: 1024, VCores: 1},
		time.Now(),
		time.Now().Add(10*time.Minute),
	)

	t.Run("Success_EqualToItself", func(t *testing.T) {
		assert.True(t, base.Equal(base))
	})

	t.Run("Success_ResourceChangeBreaksEquality", func(t *testing.T) {
		modified := base
		modified.Resource.MemoryMB = 2048

		assert.False(t, base.Equal(modified))
	})

	t.Run("Success_KeyVersionChangeBreaksEquality", func(t *testing.T) {
		modified := base
		modified.KeyVersion = 7

		assert.False(t, base.Equal(modified))
	})
}

func TestRequiredKind(t *testing.T) {
	t.Run("Success_ContainerManagerRequiresContainerToken", func(t *testing.T) {
		kind, ok := RequiredKind(ProtocolContainerManager)

		assert.True(t, ok)
		assert.Equal(t, KindContainerToken, kind)
	})

	t.Run("Error_UnknownProtocol", func(t *testing.T) {
		_, ok := RequiredKind(Protocol("JobTraceReplay"))

		assert.False(t, ok)
	})
}
