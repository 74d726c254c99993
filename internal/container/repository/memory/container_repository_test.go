package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	containerDomain "github.com/allisson/containertoken/internal/container/domain"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

func newTestContainer(sequence int32) *containerDomain.Container {
	return &containerDomain.Container{
		ID: tokenDomain.ContainerID{
			ApplicationID: uuid.Must(uuid.NewV7()),
			Sequence:      sequence,
		},
		NodeAddress: "nm1:1234",
		Resource:    tokenDomain.Resource{MemoryMB: 1024, VCores: 1},
		State:       containerDomain.StateRunning,
	}
}

func TestContainerRepository_Create(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_CreatesContainer", func(t *testing.T) {
		t.Parallel()
		repository := NewContainerRepository()
		container := newTestContainer(1)

		require.NoError(t, repository.Create(ctx, container))

		got, err := repository.Get(ctx, container.ID)
		require.NoError(t, err)
		assert.Equal(t, container.ID, got.ID)
	})

	t.Run("Error_DuplicateID", func(t *testing.T) {
		t.Parallel()
		repository := NewContainerRepository()
		container := newTestContainer(1)

		require.NoError(t, repository.Create(ctx, container))

		err := repository.Create(ctx, container)
		assert.ErrorIs(t, err, containerDomain.ErrContainerExists)
	})
}

func TestContainerRepository_Get(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Error_NotFound", func(t *testing.T) {
		t.Parallel()
		repository := NewContainerRepository()

		_, err := repository.Get(ctx, newTestContainer(1).ID)

		assert.ErrorIs(t, err, containerDomain.ErrContainerNotFound)
	})

	t.Run("Success_ReturnsCopy", func(t *testing.T) {
		t.Parallel()
		repository := NewContainerRepository()
		container := newTestContainer(1)
		require.NoError(t, repository.Create(ctx, container))

		got, err := repository.Get(ctx, container.ID)
		require.NoError(t, err)

		// Mutating the returned value must not affect the stored one.
		got.State = containerDomain.StateStopped

		stored, err := repository.Get(ctx, container.ID)
		require.NoError(t, err)
		assert.Equal(t, containerDomain.StateRunning, stored.State)
	})
}

func TestContainerRepository_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_UpdatesState", func(t *testing.T) {
		t.Parallel()
		repository := NewContainerRepository()
		container := newTestContainer(1)
		require.NoError(t, repository.Create(ctx, container))

		container.State = containerDomain.StateStopped
		require.NoError(t, repository.Update(ctx, container))

		got, err := repository.Get(ctx, container.ID)
		require.NoError(t, err)
		assert.Equal(t, containerDomain.StateStopped, got.State)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		t.Parallel()
		repository := NewContainerRepository()

		err := repository.Update(ctx, newTestContainer(1))

		assert.ErrorIs(t, err, containerDomain.ErrContainerNotFound)
	})
}

func TestContainerRepository_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repository := NewContainerRepository()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(sequence int32) {
			defer wg.Done()
			container := newTestContainer(sequence)
			assert.NoError(t, repository.Create(ctx, container))

			_, err := repository.Get(ctx, container.ID)
			assert.NoError(t, err)
		}(int32(i))
	}
	wg.Wait()
}
