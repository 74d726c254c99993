// Package memory provides an in-memory container registry. The registry is
// node-local state that does not survive an agent restart, matching the
// lifetime of the containers it tracks.
package memory

import (
	"context"
	"sync"

	containerDomain "github.com/allisson/containertoken/internal/container/domain"
	containerUseCase "github.com/allisson/containertoken/internal/container/usecase"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// containerRepository implements usecase.ContainerRepository with a mutex-guarded map.
type containerRepository struct {
	mu         sync.RWMutex
	containers map[string]containerDomain.Container
}

// NewContainerRepository creates an empty in-memory container repository.
func NewContainerRepository() containerUseCase.ContainerRepository {
	return &containerRepository{
		containers: make(map[string]containerDomain.Container),
	}
}

// Create registers a container. Fails with ErrContainerExists when the ID is taken.
func (r *containerRepository) Create(ctx context.Context, container *containerDomain.Container) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := container.ID.String()
	if _, ok := r.containers[key]; ok {
		return containerDomain.ErrContainerExists
	}

	r.containers[key] = *container
	return nil
}

// Get returns a copy of the registered container.
func (r *containerRepository) Get(
	ctx context.Context,
	id tokenDomain.ContainerID,
) (*containerDomain.Container, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	container, ok := r.containers[id.String()]
	if !ok {
		return nil, containerDomain.ErrContainerNotFound
	}

	return &container, nil
}

// Update replaces the stored container state.
func (r *containerRepository) Update(ctx context.Context, container *containerDomain.Container) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := container.ID.String()
	if _, ok := r.containers[key]; !ok {
		return containerDomain.ErrContainerNotFound
	}

	r.containers[key] = *container
	return nil
}
