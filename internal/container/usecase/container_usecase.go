package usecase

import (
	"context"
	"time"

	containerDomain "github.com/allisson/containertoken/internal/container/domain"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// containerUseCase implements ContainerUseCase against a container repository.
type containerUseCase struct {
	repository ContainerRepository
	now        func() time.Time
}

// NewContainerUseCase creates a ContainerUseCase backed by the given repository.
func NewContainerUseCase(repository ContainerRepository) ContainerUseCase {
	return &containerUseCase{
		repository: repository,
		now:        time.Now,
	}
}

// Start registers the identity's container as running.
func (u *containerUseCase) Start(
	ctx context.Context,
	identity *tokenDomain.ValidatedIdentity,
) (*containerDomain.Container, error) {
	container := &containerDomain.Container{
		ID:          identity.ContainerID,
		NodeAddress: identity.NodeAddress,
		Resource:    identity.Resource,
		State:       containerDomain.StateRunning,
		StartedAt:   u.now().UTC(),
	}

	if err := u.repository.Create(ctx, container); err != nil {
		return nil, err
	}

	return container, nil
}

// Status returns the registered container after checking the identity names it.
func (u *containerUseCase) Status(
	ctx context.Context,
	identity *tokenDomain.ValidatedIdentity,
	containerID string,
) (*containerDomain.Container, error) {
	if err := authorize(identity, containerID); err != nil {
		return nil, err
	}

	return u.repository.Get(ctx, identity.ContainerID)
}

// Stop transitions the container to the stopped state.
func (u *containerUseCase) Stop(
	ctx context.Context,
	identity *tokenDomain.ValidatedIdentity,
	containerID string,
) (*containerDomain.Container, error) {
	if err := authorize(identity, containerID); err != nil {
		return nil, err
	}

	container, err := u.repository.Get(ctx, identity.ContainerID)
	if err != nil {
		return nil, err
	}

	if container.State != containerDomain.StateStopped {
		stoppedAt := u.now().UTC()
		container.State = containerDomain.StateStopped
		container.StoppedAt = &stoppedAt

		if err := u.repository.Update(ctx, container); err != nil {
			return nil, err
		}
	}

	return container, nil
}

// authorize checks that the session identity names the requested container.
func authorize(identity *tokenDomain.ValidatedIdentity, containerID string) error {
	if identity.ContainerID.String() != containerID {
		return tokenDomain.ErrUnauthorizedIdentity
	}
	return nil
}
