// Package usecase implements the container lifecycle operations exposed to
// token-authenticated sessions.
package usecase

import (
	"context"

	containerDomain "github.com/allisson/containertoken/internal/container/domain"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// ContainerRepository defines the interface for container registry persistence.
type ContainerRepository interface {
	Create(ctx context.Context, container *containerDomain.Container) error
	Get(ctx context.Context, id tokenDomain.ContainerID) (*containerDomain.Container, error)
	Update(ctx context.Context, container *containerDomain.Container) error
}

// ContainerUseCase defines the container lifecycle business logic.
//
// Every operation takes the identity bound by the session middleware and the
// container ID from the request path. An identity may only act on the
// container its token names; a mismatch fails with ErrUnauthorizedIdentity
// before the registry is touched.
type ContainerUseCase interface {
	// Start registers the identity's container as running with the resource
	// grant carried by its token.
	Start(ctx context.Context, identity *tokenDomain.ValidatedIdentity) (*containerDomain.Container, error)

	// Status returns the registered container named by containerID.
	Status(
		ctx context.Context,
		identity *tokenDomain.ValidatedIdentity,
		containerID string,
	) (*containerDomain.Container, error)

	// Stop transitions the container named by containerID to the stopped state.
	Stop(
		ctx context.Context,
		identity *tokenDomain.ValidatedIdentity,
		containerID string,
	) (*containerDomain.Container, error)
}
