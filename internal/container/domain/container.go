// Package domain defines the container registry entities tracked by the
// node agent after a token-authenticated session is established.
package domain

import (
	"time"

	apperrors "github.com/allisson/containertoken/internal/errors"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// State represents the lifecycle state of a container on this node.
type State string

const (
	// StateRunning marks a container that was started and not yet stopped.
	StateRunning State = "RUNNING"
	// StateStopped marks a container that completed or was stopped.
	StateStopped State = "STOPPED"
)

// Container tracks a launched container and the resource grant its token
// carried.
type Container struct {
	ID          tokenDomain.ContainerID `json:"id"`
	NodeAddress string                  `json:"node_address"`
	Resource    tokenDomain.Resource    `json:"resource"`
	State       State                   `json:"state"`
	StartedAt   time.Time               `json:"started_at"`
	StoppedAt   *time.Time              `json:"stopped_at,omitempty"`
}

var (
	// ErrContainerNotFound indicates the container is not registered on this node.
	ErrContainerNotFound = apperrors.Wrap(apperrors.ErrNotFound, "container not found")

	// ErrContainerExists indicates a start request for an already running container.
	ErrContainerExists = apperrors.Wrap(apperrors.ErrConflict, "container already started")
)
