// Package dto provides data transfer objects for container HTTP responses.
package dto

import (
	"time"

	containerDomain "github.com/allisson/containertoken/internal/container/domain"
)

// ContainerResponse is the wire representation of a registered container.
type ContainerResponse struct {
	ContainerID   string     `json:"container_id"`
	ApplicationID string     `json:"application_id"`
	NodeAddress   string     `json:"node_address"`
	MemoryMB      int64      `json:"memory_mb"`
	VCores        int32      `json:"vcores"`
	State         string     `json:"state"`
	StartedAt     time.Time  `json:"started_at"`
	StoppedAt     *time.Time `json:"stopped_at,omitempty"`
}

// MapContainerToResponse builds the wire representation of a container.
func MapContainerToResponse(container *containerDomain.Container) ContainerResponse {
	return ContainerResponse{
		ContainerID:   container.ID.String(),
		ApplicationID: container.ID.ApplicationID.String(),
		NodeAddress:   container.NodeAddress,
		MemoryMB:      container.Resource.MemoryMB,
		VCores:        container.Resource.VCores,
		State:         string(container.State),
		StartedAt:     container.StartedAt,
		StoppedAt:     container.StoppedAt,
	}
}
