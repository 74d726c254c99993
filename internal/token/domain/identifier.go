// Package domain defines the core types for container launch tokens: the
// signed token identifier, the wire token, and the validated identity a
// successful verification produces.
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Resource is the resource grant a token authorizes for one container.
type Resource struct {
	MemoryMB int64 `json:"memory_mb"`
	VCores   int32 `json:"vcores"`
}

// ContainerID uniquely identifies a container within the cluster.
// Containers are numbered sequentially inside their owning application.
type ContainerID struct {
	ApplicationID uuid.UUID `json:"application_id"`
	Sequence      int32     `json:"sequence"`
}

// String returns the canonical textual form, e.g.
// "container_018f4e2a-0000-7000-8000-000000000001_000003".
func (c ContainerID) String() string {
	return fmt.Sprintf("container_%s_%06d", c.ApplicationID, c.Sequence)
}

// TokenIdentifier is the signed payload inside a container token.
//
// It is an immutable value: any change to a field produces a logically
// distinct identifier with a different canonical encoding, which is what
// makes field tampering detectable during signature verification.
type TokenIdentifier struct {
	// ContainerID is the container this token authorizes, including the
	// owning application.
	ContainerID ContainerID

	// NodeAddress is the "host:port" of the node agent the container was
	// allocated to. A token is only valid against this endpoint.
	NodeAddress string

	// Resource is the granted resource amount.
	Resource Resource

	// IssuedAt and ExpiresAt bound the validity window. Both are UTC with
	// nanosecond precision.
	IssuedAt  time.Time
	ExpiresAt time.Time

	// KeyVersion is the version of the master key that signed this
	// identifier. Set by the secret manager at issue time.
	KeyVersion uint32
}

// NewTokenIdentifier builds an identifier with normalized timestamps (UTC,
// monotonic clock reading stripped) so that encode/decode round trips
// compare equal.
func NewTokenIdentifier(
	containerID ContainerID,
	nodeAddress string,
	resource Resource,
	issuedAt, expiresAt time.Time,
) TokenIdentifier {
	return TokenIdentifier{
		ContainerID: containerID,
		NodeAddress: nodeAddress,
		Resource:    resource,
		IssuedAt:    issuedAt.UTC().Round(0),
		ExpiresAt:   expiresAt.UTC().Round(0),
	}
}

// Equal reports whether two identifiers carry the same fields. Timestamps
// are compared with time.Time.Equal to sidestep wall/monotonic clock
// representation differences.
func (t TokenIdentifier) Equal(other TokenIdentifier) bool {
	return t.ContainerID == other.ContainerID &&
		t.NodeAddress == other.NodeAddress &&
		t.Resource == other.Resource &&
		t.IssuedAt.Equal(other.IssuedAt) &&
		t.ExpiresAt.Equal(other.ExpiresAt) &&
		t.KeyVersion == other.KeyVersion
}

// ValidatedIdentity is the result of a successful token validation.
//
// It carries only the verified fields; the caller is responsible for
// asserting them against the operation it is authorizing (e.g. the
// container id named in a request must equal ContainerID).
type ValidatedIdentity struct {
	ContainerID   ContainerID
	ApplicationID uuid.UUID
	NodeAddress   string
	Resource      Resource
	ExpiresAt     time.Time
}
