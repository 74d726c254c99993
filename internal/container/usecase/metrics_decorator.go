package usecase

import (
	"context"
	"time"

	containerDomain "github.com/allisson/containertoken/internal/container/domain"
	"github.com/allisson/containertoken/internal/metrics"
	tokenDomain "github.com/allisson/containertoken/internal/token/domain"
)

// containerUseCaseWithMetrics decorates ContainerUseCase with metrics instrumentation.
type containerUseCaseWithMetrics struct {
	next    ContainerUseCase
	metrics metrics.BusinessMetrics
}

// NewContainerUseCaseWithMetrics wraps a ContainerUseCase with metrics recording.
func NewContainerUseCaseWithMetrics(useCase ContainerUseCase, m metrics.BusinessMetrics) ContainerUseCase {
	return &containerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Start records metrics for container start operations.
func (d *containerUseCaseWithMetrics) Start(
	ctx context.Context,
	identity *tokenDomain.ValidatedIdentity,
) (*containerDomain.Container, error) {
	start := time.Now()
	container, err := d.next.Start(ctx, identity)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "container", "container_start", status)
	d.metrics.RecordDuration(ctx, "container", "container_start", time.Since(start), status)

	return container, err
}

// Status records metrics for container status operations.
func (d *containerUseCaseWithMetrics) Status(
	ctx context.Context,
	identity *tokenDomain.ValidatedIdentity,
	containerID string,
) (*containerDomain.Container, error) {
	start := time.Now()
	container, err := d.next.Status(ctx, identity, containerID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "container", "container_status", status)
	d.metrics.RecordDuration(ctx, "container", "container_status", time.Since(start), status)

	return container, err
}

// Stop records metrics for container stop operations.
func (d *containerUseCaseWithMetrics) Stop(
	ctx context.Context,
	identity *tokenDomain.ValidatedIdentity,
	containerID string,
) (*containerDomain.Container, error) {
	start := time.Now()
	container, err := d.next.Stop(ctx, identity, containerID)

	status := "success"
	if err != nil {
		status = "error"
	}

	d.metrics.RecordOperation(ctx, "container", "container_stop", status)
	d.metrics.RecordDuration(ctx, "container", "container_stop", time.Since(start), status)

	return container, err
}
