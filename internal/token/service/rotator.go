package service

import (
	"context"
	"log/slog"
	"time"
)

// KeyRotationSource is the slice of the token use case the rotator needs.
type KeyRotationSource interface {
	RotateKey(ctx context.Context) (uint32, error)
}

// Rotator triggers a master key rotation on a fixed interval. It is the
// time-driven counterpart to the operator-driven admin rotation endpoint;
// both funnel through the same use case so rotations are observable either
// way.
type Rotator struct {
	source   KeyRotationSource
	interval time.Duration
	logger   *slog.Logger
}

// NewRotator creates a rotator. The interval must be positive; callers
// gate construction on configuration.
func NewRotator(source KeyRotationSource, interval time.Duration, logger *slog.Logger) *Rotator {
	return &Rotator{
		source:   source,
		interval: interval,
		logger:   logger,
	}
}

// Run rotates on every tick until the context is cancelled. It blocks and
// is meant to be started in its own goroutine by the server command.
func (r *Rotator) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("key rotator started", slog.Duration("interval", r.interval))

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("key rotator stopped")
			return
		case <-ticker.C:
			version, err := r.source.RotateKey(ctx)
			if err != nil {
				r.logger.Error("scheduled key rotation failed", slog.Any("error", err))
				continue
			}
			r.logger.Info("master key rotated", slog.Uint64("version", uint64(version)))
		}
	}
}
