package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// countingSource counts rotations and hands out increasing versions.
type countingSource struct {
	calls atomic.Uint32
}

func (c *countingSource) RotateKey(ctx context.Context) (uint32, error) {
	return c.calls.Add(1), nil
}

func TestRotator_Run(t *testing.T) {
	t.Run("Success_RotatesOnIntervalUntilCancelled", func(t *testing.T) {
		source := &countingSource{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		rotator := NewRotator(source, 5*time.Millisecond, logger)

		ctx, cancel := context.WithCancel(context.Background())

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			rotator.Run(ctx)
		}()

		assert.Eventually(t, func() bool {
			return source.calls.Load() >= 3
		}, time.Second, time.Millisecond)

		cancel()
		wg.Wait()

		settled := source.calls.Load()
		time.Sleep(20 * time.Millisecond)
		assert.Equal(t, settled, source.calls.Load(), "no rotations after cancellation")
	})
}
