// Package resource bounds the background work the library performs on
// behalf of a caller: archive uploads and batch settling share a worker
// budget and an IO throughput budget.
package resource

import (
	"context"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxBackgroundWorkers is the maximum number of concurrent
	// background jobs. If 0, defaults to 1.
	MaxBackgroundWorkers int64

	// IOLimitBytesPerSec is the maximum IO throughput for background
	// tasks. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages shared background resources.
// A nil *Controller is valid and enforces nothing.
type Controller struct {
	bgSem     *semaphore.Weighted
	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxBackgroundWorkers <= 0 {
		cfg.MaxBackgroundWorkers = 1
	}

	c := &Controller{
		bgSem: semaphore.NewWeighted(cfg.MaxBackgroundWorkers),
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}
	return c
}

// AcquireWorker blocks until a background worker slot is free or ctx
// is canceled.
func (c *Controller) AcquireWorker(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.bgSem.Acquire(ctx, 1)
}

// ReleaseWorker returns a worker slot.
func (c *Controller) ReleaseWorker() {
	if c == nil {
		return
	}
	c.bgSem.Release(1)
}

// WaitIO blocks until the IO budget allows n more bytes.
func (c *Controller) WaitIO(ctx context.Context, n int) error {
	if c == nil || c.ioLimiter == nil || n <= 0 {
		return nil
	}

	// The limiter burst caps a single reservation; larger writes are
	// split into burst-sized waits.
	burst := c.ioLimiter.Burst()
	for n > 0 {
		chunk := n
		if chunk > burst {
			chunk = burst
		}
		if err := c.ioLimiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}
