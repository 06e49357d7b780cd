// Package keylock serializes work per key. Each key gets its own lock that exists
// only while at least one caller holds or waits for it.
package keylock

import (
	"context"
	"sync"
	"time"

	"auction-house/internal/pkg/errs"
	"auction-house/internal/pkg/metrics"

	"github.com/puzpuzpuz/xsync/v2"
)

type entry struct {
	sem  chan struct{}
	refs int
}

type Coordinator struct {
	entries   *xsync.MapOf[string, *entry]
	closing   chan struct{}
	closeOnce sync.Once
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		entries: xsync.NewMapOf[*entry](),
		closing: make(chan struct{}),
	}
}

// WithLock runs fn while holding the lock for key. Work on different keys never
// waits on each other. Acquisition is abandoned when ctx ends or the coordinator
// is closed, in which case fn is not run.
func (c *Coordinator) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	if err := c.acquire(ctx, key); err != nil {
		return err
	}
	defer c.release(key)
	return fn(ctx)
}

// Do is WithLock for functions that produce a value.
func Do[T any](ctx context.Context, c *Coordinator, key string, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := c.WithLock(ctx, key, func(ctx context.Context) error {
		var ferr error
		out, ferr = fn(ctx)
		return ferr
	})
	return out, err
}

// Close makes pending and future acquisitions fail with ErrShuttingDown.
// Holders keep their locks until their work returns.
func (c *Coordinator) Close() {
	c.closeOnce.Do(func() { close(c.closing) })
}

// Len is the number of keys currently held or waited on.
func (c *Coordinator) Len() int {
	return c.entries.Size()
}

func (c *Coordinator) acquire(ctx context.Context, key string) error {
	select {
	case <-c.closing:
		return errs.ErrShuttingDown
	default:
	}
	if err := ctx.Err(); err != nil {
		return errs.Wrap(err, "waiting for lock "+key)
	}

	e, _ := c.entries.Compute(key, func(old *entry, loaded bool) (*entry, bool) {
		if !loaded {
			old = &entry{sem: make(chan struct{}, 1)}
		}
		old.refs++
		return old, false
	})

	start := time.Now()
	select {
	case e.sem <- struct{}{}:
		metrics.LockWait.Observe(time.Since(start).Seconds())
		return nil
	case <-ctx.Done():
		c.unref(key)
		return errs.Wrap(ctx.Err(), "waiting for lock "+key)
	case <-c.closing:
		c.unref(key)
		return errs.ErrShuttingDown
	}
}

func (c *Coordinator) release(key string) {
	e, ok := c.entries.Load(key)
	if !ok {
		return
	}
	<-e.sem
	c.unref(key)
}

// unref drops one reference and evicts the entry once nobody holds or waits for it.
func (c *Coordinator) unref(key string) {
	c.entries.Compute(key, func(old *entry, loaded bool) (*entry, bool) {
		if !loaded {
			return nil, true
		}
		old.refs--
		return old, old.refs <= 0
	})
}
