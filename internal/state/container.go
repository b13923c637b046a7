package state

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// container is the shared lifecycle embedded by every state container.
// Triggered work runs on goroutines scoped to the container: Close
// cancels everything still in flight, and each unit of work carries the
// configured per-call timeout.
type container struct {
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	timeout time.Duration
	logger  *zap.Logger
}

func newContainer(timeout time.Duration, logger *zap.Logger) container {
	ctx, cancel := context.WithCancel(context.Background())
	return container{
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
		logger:  logger,
	}
}

// run spawns one unit of work. The caller must have already moved the
// target slot to Loading, synchronously, before calling run.
func (c *container) run(work func(ctx context.Context)) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		ctx := c.ctx
		var cancel context.CancelFunc
		if c.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		work(ctx)
	}()
}

// Close cancels in-flight work and waits for the workers to unwind.
// Slots keep their last snapshot; a cancelled unit of work resolves its
// slot to a transport error.
func (c *container) Close() {
	c.cancel()
	c.wg.Wait()
}
