// Package executor runs persistence work on a bounded pool of goroutines,
// keeping it off the callers' goroutines. Callers get a Future and compose
// continuations with Then instead of blocking.
package executor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrPoolClosed is returned by futures submitted after Close.
var ErrPoolClosed = errors.New("executor: pool closed")

// Observer receives pool measurements. internal/platform/metrics implements it.
type Observer interface {
	ObserveQueueDepth(pool string, depth int)
	ObserveTask(pool string, wait, run time.Duration)
}

type task struct {
	id       uuid.UUID
	enqueued time.Time
	run      func()
}

// Pool is a fixed set of workers reading from a bounded queue.
type Pool struct {
	name     string
	tasks    chan task
	group    errgroup.Group
	mu       sync.RWMutex
	closed   bool
	logger   *slog.Logger
	observer Observer
}

type Option func(*Pool)

func WithName(name string) Option {
	return func(p *Pool) {
		p.name = name
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pool) {
		p.logger = logger
	}
}

func WithObserver(o Observer) Option {
	return func(p *Pool) {
		p.observer = o
	}
}

// NewPool starts workers goroutines sharing a queue of the given capacity.
func NewPool(workers, queue int, opts ...Option) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queue < 0 {
		queue = 0
	}
	p := &Pool{name: "default", tasks: make(chan task, queue)}
	for _, opt := range opts {
		opt(p)
	}
	for i := 0; i < workers; i++ {
		p.group.Go(p.work)
	}
	return p
}

func (p *Pool) work() error {
	for t := range p.tasks {
		if p.observer != nil {
			p.observer.ObserveQueueDepth(p.name, len(p.tasks))
		}
		start := time.Now()
		t.run()
		if p.observer != nil {
			p.observer.ObserveTask(p.name, start.Sub(t.enqueued), time.Since(start))
		}
		if p.logger != nil {
			p.logger.Debug("executor task finished",
				"pool", p.name,
				"task_id", t.id,
				"duration", time.Since(start),
			)
		}
	}
	return nil
}

func (p *Pool) enqueue(ctx context.Context, t task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	select {
	case p.tasks <- t:
		if p.observer != nil {
			p.observer.ObserveQueueDepth(p.name, len(p.tasks))
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue task: %w", ctx.Err())
	}
}

// Close stops accepting work, lets queued tasks finish and waits for the
// workers to exit. It is safe to call more than once.
func (p *Pool) Close() error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()
	return p.group.Wait()
}

// Submit queues fn on p. The caller's ctx bounds only the wait for a queue
// slot: once started, fn runs to completion with a context that keeps ctx's
// values but is never cancelled. A panic in fn is not recovered and ends the
// process.
func Submit[T any](ctx context.Context, p *Pool, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := newFuture[T]()
	runCtx := context.WithoutCancel(ctx)
	t := task{
		id:       uuid.New(),
		enqueued: time.Now(),
		run: func() {
			value, err := fn(runCtx)
			f.complete(value, err)
		},
	}
	if err := p.enqueue(ctx, t); err != nil {
		var zero T
		f.complete(zero, err)
	}
	return f
}
