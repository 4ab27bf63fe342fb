package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/phrase"
	"github.com/aretw0/rephraser/pkg/ports"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
)

// Pool is a fixed set of long-lived workers draining a Queue. Each worker pops
// an item, collects it, emits the rendered lines and loops until it consumes a
// sentinel or the queue is aborted. A failing item is logged and skipped; the
// worker keeps running.
type Pool struct {
	queue     *Queue
	collector *Collector
	emitter   ports.Emitter
	size      int
	variants  bool
	logger    *slog.Logger
	hooks     domain.LifecycleHooks

	workers    *pool.Pool
	started    atomic.Bool
	sentinels  atomic.Int64
	terminated atomic.Int64
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithPoolSize sets the number of workers (minimum 1).
func WithPoolSize(n int) PoolOption {
	return func(p *Pool) {
		p.size = max(n, 1)
	}
}

// WithVariants enables the eight-line rendering of every phrase.
func WithVariants(enabled bool) PoolOption {
	return func(p *Pool) {
		p.variants = enabled
	}
}

// WithPoolLogger configures the structured logger.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(p *Pool) {
		p.logger = logger
	}
}

// WithPoolHooks registers observability callbacks.
func WithPoolHooks(hooks domain.LifecycleHooks) PoolOption {
	return func(p *Pool) {
		p.hooks = hooks
	}
}

// NewPool creates a pool. Workers are not running until Start.
func NewPool(queue *Queue, collector *Collector, emitter ports.Emitter, opts ...PoolOption) *Pool {
	p := &Pool{
		queue:     queue,
		collector: collector,
		emitter:   emitter,
		size:      1,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Size returns the configured worker count.
func (p *Pool) Size() int {
	return p.size
}

// Start launches every worker. It must be called before any work is produced.
func (p *Pool) Start() {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	p.workers = pool.New().WithMaxGoroutines(p.size)
	for id := 0; id < p.size; id++ {
		p.workers.Go(func() {
			p.work(id)
		})
	}
	p.logger.Debug("Workers started", "workers", p.size)
}

// Shutdown enqueues exactly one sentinel per worker. It blocks behind any
// queued work and returns ctx.Err() if ctx ends first.
func (p *Pool) Shutdown(ctx context.Context) error {
	for i := 0; i < p.size; i++ {
		if err := p.queue.Push(ctx, domain.Sentinel()); err != nil {
			return fmt.Errorf("failed to enqueue sentinel %d/%d: %w", i+1, p.size, err)
		}
		p.sentinels.Add(1)
	}
	return nil
}

// Wait blocks until every worker has consumed its sentinel.
func (p *Pool) Wait() {
	if p.workers != nil {
		p.workers.Wait()
	}
}

// Sentinels returns how many sentinels Shutdown has enqueued.
func (p *Pool) Sentinels() int {
	return int(p.sentinels.Load())
}

// Terminated returns how many workers have exited, by sentinel or abort.
func (p *Pool) Terminated() int {
	return int(p.terminated.Load())
}

func (p *Pool) work(id int) {
	for {
		item, ok := p.queue.Pop()
		if !ok {
			p.exit(id, item)
			p.logger.Debug("Worker aborted", "worker", id)
			return
		}
		if item.IsSentinel() {
			p.exit(id, item)
			p.logger.Debug("Worker terminated", "worker", id)
			return
		}
		p.process(id, item)
	}
}

func (p *Pool) exit(id int, item domain.WorkItem) {
	p.terminated.Add(1)
	if p.hooks.OnWorkerExit != nil {
		p.hooks.OnWorkerExit(domain.NewItemEvent(domain.EventWorkerExit, id, item))
	}
}

func (p *Pool) process(id int, item domain.WorkItem) {
	start := time.Now()
	var (
		phrases, lines int
		err            error
	)
	if recovered := panics.Try(func() {
		phrases, lines, err = p.handle(item)
	}); recovered != nil {
		err = fmt.Errorf("worker panic: %w", recovered.AsError())
	}

	if err != nil {
		p.logger.Error("Work item failed, skipping", "worker", id, "item", item.String(), "error", err)
	}

	if p.hooks.OnItemDone != nil {
		ev := domain.NewItemEvent(domain.EventItemDone, id, item)
		ev.Phrases = phrases
		ev.Lines = lines
		ev.Elapsed = time.Since(start)
		ev.Err = err
		p.hooks.OnItemDone(ev)
	}
}

func (p *Pool) handle(item domain.WorkItem) (int, int, error) {
	phrases, err := p.collector.Collect(item)
	if err != nil {
		return 0, 0, err
	}
	lines := phrase.RenderAll(phrases, p.variants)
	if err := p.emitter.Emit(lines); err != nil {
		return len(phrases), 0, fmt.Errorf("emit: %w", err)
	}
	return len(phrases), len(lines), nil
}
