package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/ports"
)

// Config holds the engine parameters.
type Config struct {
	Words      int
	BatchDepth int
	Workers    int
	QueueSize  int
	Variants   bool
	SeedWords  []string
}

// Engine runs one generation: it starts the pool, schedules every work item,
// then terminates the workers.
type Engine struct {
	model   ports.TransitionModel
	emitter ports.Emitter
	config  Config
	logger  *slog.Logger
	hooks   domain.LifecycleHooks

	queue *Queue
	pool  *Pool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability callbacks on the queue and the pool.
func WithHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// NewEngine creates an engine with dependencies.
func NewEngine(model ports.TransitionModel, emitter ports.Emitter, cfg Config, opts ...EngineOption) *Engine {
	e := &Engine{
		model:   model,
		emitter: emitter,
		config:  cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.queue = NewQueue(cfg.QueueSize, WithQueueHooks(e.hooks))
	e.pool = NewPool(e.queue, NewCollector(model), emitter,
		WithPoolSize(cfg.Workers),
		WithVariants(cfg.Variants),
		WithPoolLogger(e.logger),
		WithPoolHooks(e.hooks),
	)
	return e
}

// Queue exposes the work queue (for metrics and diagnostics).
func (e *Engine) Queue() *Queue {
	return e.queue
}

// Pool exposes the worker pool.
func (e *Engine) Pool() *Pool {
	return e.pool
}

// Run generates every phrase. When ctx is cancelled, Run logs the next queued
// item and returns domain.ErrInterrupted at once: workers finish their current
// item, then exit without being waited for. Any other scheduling failure also
// aborts the queue so no worker outlives the run.
func (e *Engine) Run(ctx context.Context) error {
	e.pool.Start()

	scheduler := NewScheduler(e.model, e.queue, e.config.Words, e.config.BatchDepth,
		WithSeedWords(e.config.SeedWords),
		WithSchedulerLogger(e.logger),
	)

	if err := scheduler.Schedule(ctx); err != nil {
		if isCancellation(ctx, err) {
			return e.interrupt(ctx)
		}
		e.queue.Abort()
		return fmt.Errorf("scheduling failed: %w", err)
	}

	e.logger.Info("Scheduling complete, waiting for workers", "queued", e.queue.Len(), "workers", e.pool.Size())

	finished := make(chan error, 1)
	go func() {
		// Sentinels queue behind remaining work.
		if err := e.pool.Shutdown(ctx); err != nil {
			finished <- err
			return
		}
		e.pool.Wait()
		finished <- nil
	}()

	select {
	case err := <-finished:
		if err != nil {
			if isCancellation(ctx, err) {
				return e.interrupt(ctx)
			}
			e.queue.Abort()
			return err
		}
		return nil
	case <-ctx.Done():
		return e.interrupt(ctx)
	}
}

func isCancellation(ctx context.Context, err error) bool {
	return ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded))
}

// interrupt reports the next unconsumed item, then aborts the queue.
func (e *Engine) interrupt(ctx context.Context) error {
	e.reportInterrupt()
	e.queue.Abort()
	return fmt.Errorf("%w: %v", domain.ErrInterrupted, ctx.Err())
}

func (e *Engine) reportInterrupt() {
	e.logger.Warn("Interrupt detected, exiting without draining workers")
	item, ok := e.queue.TryPop()
	if !ok {
		e.logger.Warn("Work queue was empty")
		return
	}
	if item.IsSentinel() {
		return
	}
	e.logger.Warn("Next queued item", "prefix", item.Prefix, "depth", item.Depth, "context", item.Context.String())
}
