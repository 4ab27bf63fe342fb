package rephraser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	goruntime "runtime"
	"strings"

	"github.com/aretw0/rephraser/internal/runtime"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/aretw0/rephraser/pkg/observability"
	"github.com/aretw0/rephraser/pkg/phrase"
	"github.com/aretw0/rephraser/pkg/ports"
)

const (
	// DefaultWords is the phrase length in tokens.
	DefaultWords = 4
	// DefaultBatchDepth is the remaining depth at which subtrees move to workers.
	DefaultBatchDepth = 3
)

// ErrNoSeedWords is returned by New when a non-empty seed list holds no word
// that survives normalization. Running would otherwise fall back to the full
// unconstrained enumeration.
var ErrNoSeedWords = errors.New("seed list has no usable words")

// Generator is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Generator struct {
	model      ports.TransitionModel
	words      int
	batchDepth int
	workers    int
	queueSize  int
	seedWords  []string
	variants   bool
	logger     *slog.Logger
	metrics    *observability.Metrics
	hooks      domain.LifecycleHooks
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithWorkers sets the worker count. Values below 1 are coerced to 1.
func WithWorkers(n int) Option {
	return func(g *Generator) {
		g.workers = n
	}
}

// WithWords sets the target phrase length in tokens.
func WithWords(n int) Option {
	return func(g *Generator) {
		g.words = n
	}
}

// WithBatchDepth sets the handoff threshold.
func WithBatchDepth(n int) Option {
	return func(g *Generator) {
		g.batchDepth = n
	}
}

// WithQueueSize bounds the work queue.
func WithQueueSize(n int) Option {
	return func(g *Generator) {
		g.queueSize = n
	}
}

// WithSeedWords restricts generation to phrases starting with one of words.
// Seeds are compared after sanitization and lowercasing.
func WithSeedWords(words []string) Option {
	return func(g *Generator) {
		g.seedWords = words
	}
}

// WithVariants emits the eight casing and spacing renderings of each phrase.
func WithVariants(enabled bool) Option {
	return func(g *Generator) {
		g.variants = enabled
	}
}

// WithMetrics records engine activity into m.
func WithMetrics(m *observability.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// New creates a Generator over model.
func New(model ports.TransitionModel, opts ...Option) (*Generator, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}

	g := &Generator{
		model:      model,
		words:      DefaultWords,
		batchDepth: DefaultBatchDepth,
		workers:    DefaultWorkers(),
		queueSize:  runtime.DefaultQueueSize,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.words < 1 {
		return nil, fmt.Errorf("words must be at least 1, got %d", g.words)
	}
	if g.batchDepth < 1 {
		return nil, fmt.Errorf("batch depth must be at least 1, got %d", g.batchDepth)
	}
	if g.queueSize < 1 {
		return nil, fmt.Errorf("queue size must be at least 1, got %d", g.queueSize)
	}
	if g.workers < 1 {
		g.workers = 1
	}
	if len(g.seedWords) > 0 {
		seeds := normalizeSeeds(g.seedWords)
		if len(seeds) == 0 {
			return nil, fmt.Errorf("%w (%d entries given)", ErrNoSeedWords, len(g.seedWords))
		}
		g.seedWords = seeds
	}
	return g, nil
}

func normalizeSeeds(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if k := phrase.SeedKey(strings.TrimSpace(w)); k != "" {
			out = append(out, k)
		}
	}
	return out
}

// DefaultWorkers is one less than the CPU count, never below 1.
func DefaultWorkers() int {
	return max(goruntime.NumCPU()-1, 1)
}

// Run generates every phrase into w, one per line.
// Cancelling ctx returns domain.ErrInterrupted without waiting for workers;
// each worker finishes the item it holds and exits.
func (g *Generator) Run(ctx context.Context, w io.Writer) error {
	return g.RunTo(ctx, phrase.NewLineWriter(w))
}

// RunTo generates every phrase into a custom emitter.
func (g *Generator) RunTo(ctx context.Context, emitter ports.Emitter) error {
	hooks := g.hooks
	if g.metrics != nil {
		hooks = g.metrics.Hooks(&g.hooks)
	}

	engine := runtime.NewEngine(g.model, emitter, runtime.Config{
		Words:      g.words,
		BatchDepth: g.batchDepth,
		Workers:    g.workers,
		QueueSize:  g.queueSize,
		Variants:   g.variants,
		SeedWords:  g.seedWords,
	},
		runtime.WithLogger(g.logger),
		runtime.WithHooks(hooks),
	)
	if g.metrics != nil {
		g.metrics.ObserveQueue(engine.Queue().Len, engine.Queue().Cap)
	}

	g.logger.Info("Generation started",
		"words", g.words,
		"batch_depth", g.batchDepth,
		"workers", g.workers,
		"seeds", len(g.seedWords),
	)
	return engine.Run(ctx)
}
