package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/rephraser/internal/config"
	"github.com/aretw0/rephraser/pkg/adapters/file"
	"github.com/aretw0/rephraser/pkg/adapters/memory"
	"github.com/aretw0/rephraser/pkg/adapters/redis"
	"github.com/aretw0/rephraser/pkg/ports"
)

// createSource selects the model source for cfg.
func createSource(cfg config.Config) (ports.ModelSource, func() error, error) {
	if cfg.Format == config.FormatRedis {
		store, err := redis.NewFromURL(cfg.RedisURL, redis.WithPrefix(cfg.RedisPrefix))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return &file.Source{Path: cfg.Model, Format: cfg.Format}, func() error { return nil }, nil
}

// OpenModel loads the model described by cfg and checks its state size.
func OpenModel(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.TransitionModel, error) {
	source, closeFn, err := createSource(cfg)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	start := time.Now()
	model, err := source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load model: %w", err)
	}
	if model.StateSize() != cfg.StateSize {
		return nil, fmt.Errorf("model state size is %d, configured %d", model.StateSize(), cfg.StateSize)
	}

	attrs := []any{"format", cfg.Format, "state_size", model.StateSize(), "elapsed", time.Since(start)}
	if m, ok := model.(*memory.Model); ok {
		attrs = append(attrs, "contexts", m.Len())
	}
	logger.Info("Model loaded", attrs...)
	return model, nil
}
