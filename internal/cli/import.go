package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/rephraser/pkg/adapters/file"
	"github.com/aretw0/rephraser/pkg/adapters/redis"
)

// ImportOptions selects a compiled model file and the Redis destination.
type ImportOptions struct {
	Path     string
	Format   string
	RedisURL string
	Prefix   string
}

// Import copies a compiled model file into Redis, replacing any model stored
// under the same prefix. It returns the number of contexts written.
func Import(ctx context.Context, opts ImportOptions, logger *slog.Logger) (int, error) {
	model, err := file.LoadFormat(opts.Path, opts.Format)
	if err != nil {
		return 0, err
	}

	store, err := redis.NewFromURL(opts.RedisURL, redis.WithPrefix(opts.Prefix))
	if err != nil {
		return 0, err
	}
	defer store.Close()

	if err := store.Import(ctx, model); err != nil {
		return 0, fmt.Errorf("failed to import model: %w", err)
	}
	logger.Info("Model imported", "path", opts.Path, "prefix", opts.Prefix, "contexts", model.Len())
	return model.Len(), nil
}
