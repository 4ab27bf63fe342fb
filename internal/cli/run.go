package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/rephraser"
	"github.com/aretw0/rephraser/internal/config"
	"github.com/aretw0/rephraser/internal/presentation/tui"
	"github.com/aretw0/rephraser/pkg/observability"
)

// RunOptions contains everything the run command needs besides the config.
type RunOptions struct {
	Config config.Config
	Stdout io.Writer
	Stderr io.Writer
	// Banner prints the banner on stderr when it is a terminal.
	Banner bool
}

// Execute handles the 'run' command: load the model, generate, report.
func Execute(ctx context.Context, opts RunOptions) error {
	cfg := opts.Config
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	logger := createLogger(opts.Stderr, cfg.Debug, cfg.LogFormat)

	if opts.Banner {
		if f, ok := opts.Stderr.(*os.File); ok && tui.IsTerminal(f) {
			tui.PrintBanner(f, rephraser.Version)
		}
	}

	var seeds []string
	if cfg.SeedList != "" {
		words, err := LoadSeedWords(cfg.SeedList)
		if err != nil {
			return err
		}
		if len(words) == 0 {
			logger.Warn("Seed list is empty, generating unconstrained", "path", cfg.SeedList)
		}
		seeds = words
	}

	model, err := OpenModel(ctx, cfg, logger)
	if err != nil {
		return err
	}

	genOpts := []rephraser.Option{
		rephraser.WithLogger(logger),
		rephraser.WithWords(cfg.Words),
		rephraser.WithBatchDepth(cfg.BatchDepth),
		rephraser.WithWorkers(cfg.Workers),
		rephraser.WithQueueSize(cfg.QueueSize),
		rephraser.WithSeedWords(seeds),
		rephraser.WithVariants(cfg.Variants),
	}
	if cfg.Debug {
		genOpts = append(genOpts, rephraser.WithLifecycleHooks(createDebugHooks(logger)))
	}

	if cfg.MetricsAddr != "" {
		metrics := observability.NewMetrics()
		srv, err := StartMetricsServer(cfg.MetricsAddr, metrics, logger)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		defer srv.Stop()
		genOpts = append(genOpts, rephraser.WithMetrics(metrics))
	}

	gen, err := rephraser.New(model, genOpts...)
	if err != nil {
		return err
	}

	if err := gen.Run(ctx, opts.Stdout); err != nil {
		if IsInterrupted(err) {
			logger.Warn("Generation interrupted")
		}
		return err
	}
	logger.Info("Generation finished")
	return nil
}
