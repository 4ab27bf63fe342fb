package main

import (
	"context"
	"fmt"

	"github.com/aretw0/rephraser/internal/cli"
	"github.com/aretw0/rephraser/internal/config"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [model]",
	Short: "Copy a compiled model file into Redis",
	Long:  `Replaces the model stored under --redis-prefix with the contents of the model file, so several hosts can generate from one copy.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		if cfg.RedisURL == "" {
			return fmt.Errorf("--redis-url is required")
		}
		format := cfg.Format
		if format == config.FormatRedis {
			return fmt.Errorf("import reads a model file; --format must be auto, json or yaml")
		}

		logger := newLogger(cfg)
		n, err := cli.Import(context.Background(), cli.ImportOptions{
			Path:     cfg.Model,
			Format:   format,
			RedisURL: cfg.RedisURL,
			Prefix:   cfg.RedisPrefix,
		}, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contexts into %s\n", n, cfg.RedisPrefix)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	modelFlags(importCmd)
}
