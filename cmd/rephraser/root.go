package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/rephraser/internal/cli"
	"github.com/aretw0/rephraser/internal/config"
	"github.com/aretw0/rephraser/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rootCmd = &cobra.Command{
	Use:   "rephraser",
	Short: "Rephraser enumerates ranked phrases from an n-gram model",
	Long: `Rephraser walks a compiled n-gram transition model and prints every phrase of
the requested length, most probable branches first, using a pool of workers
for the exhaustive tail of each branch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitInterrupted mirrors the shell convention for SIGINT.
const exitInterrupted = 130

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if cli.IsInterrupted(err) {
			os.Exit(exitInterrupted)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file (flags override its values)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable per-item debug logging")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format on stderr: text or json")
}

// localFlags are command options that are not part of config.Config.
var localFlags = map[string]bool{
	"config": true,
	"top":    true,
	"plain":  true,
	"depth":  true,
	"fanout": true,
	"from":   true,
}

// loadConfig merges the --config file with every flag set on the command line.
// Flags left at their default never override the file.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	overrides := map[string]any{}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		if localFlags[f.Name] {
			return
		}
		overrides[f.Name] = f.Value.String()
	})
	if _, set := overrides["model"]; !set && len(args) > 0 {
		overrides["model"] = args[0]
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return cfg, errors.Join(errors.New("configuration error"), err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(os.Stderr, level, logging.Format(cfg.LogFormat))
}

// modelFlags registers the flags shared by every command reading a model.
func modelFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Compiled model file (JSON or YAML)")
	cmd.Flags().String("format", config.FormatAuto, "Model format: auto, json, yaml or redis")
	cmd.Flags().String("redis-url", "", "Redis URL holding an imported model")
	cmd.Flags().String("redis-prefix", "rephraser:model:", "Key prefix of the imported model")
	cmd.Flags().IntP("state-size", "g", 2, "Tokens per context (n-gram order minus one)")
}
