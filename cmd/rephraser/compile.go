package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/rephraser/internal/cli"
	"github.com/aretw0/rephraser/internal/logging"
	"github.com/aretw0/rephraser/pkg/adapters/file"
	"github.com/aretw0/rephraser/pkg/corpus"
	"github.com/spf13/cobra"
)

var compileCmd = &cobra.Command{
	Use:   "compile <corpus> <model>",
	Short: "Build a model file from a text corpus",
	Long: `Scans a text file, or every file below a directory, and writes the compiled
transition model. The output format follows the model extension (.json, .yaml).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stateSize, _ := cmd.Flags().GetInt("state-size")
		debug, _ := cmd.Flags().GetBool("debug")
		if stateSize < 1 {
			return fmt.Errorf("--state-size must be at least 1, got %d", stateSize)
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		logger := logging.New(level)

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		start := time.Now()
		scanner := corpus.NewScanner(stateSize)
		if err := scanner.ReadPath(ctx, args[0]); err != nil {
			return err
		}
		model, err := scanner.Model()
		if err != nil {
			return err
		}
		if err := file.Write(args[1], model); err != nil {
			return err
		}

		logger.Info("Model compiled",
			"corpus", args[0],
			"sentences", scanner.Sentences(),
			"contexts", model.Len(),
			"elapsed", time.Since(start),
		)
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d contexts to %s\n", model.Len(), args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().IntP("state-size", "g", 2, "Tokens per context (n-gram order minus one)")
}
