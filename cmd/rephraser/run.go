package main

import (
	"context"
	"os"

	"github.com/aretw0/rephraser/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [model]",
	Short: "Generate phrases to stdout",
	Long: `Loads the model and prints every phrase of --words tokens, one per line.
Logs and diagnostics go to stderr. Ctrl+C stops scheduling immediately and
reports the next pending work item.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		return cli.Execute(ctx, cli.RunOptions{
			Config: cfg,
			Stdout: os.Stdout,
			Stderr: os.Stderr,
			Banner: true,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	modelFlags(runCmd)

	runCmd.Flags().IntP("words", "w", 4, "Phrase length in tokens")
	runCmd.Flags().IntP("workers", "x", 0, "Worker count (default CPU count minus one)")
	runCmd.Flags().IntP("batch-depth", "b", 3, "Remaining depth at which subtrees go to workers")
	runCmd.Flags().Int("queue-size", 100000, "Maximum queued work items")
	runCmd.Flags().StringP("seed-list", "f", "", "File of starting words, one per line")
	runCmd.Flags().BoolP("variants", "s", false, "Emit eight casing and spacing variants per phrase")
	runCmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address during the run")

	// 'run' is the default command.
	rootCmd.Args = runCmd.Args
	rootCmd.RunE = runCmd.RunE
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
}
