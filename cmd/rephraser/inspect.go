package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/rephraser/internal/cli"
	"github.com/aretw0/rephraser/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [model]",
	Short: "Print statistics about a model",
	Long:  `Loads the model and reports its size, phrase-start fan-out and most frequent starting words.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		top, _ := cmd.Flags().GetInt("top")
		plain, _ := cmd.Flags().GetBool("plain")

		model, err := cli.OpenModel(context.Background(), cfg, newLogger(cfg))
		if err != nil {
			return err
		}
		stats, err := cli.Inspect(model, top)
		if err != nil {
			return err
		}

		render := tui.NewRenderer(plain || !tui.IsTerminal(os.Stdout))
		out, err := render(stats.Markdown())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	modelFlags(inspectCmd)
	inspectCmd.Flags().Int("top", 10, "Number of phrase starts to list")
	inspectCmd.Flags().Bool("plain", false, "Print raw markdown even on a terminal")
}
