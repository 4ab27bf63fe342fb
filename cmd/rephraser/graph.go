package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/rephraser/internal/cli"
	"github.com/aretw0/rephraser/internal/presentation/graph"
	"github.com/aretw0/rephraser/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [model]",
	Short: "Export the phrase tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the heaviest phrase prefixes, starting at the phrase start or at --from.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd, args)
		if err != nil {
			return err
		}
		depth, _ := cmd.Flags().GetInt("depth")
		fanout, _ := cmd.Flags().GetInt("fanout")
		from, _ := cmd.Flags().GetString("from")

		model, err := cli.OpenModel(context.Background(), cfg, newLogger(cfg))
		if err != nil {
			return err
		}

		opts := graph.Options{Depth: depth, Fanout: fanout}
		if from != "" {
			opts.From = domain.ParseContext(strings.TrimSpace(from), model.StateSize())
		}
		out, err := graph.GenerateMermaid(model, opts)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	modelFlags(graphCmd)
	graphCmd.Flags().Int("depth", 2, "Tokens drawn below the root")
	graphCmd.Flags().Int("fanout", 3, "Heaviest successors kept per context (0 keeps all)")
	graphCmd.Flags().String("from", "", "Root context as space-separated tokens")
}
