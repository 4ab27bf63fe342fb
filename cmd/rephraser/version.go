package main

import (
	"fmt"

	"github.com/aretw0/rephraser"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rephraser",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "rephraser version %s\n", rephraser.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

