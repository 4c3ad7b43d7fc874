package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "dbsetup",
	Short:         "dbsetup bootstraps the tanker delivery database.",
	Long:          `dbsetup bootstraps the tanker delivery database by applying its SQL files in dependency order.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
