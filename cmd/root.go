package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "rentald",
	Short: "Co-host vacation-rental API",
	Long: `rentald serves the co-host rental API: listings, bookings, payouts and
the AI assistant. Configuration is read from the environment and an optional
.env file in the working directory.`,
	SilenceUsage: true,
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
