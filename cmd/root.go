package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "homecall",
	Short: "Client dashboard for the home-service booking platform",
	Long: `homecall keeps authenticated owner and provider sessions against the
home-service booking platform, reconciles each role's booking list from REST
snapshots and realtime push events, and serves both dashboards locally.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(logoutCmd)
}
