package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "healthhub-server",
		Short:         "Clinic scheduling and records API server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "optional config file (env vars override it)")

	rootCmd.AddCommand(serveCmd(&configFile))
	rootCmd.AddCommand(rosterCmd())

	return rootCmd
}
