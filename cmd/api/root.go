package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd runs the server when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "case-service",
	Short: "Multi-tenant license-violation case service",
	Long:  `Case service HTTP API. Configuration is read from the environment and an optional .env file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}
