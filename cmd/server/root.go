package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "config.yml"

var configFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notes-manager",
	Short: "Simple Notes Manager: CRUD service for text notes over REST and gRPC",
	Long: `Simple Notes Manager keeps text notes in memory and exposes them
over a REST API (with Swagger UI and an event stream) and a gRPC API.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", defaultConfigFile, "Path to the config file")
}
