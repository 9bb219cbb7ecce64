package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version задается при сборке: -ldflags "-X main.version=1.2.3"
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notes-manager",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "notes-manager version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
