// ABOUTME: CLI command printing the build version.
// ABOUTME: Runs without opening storage.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the bmi version",
	Annotations: map[string]string{skipStorage: "true"},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "bmi %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
