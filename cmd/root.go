// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repoview",
	Short: "A CLI tool to summarize activity of a single repository.",
	Long: `repoview fetches metadata, commits, issues, and contributors for one
repository from a GitHub-compatible API and prints a summary of the counts.
The target repository and API token are read from the environment
(BASEURL and APIKEY), optionally via a .env file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
