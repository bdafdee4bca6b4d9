// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mizuno-gh/repoview/internal/config"
	"github.com/mizuno-gh/repoview/internal/domain"
	"github.com/mizuno-gh/repoview/internal/gateway"
	"github.com/mizuno-gh/repoview/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Fetches repository activity and prints a summary",
	Long: `Fetches the repository metadata plus its commits, open and closed issues,
and contributors, then prints the counts. Use --json for machine-readable
output instead of the plain-text summary.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// Get the verbose flag from the root command to set up the logger.
		verbose, _ := cmd.InheritedFlags().GetBool("verbose")
		logger := newLogger(os.Stderr, verbose)

		cfg, err := config.NewLoader().Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		// Inject dependencies and run the main business logic.
		githubGateway, err := gateway.NewGitHubGateway(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		aggregator := usecase.NewAggregator(githubGateway, logger)

		report := aggregator.Report(ctx)

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			jsonData, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to marshal report to JSON: %v\n", err)
				os.Exit(1)
			}
			fmt.Println(string(jsonData))
			return
		}
		printReport(os.Stdout, report)
	},
}

// newLogger creates the process logger. Warnings and errors are always
// visible; verbose adds debug-level fetch diagnostics.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// printReport writes the plain-text summary. The repository block is skipped
// when the metadata fetch came up empty, and zero counts are omitted, so a
// degraded run simply prints fewer lines.
func printReport(w io.Writer, report *domain.Report) {
	if repo := report.Repository; repo != nil {
		fmt.Fprintln(w, "Repository Info:")
		fmt.Fprintf(w, "ID: %d\n", repo.ID)
		fmt.Fprintf(w, "Node ID: %s\n", repo.NodeID)
		fmt.Fprintf(w, "Name: %s\n", repo.Name)
		fmt.Fprintf(w, "Full name: %s\n", repo.FullName)
		fmt.Fprintf(w, "Language: %s\n", repo.Language)
		fmt.Fprintf(w, "Private: %t\n", repo.Private)
	}
	if report.Contributors > 0 {
		fmt.Fprintf(w, "No. of contributors: %d\n", report.Contributors)
	}
	if report.OpenIssues > 0 {
		fmt.Fprintf(w, "Open issues: %d\n", report.OpenIssues)
	}
	if report.ClosedIssues > 0 {
		fmt.Fprintf(w, "Closed issues: %d\n", report.ClosedIssues)
	}
	if report.Commits > 0 {
		fmt.Fprintf(w, "Total commits: %d\n", report.Commits)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().Bool("json", false, "Output the report as JSON")
}
