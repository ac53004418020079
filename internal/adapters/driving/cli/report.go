package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/redraft-labs/redraft-cli/internal/core/services"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the accumulated analysis report",
	Long: `Prints everything the scans have recorded for the active
manuscript: synopsis, health, continuity, themes, and cohesion.
Kinds that have not been scanned yet are omitted.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, _ []string) error {
	if projectSession == nil {
		return errors.New("no active project; run 'redraft project open' first")
	}
	if scanRunner == nil {
		return errors.New("scan service not configured")
	}

	cmd.Print(services.RenderReport(projectSession.Manuscript(), scanRunner.Record()))
	return nil
}
