package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

var scanCmd = &cobra.Command{
	Use:   "scan [kind]",
	Short: "Analyse the whole manuscript",
	Long: `Runs one analysis pass over the active manuscript and records
the result. Results accumulate: each kind keeps its latest outcome
until the same kind is scanned again.

Available kinds:
  synopsis   - per-chapter and whole-manuscript summaries
  health     - overall score, strengths, and global issues
  continuity - contradictions between chapters
  themes     - themes and plot thread tracking
  cohesion   - naming and timeline consistency

View accumulated results with 'redraft report'.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if scanRunner == nil {
		return errors.New("scan service not configured")
	}

	kind := domain.ScanKind(strings.ToLower(args[0]))
	if !kind.IsValid() {
		return fmt.Errorf("unknown kind %q (one of: %s)", args[0], kindList())
	}

	cmd.Printf("Running %s scan...\n", kind)

	rec, err := scanRunner.Scan(context.Background(), kind)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrScanInProgress):
			return fmt.Errorf("a %s scan is already running", kind)
		case errors.Is(err, domain.ErrEditorUnavailable):
			return fmt.Errorf("no AI editor configured; run 'redraft settings wizard' first: %w", err)
		default:
			return fmt.Errorf("scan failed: %w", err)
		}
	}

	printScanSummary(cmd, kind, rec)
	cmd.Println("\nRun 'redraft report' for the full picture.")
	return nil
}

// printScanSummary prints a one-glance summary of the fresh result.
func printScanSummary(cmd *cobra.Command, kind domain.ScanKind, rec *domain.AnalysisRecord) {
	switch kind {
	case domain.ScanSynopsis:
		if rec.Synopsis != nil {
			cmd.Printf("Synopsis recorded for %d chapters.\n", len(rec.Synopsis.Chapters))
		}
	case domain.ScanHealth:
		if rec.Health != nil {
			cmd.Printf("Health score: %d/100, %d global issues.\n",
				rec.Health.Score, len(rec.Health.GlobalIssues))
		}
	case domain.ScanContinuity:
		if rec.Continuity != nil {
			cmd.Printf("Continuity: %d issues found.\n", len(rec.Continuity.Issues))
		}
	case domain.ScanThemes:
		if rec.Themes != nil {
			cmd.Printf("Themes: %d themes, %d plot threads tracked.\n",
				len(rec.Themes.Themes), len(rec.Themes.Threads))
		}
	case domain.ScanCohesion:
		if rec.Cohesion != nil {
			cmd.Printf("Cohesion: %d naming issues, %d timeline issues.\n",
				len(rec.Cohesion.NamingIssues), len(rec.Cohesion.TimelineIssues))
		}
	}
}
