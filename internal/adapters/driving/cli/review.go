package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Gather edit suggestions for the active manuscript",
	Long: `Sends every chapter to the configured AI editor and gathers
anchored edit suggestions. Suggestions arrive as each chapter is read
and are kept even if a later chapter fails.

Apply them afterwards with 'redraft apply'.`,
	RunE: runReview,
}

var suggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "List gathered suggestions",
	RunE:  runSuggestions,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(suggestionsCmd)
}

func runReview(cmd *cobra.Command, _ []string) error {
	if reviewer == nil {
		return errors.New("review service not configured")
	}

	cmd.Println("Reviewing manuscript...")

	if err := reviewWithProgress(context.Background(), cmd, reviewer); err != nil {
		if errors.Is(err, domain.ErrEditorUnavailable) {
			return fmt.Errorf("no AI editor configured; run 'redraft settings wizard' first: %w", err)
		}
		return fmt.Errorf("review failed: %w", err)
	}

	suggestions := reviewer.Suggestions()
	cmd.Printf("Review complete: %d suggestions.\n", len(suggestions))
	if len(suggestions) > 0 {
		cmd.Println("Run 'redraft suggestions' to list them, 'redraft apply' to act on them.")
	}
	return nil
}

// reviewWithProgress runs the stream while displaying status updates.
func reviewWithProgress(ctx context.Context, cmd *cobra.Command, rev driving.Reviewer) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- rev.Stream(ctx)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastText := ""
	for {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			status := rev.Status()
			if status.StatusText != lastText {
				cmd.Printf("\r%-60s", status.StatusText)
				lastText = status.StatusText
			}
		}
	}
}

func runSuggestions(cmd *cobra.Command, _ []string) error {
	if reviewer == nil {
		return errors.New("review service not configured")
	}

	suggestions := reviewer.Suggestions()
	if len(suggestions) == 0 {
		cmd.Println("No suggestions. Run 'redraft review' first.")
		return nil
	}

	var ms domain.Manuscript
	if projectSession != nil {
		ms = projectSession.Manuscript()
	}

	cmd.Printf("Suggestions (%d):\n\n", len(suggestions))
	for i, sug := range suggestions {
		status := " "
		if displayApplied(ms, sug) {
			status = "x"
		}
		cmd.Printf("  [%s] %d. (%s) %s\n", status, i+1, sug.Kind, sug.ID)
		cmd.Printf("      - %s\n", truncate(sug.OriginalText, 70))
		cmd.Printf("      + %s\n", truncate(sug.SuggestedText, 70))
		if sug.Rationale != "" {
			cmd.Printf("      %s\n", truncate(sug.Rationale, 76))
		}
		cmd.Println()
	}
	return nil
}

// displayApplied derives the applied marker from the live text. An
// undo leaves the stored flag set while removing the replacement, so
// the listing follows the manuscript as it stands.
func displayApplied(ms domain.Manuscript, sug domain.Suggestion) bool {
	if sug.Status != domain.StatusApplied {
		return false
	}
	doc := ms.Document(sug.DocumentID)
	if doc == nil {
		return false
	}
	return sug.AppliedIn(doc.Text)
}

// truncate shortens s for single-line display.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
