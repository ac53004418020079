package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

var applyAll bool

var applyCmd = &cobra.Command{
	Use:   "apply [suggestion-id]",
	Short: "Apply gathered suggestions to the manuscript",
	Long: `Applies a suggestion by replacing its anchor text in the chapter.

A suggestion whose anchor text is no longer present is reported as a
conflict and skipped; the chapter is left untouched. Use --all to
apply every remaining suggestion in one pass.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVarP(&applyAll, "all", "a", false, "apply every unapplied suggestion")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	if reviewer == nil {
		return errors.New("review service not configured")
	}

	ctx := context.Background()

	if applyAll {
		summary, err := reviewer.ApplyAllRemaining(ctx)
		if err != nil {
			return fmt.Errorf("apply failed: %w", err)
		}
		cmd.Println(summary.Message)
		return nil
	}

	if len(args) == 0 {
		return errors.New("provide a suggestion ID or use --all")
	}

	id := args[0]
	if err := reviewer.ApplyOne(ctx, id); err != nil {
		switch {
		case errors.Is(err, domain.ErrConflict):
			cmd.Printf("Conflict: the original text for %s is no longer in the chapter.\n", id)
			return nil
		case errors.Is(err, domain.ErrMissingTarget):
			cmd.Printf("Skipped: the chapter for %s no longer exists.\n", id)
			return nil
		case errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("no suggestion with ID %s", id)
		default:
			return fmt.Errorf("apply failed: %w", err)
		}
	}

	cmd.Printf("Applied suggestion %s.\n", id)
	return nil
}
