package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep [kind]",
	Short: "Rewrite every chapter against recorded issues",
	Long: `Runs one rewrite pass over the whole manuscript, chapter by
chapter, against the issues a scan recorded for the given kind.

Chapters are rewritten strictly in order with pacing between AI calls,
so a sweep over a long manuscript takes a while. The run is committed
to history as a single snapshot when it ends, so one undo reverts the
whole sweep; cancelling keeps what has been done so far.

Kinds with sweepable issues: health, continuity, themes, cohesion.`,
	Args: cobra.ExactArgs(1),
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepPipeline == nil {
		return errors.New("sweep service not configured")
	}

	kind := domain.ScanKind(strings.ToLower(args[0]))
	if !kind.IsValid() {
		return fmt.Errorf("unknown kind %q (one of: %s)", args[0], kindList())
	}

	cmd.Printf("Sweeping %s issues...\n", kind)

	if err := sweepWithProgress(context.Background(), cmd, sweepPipeline, kind); err != nil {
		switch {
		case errors.Is(err, domain.ErrNothingToDo):
			cmd.Printf("No %s issues recorded. Run 'redraft scan %s' first.\n", kind, kind)
			return nil
		case errors.Is(err, domain.ErrEditorUnavailable):
			return fmt.Errorf("no AI editor configured; run 'redraft settings wizard' first: %w", err)
		default:
			return fmt.Errorf("sweep failed: %w", err)
		}
	}

	status := sweepPipeline.Status()
	cmd.Printf("Sweep complete: %d chapters rewritten, %d failed.\n", status.Completed, status.Failed)
	return nil
}

// sweepWithProgress runs the sweep while displaying progress updates.
func sweepWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	sweep driving.SweepPipeline,
	kind domain.ScanKind,
) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- sweep.Run(ctx, kind)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCompleted := -1
	for {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			status := sweep.Status()
			if status.Completed > lastCompleted {
				cmd.Printf("\r%3.0f%% (%d/%d) %s",
					status.PercentComplete, status.Completed, status.Total, status.StatusText)
				lastCompleted = status.Completed
			}
		}
	}
}

func kindList() string {
	kinds := domain.AllScanKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
