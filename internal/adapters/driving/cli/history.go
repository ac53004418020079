package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Restore the previous manuscript state",
	Long: `Steps the whole manuscript back to the snapshot taken before
the most recent change. History holds the last ten states; undoing
past the oldest snapshot is a no-op.`,
	RunE: runUndo,
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Restore the next manuscript state",
	Long: `Steps the manuscript forward again after an undo. Making a
new change after an undo discards the redo states.`,
	RunE: runRedo,
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show undo history position",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(historyCmd)
}

func runUndo(cmd *cobra.Command, _ []string) error {
	if projectSession == nil {
		return errors.New("no active project; run 'redraft project open' first")
	}

	if !projectSession.CanUndo() {
		cmd.Println("Nothing to undo.")
		return nil
	}

	ms, err := projectSession.Undo(context.Background())
	if err != nil {
		return err
	}

	cursor, length := projectSession.HistoryPosition()
	cmd.Printf("Restored %q (%d words). History: %d of %d.\n",
		ms.Title, ms.WordCount(), cursor+1, length)
	return nil
}

func runRedo(cmd *cobra.Command, _ []string) error {
	if projectSession == nil {
		return errors.New("no active project; run 'redraft project open' first")
	}

	if !projectSession.CanRedo() {
		cmd.Println("Nothing to redo.")
		return nil
	}

	ms, err := projectSession.Redo(context.Background())
	if err != nil {
		return err
	}

	cursor, length := projectSession.HistoryPosition()
	cmd.Printf("Restored %q (%d words). History: %d of %d.\n",
		ms.Title, ms.WordCount(), cursor+1, length)
	return nil
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if projectSession == nil {
		return errors.New("no active project; run 'redraft project open' first")
	}

	cursor, length := projectSession.HistoryPosition()
	cmd.Printf("History: position %d of %d snapshots.\n", cursor+1, length)
	if projectSession.CanUndo() {
		cmd.Println("Undo available.")
	}
	if projectSession.CanRedo() {
		cmd.Println("Redo available.")
	}
	return nil
}
