package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// currentProjectKey is the config key holding the active manuscript ID.
const currentProjectKey = "project.current"

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage manuscripts",
	Long:  `Import, list, open, or delete manuscripts.`,
}

var projectImportCmd = &cobra.Command{
	Use:   "import [title] [chapter-files...]",
	Short: "Import chapter files as a new manuscript",
	Long: `Creates a new manuscript from plain-text chapter files.

Files are imported in the order given (sorted when a glob expands
them), one chapter per file, with the file name as the chapter title.
The new manuscript becomes the active project.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runProjectImport,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored manuscripts",
	RunE:  runProjectList,
}

var projectOpenCmd = &cobra.Command{
	Use:   "open [manuscript-id]",
	Short: "Make a manuscript the active project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectOpen,
}

var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active manuscript's chapters",
	RunE:  runProjectShow,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [manuscript-id]",
	Short: "Delete a manuscript and its stored suggestions",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	projectCmd.AddCommand(projectImportCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectOpenCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectImport(cmd *cobra.Command, args []string) error {
	if projectStore == nil {
		return errors.New("project store not configured")
	}

	title := args[0]
	files := append([]string(nil), args[1:]...)
	sort.Strings(files)

	ms := domain.Manuscript{
		ID:    uuid.NewString(),
		Title: title,
	}

	for _, path := range files {
		data, err := os.ReadFile(path) //nolint:gosec // User-supplied chapter path
		if err != nil {
			return fmt.Errorf("reading chapter %s: %w", path, err)
		}

		doc := domain.Document{
			ID:    uuid.NewString(),
			Title: chapterTitle(path),
		}
		doc.SetText(string(data))
		ms.Documents = append(ms.Documents, doc)
	}

	ctx := context.Background()
	if err := projectStore.SaveManuscript(ctx, &ms); err != nil {
		return fmt.Errorf("saving manuscript: %w", err)
	}

	if err := setCurrentProject(ms.ID); err != nil {
		return err
	}

	cmd.Printf("Imported %q: %d chapters, %d words.\n", ms.Title, len(ms.Documents), ms.WordCount())
	cmd.Printf("Manuscript ID: %s\n", ms.ID)
	return nil
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectStore == nil {
		return errors.New("project store not configured")
	}

	manuscripts, err := projectStore.ListManuscripts(context.Background())
	if err != nil {
		return fmt.Errorf("listing manuscripts: %w", err)
	}

	if len(manuscripts) == 0 {
		cmd.Println("No manuscripts. Import one with 'redraft project import'.")
		return nil
	}

	current := ""
	if configStore != nil {
		current = configStore.GetString(currentProjectKey)
	}

	cmd.Println("Manuscripts:")
	for _, ms := range manuscripts {
		marker := " "
		if ms.ID == current {
			marker = "*"
		}
		cmd.Printf("  %s %s  %s\n", marker, ms.ID, ms.Title)
	}
	return nil
}

func runProjectOpen(cmd *cobra.Command, args []string) error {
	if projectStore == nil {
		return errors.New("project store not configured")
	}

	id := args[0]
	ms, err := projectStore.GetManuscript(context.Background(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no manuscript with ID %s", id)
		}
		return fmt.Errorf("loading manuscript: %w", err)
	}

	if err := setCurrentProject(ms.ID); err != nil {
		return err
	}

	cmd.Printf("Active project: %q (%d chapters)\n", ms.Title, len(ms.Documents))
	return nil
}

func runProjectShow(cmd *cobra.Command, _ []string) error {
	if projectSession == nil {
		return errors.New("no active project; run 'redraft project open' first")
	}

	ms := projectSession.Manuscript()
	cmd.Printf("%s\n", ms.Title)
	cmd.Printf("ID: %s\n\n", ms.ID)

	for i, doc := range ms.Documents {
		cmd.Printf("  %2d. %s (%d words)\n", i+1, doc.Title, doc.WordCount)
	}
	cmd.Printf("\nTotal: %d words across %d chapters.\n", ms.WordCount(), len(ms.Documents))
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	if projectStore == nil {
		return errors.New("project store not configured")
	}

	id := args[0]
	if err := projectStore.DeleteManuscript(context.Background(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no manuscript with ID %s", id)
		}
		return fmt.Errorf("deleting manuscript: %w", err)
	}

	if configStore != nil && configStore.GetString(currentProjectKey) == id {
		if err := setCurrentProject(""); err != nil {
			return err
		}
	}

	cmd.Printf("Deleted manuscript %s.\n", id)
	return nil
}

// setCurrentProject records the active manuscript ID in config.
func setCurrentProject(id string) error {
	if configStore == nil {
		return nil
	}
	if err := configStore.Set(currentProjectKey, id); err != nil {
		return fmt.Errorf("setting active project: %w", err)
	}
	if err := configStore.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// chapterTitle derives a chapter title from a file path.
func chapterTitle(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")
	return strings.TrimSpace(name)
}
