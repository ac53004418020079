// Redraft is an AI-assisted manuscript revision tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/ai"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/config/file"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/storage/sqlite"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driving/cli"
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/core/services"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// currentProjectKey mirrors the config key the CLI writes when a
// project is imported or opened.
const currentProjectKey = "project.current"

func main() {
	cli.SetVersion(version)

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("initialising config: %w", err)
	}

	settingsSvc := services.NewSettingsService(configStore, ai.NewConfigValidator())
	settings, err := settingsSvc.Get()
	if err != nil {
		return fmt.Errorf("loading settings: %w", err)
	}

	store, err := sqlite.NewStore(settings.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("opening project store: %w", err)
	}
	defer store.Close() //nolint:errcheck

	editor, prompts := buildEditor(&settings.Editor, "")
	if editor != nil {
		defer editor.Close() //nolint:errcheck
	}
	if prompts != nil {
		defer prompts.Close() //nolint:errcheck
	}

	svcs := cli.Services{
		Settings: settingsSvc,
		Store:    store,
		Config:   configStore,
	}

	// Session services only exist when a project is open. Without one
	// the project, settings and version commands still work; the rest
	// report the missing project.
	if ms := loadCurrentManuscript(configStore, store); ms != nil {
		project := services.NewProjectService(store, *ms)

		review := services.NewReviewService(project, editor, store)
		if suggestions, err := store.GetSuggestions(context.Background(), ms.ID); err == nil {
			review.LoadSuggestions(suggestions)
		}

		scan := services.NewScanService(project, editor, store, loadAnalysis(store, ms.ID))
		sweep := services.NewSweepService(project, scan, editor, services.SweepConfig{
			PacingInterval: settings.Sweep.PacingInterval,
			CallTimeout:    settings.Sweep.CallTimeout,
		})

		svcs.Project = project
		svcs.Review = review
		svcs.Scan = scan
		svcs.Sweep = sweep
	}

	cli.SetServices(svcs)
	return cli.Execute()
}

// buildEditor creates the editor service for the configured provider.
// An unconfigured or broken provider leaves the session offline rather
// than blocking the whole CLI.
//
// When the editor accepts custom prompts, the returned prompt store
// watches its directory so edits take effect without a restart. The
// caller is responsible for closing it.
func buildEditor(settings *domain.EditorSettings, promptDir string) (driven.EditorService, *file.PromptStore) {
	editor, err := ai.CreateEditorService(settings)
	if err != nil {
		logger.Warn("editor unavailable: %v", err)
		return nil, nil
	}
	if editor == nil {
		return nil, nil
	}

	aware, ok := editor.(driven.PromptStoreAware)
	if !ok {
		return editor, nil
	}

	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		logger.Warn("prompt store unavailable, using built-in prompts: %v", err)
		return editor, nil
	}
	aware.SetPromptStore(prompts)

	if err := prompts.Watch(); err != nil {
		logger.Warn("prompt watcher unavailable, prompt edits need a restart: %v", err)
	}
	return editor, prompts
}

// loadCurrentManuscript returns the active manuscript, or nil when
// none is configured or it no longer exists.
func loadCurrentManuscript(config driven.ConfigStore, store driven.ProjectStore) *domain.Manuscript {
	id := config.GetString(currentProjectKey)
	if id == "" {
		return nil
	}

	ms, err := store.GetManuscript(context.Background(), id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("loading manuscript %s: %v", id, err)
		}
		return nil
	}
	return ms
}

// loadAnalysis returns the persisted analysis record, or a zero record
// when none has been saved yet.
func loadAnalysis(store driven.ProjectStore, manuscriptID string) domain.AnalysisRecord {
	rec, err := store.GetAnalysis(context.Background(), manuscriptID)
	if err != nil {
		return domain.AnalysisRecord{}
	}
	return *rec
}
