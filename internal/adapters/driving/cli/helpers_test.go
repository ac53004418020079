package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/storage/memory"
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/services"
)

// fakeEditor is a deterministic stand-in for the AI editor. It offers
// one suggestion per chapter anchored to the chapter's first word,
// rewrites by prefixing, and returns canned scan results.
type fakeEditor struct {
	streamErr error
	scanErr   error
}

func (f *fakeEditor) StreamSuggestions(
	_ context.Context,
	ms domain.Manuscript,
	onProgress func(string),
	onSuggestion func(domain.Suggestion),
) error {
	for i, doc := range ms.Documents {
		onProgress(fmt.Sprintf("reviewing %q (%d of %d)", doc.Title, i+1, len(ms.Documents)))
		if f.streamErr != nil {
			return f.streamErr
		}
		fields := strings.Fields(doc.Text)
		if len(fields) == 0 {
			continue
		}
		onSuggestion(domain.Suggestion{
			DocumentID:    doc.ID,
			Kind:          domain.SuggestionProse,
			OriginalText:  fields[0],
			SuggestedText: strings.ToUpper(fields[0]),
			Rationale:     "stronger opening",
		})
	}
	return nil
}

func (f *fakeEditor) RewriteDocument(
	_ context.Context,
	text, _, _ string,
	_ int,
) (string, error) {
	return "revised: " + text, nil
}

func (f *fakeEditor) Scan(
	_ context.Context,
	kind domain.ScanKind,
	_ domain.Manuscript,
) (*domain.ScanResult, error) {
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	result := &domain.ScanResult{}
	switch kind {
	case domain.ScanSynopsis:
		result.Synopsis = &domain.SynopsisResult{Overall: "a story"}
	case domain.ScanHealth:
		result.Health = &domain.HealthReport{Score: 70, GlobalIssues: []string{"rushed ending"}}
	case domain.ScanContinuity:
		result.Continuity = &domain.ContinuityReport{}
	case domain.ScanThemes:
		result.Themes = &domain.ThemeReport{Themes: []string{"loss"}}
	case domain.ScanCohesion:
		result.Cohesion = &domain.CohesionReport{}
	}
	return result, nil
}

func (f *fakeEditor) ModelName() string { return "fake-model" }

func (f *fakeEditor) Ping(_ context.Context) error { return nil }

func (f *fakeEditor) Close() error { return nil }

// memConfigStore is an in-memory config store for tests.
type memConfigStore struct {
	values map[string]any
}

func newMemConfigStore() *memConfigStore {
	return &memConfigStore{values: make(map[string]any)}
}

func (m *memConfigStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *memConfigStore) GetString(key string) string {
	if v, ok := m.values[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (m *memConfigStore) GetInt(key string) int {
	if v, ok := m.values[key]; ok {
		if i, ok := v.(int); ok {
			return i
		}
	}
	return 0
}

func (m *memConfigStore) GetBool(key string) bool {
	if v, ok := m.values[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

func (m *memConfigStore) Set(key string, value any) error {
	m.values[key] = value
	return nil
}

func (m *memConfigStore) Save() error { return nil }

func (m *memConfigStore) Load() error { return nil }

func (m *memConfigStore) Path() string { return "mem://config.toml" }

// noopValidator accepts every editor configuration.
type noopValidator struct{}

func (noopValidator) ValidateEditor(_ *domain.EditorSettings) error { return nil }

func testManuscript() domain.Manuscript {
	return domain.Manuscript{
		ID:    "m1",
		Title: "Test Novel",
		Documents: []domain.Document{
			{ID: "c1", Title: "Chapter One", Text: "Once upon a time.", WordCount: 4},
			{ID: "c2", Title: "Chapter Two", Text: "The end came fast.", WordCount: 4},
		},
	}
}

// setupTestServices wires real services over in-memory adapters and
// installs them in the command tree. The returned cleanup restores
// the previous wiring.
func setupTestServices() func() {
	oldProject := projectSession
	oldReviewer := reviewer
	oldSweep := sweepPipeline
	oldScan := scanRunner
	oldSettings := settingsService
	oldStore := projectStore
	oldConfig := configStore

	store := memory.NewProjectStore()
	editor := &fakeEditor{}

	project := services.NewProjectService(store, testManuscript())
	review := services.NewReviewService(project, editor, store)
	scan := services.NewScanService(project, editor, store, domain.AnalysisRecord{})
	sweep := services.NewSweepService(project, scan, editor, services.SweepConfig{
		PacingInterval: time.Millisecond,
	})
	settings := services.NewSettingsService(newMemConfigStore(), noopValidator{})

	SetServices(Services{
		Project:  project,
		Review:   review,
		Sweep:    sweep,
		Scan:     scan,
		Settings: settings,
		Store:    store,
		Config:   newMemConfigStore(),
	})

	return func() {
		projectSession = oldProject
		reviewer = oldReviewer
		sweepPipeline = oldSweep
		scanRunner = oldScan
		settingsService = oldSettings
		projectStore = oldStore
		configStore = oldConfig
	}
}
