package services

import (
	"context"
	"sync"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEditor implements driven.EditorService for testing.
type mockEditor struct {
	mu sync.Mutex

	// StreamSuggestions behaviour.
	suggestions []domain.Suggestion
	streamErr   error // returned after delivering failAfter suggestions
	failAfter   int   // 0 with streamErr set fails before any delivery

	// RewriteDocument behaviour.
	rewriteFn    func(text string) (string, error)
	rewriteCalls []string // texts passed to RewriteDocument, in order
	instructions []string

	// Scan behaviour.
	scanResult *domain.ScanResult
	scanErr    error
	scanKinds  []domain.ScanKind
}

var _ driven.EditorService = (*mockEditor)(nil)

func (m *mockEditor) StreamSuggestions(
	_ context.Context,
	_ domain.Manuscript,
	onProgress func(string),
	onSuggestion func(domain.Suggestion),
) error {
	onProgress("analysing chapters")
	for i, sug := range m.suggestions {
		if m.streamErr != nil && i == m.failAfter {
			return m.streamErr
		}
		onSuggestion(sug)
	}
	if m.streamErr != nil && m.failAfter >= len(m.suggestions) {
		return m.streamErr
	}
	return nil
}

func (m *mockEditor) RewriteDocument(
	_ context.Context,
	text, instructions, _ string,
	_ int,
) (string, error) {
	m.mu.Lock()
	m.rewriteCalls = append(m.rewriteCalls, text)
	m.instructions = append(m.instructions, instructions)
	m.mu.Unlock()
	if m.rewriteFn != nil {
		return m.rewriteFn(text)
	}
	return "rewritten: " + text, nil
}

func (m *mockEditor) Scan(_ context.Context, kind domain.ScanKind, _ domain.Manuscript) (*domain.ScanResult, error) {
	m.mu.Lock()
	m.scanKinds = append(m.scanKinds, kind)
	m.mu.Unlock()
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	return m.scanResult, nil
}

func (m *mockEditor) ModelName() string         { return "mock-editor" }
func (m *mockEditor) Ping(_ context.Context) error { return nil }
func (m *mockEditor) Close() error              { return nil }

// mockConfigStore implements driven.ConfigStore in memory.
type mockConfigStore struct {
	data    map[string]any
	setErr  error
	setKeys []string
}

var _ driven.ConfigStore = (*mockConfigStore)(nil)

func newMockConfigStore() *mockConfigStore {
	return &mockConfigStore{data: make(map[string]any)}
}

func (m *mockConfigStore) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockConfigStore) GetString(key string) string {
	if val, ok := m.data[key].(string); ok {
		return val
	}
	return ""
}

func (m *mockConfigStore) GetInt(key string) int {
	if val, ok := m.data[key].(int); ok {
		return val
	}
	return 0
}

func (m *mockConfigStore) GetBool(key string) bool {
	if val, ok := m.data[key].(bool); ok {
		return val
	}
	return false
}

func (m *mockConfigStore) Set(key string, value any) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.setKeys = append(m.setKeys, key)
	return nil
}

func (m *mockConfigStore) Save() error { return nil }
func (m *mockConfigStore) Load() error { return nil }
func (m *mockConfigStore) Path() string { return "mock://config.toml" }

// mockValidator implements driven.AIConfigValidator.
type mockValidator struct {
	err    error
	called int
}

var _ driven.AIConfigValidator = (*mockValidator)(nil)

func (m *mockValidator) ValidateEditor(_ *domain.EditorSettings) error {
	m.called++
	return m.err
}

// --- Test helpers ---

func testManuscript() domain.Manuscript {
	return domain.Manuscript{
		ID:    "m1",
		Title: "Test Novel",
		Documents: []domain.Document{
			{ID: "c1", Title: "Chapter One", Text: "The sky was blue. The sky was blue again.", WordCount: 9},
			{ID: "c2", Title: "Chapter Two", Text: "It rained for a week.", WordCount: 5},
			{ID: "c3", Title: "Chapter Three", Text: "Then the sun returned.", WordCount: 4},
		},
	}
}
