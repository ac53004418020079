package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads editor prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSuggest: `You are a line editor reviewing one chapter of a novel.
Find specific passages that should be improved (consistency, pacing, prose).
For each, quote the passage EXACTLY as it appears so it can be located verbatim.

Return ONLY a JSON array, no prose, with objects of this shape:
[{"kind":"consistency|pacing|prose|other","original_text":"...","suggested_text":"...","rationale":"..."}]

Chapter: %s

%s`,

	driven.PromptRewrite: `Rewrite this chapter to resolve the issues below.
%s
Context:
%s
Keep the chapter at roughly %d words. Return ONLY the rewritten chapter text.

Chapter:
%s`,

	driven.PromptScanPrefix + domain.ScanSynopsis.String(): `Summarise this manuscript.
Return ONLY JSON: {"overall":"...","chapters":[{"document_id":"...","summary":"..."}]}
Use the chapter IDs given in the headers.

%s`,

	driven.PromptScanPrefix + domain.ScanHealth.String(): `Assess this manuscript's overall health.
Return ONLY JSON: {"score":0-100,"strengths":["..."],"global_issues":["..."]}

%s`,

	driven.PromptScanPrefix + domain.ScanContinuity.String(): `Find contradictions between chapters of this manuscript
(facts, descriptions, established details that conflict).
Return ONLY JSON: {"issues":[{"description":"...","document_ids":["..."]}]}

%s`,

	driven.PromptScanPrefix + domain.ScanThemes.String(): `Extract the themes and plot threads of this manuscript.
Return ONLY JSON:
{"themes":["..."],"threads":[{"name":"...","status":"resolved|partial|unresolved","summary":"..."}]}

%s`,

	driven.PromptScanPrefix + domain.ScanCohesion.String(): `Check this manuscript for cross-chapter cohesion problems:
character/place naming inconsistencies and timeline inconsistencies.
Return ONLY JSON: {"naming_issues":["..."],"timeline_issues":["..."],"notes":"..."}

%s`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.redraft/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".redraft", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Watch starts watching the prompt directory and invalidates cached
// prompts when files change, so edits take effect without a restart.
// Stop the watcher with Close.
func (s *PromptStore) Watch() error {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		return s.initErr
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create prompt watcher: %w", err)
	}
	if err := watcher.Add(s.promptDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch prompt directory: %w", err)
	}

	s.watcher = watcher
	s.done = make(chan struct{})

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				name := strings.TrimSuffix(filepath.Base(event.Name), ".txt")
				s.mu.Lock()
				delete(s.cache, name)
				s.mu.Unlock()
				logger.Debug("prompt %q changed on disk, cache invalidated", name)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("prompt watcher: %v", err)
			case <-s.done:
				return
			}
		}
	}()

	return nil
}

// Close stops the directory watcher if one is running.
func (s *PromptStore) Close() error {
	if s.watcher == nil {
		return nil
	}
	close(s.done)
	return s.watcher.Close()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Redraft Prompts

This directory contains customisable prompts used by Redraft's editor features.

## Files

- ` + "`suggest.txt`" + ` - Asks for anchored edit suggestions on one chapter
- ` + "`rewrite.txt`" + ` - Asks for a whole-chapter rewrite against an issue list
- ` + "`scan_*.txt`" + ` - Per-kind manuscript analysis prompts

## Customisation

Edit any file to customise editor behaviour. Changes take effect on the
next command; a long-lived session picks them up automatically.

## Format Placeholders

Prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the chapter text)
- ` + "`%d`" + ` - Integer (e.g., approximate word count)

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
