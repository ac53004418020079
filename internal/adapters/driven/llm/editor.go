// Package llm implements the manuscript editor on top of a chat
// completion provider. Provider adapters (openai, anthropic, ollama)
// supply raw completions; this package owns the prompts and the
// parsing of model output into suggestions, rewrites and scan
// results.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// Ensure EditorService implements the interfaces.
var (
	_ driven.EditorService    = (*EditorService)(nil)
	_ driven.PromptStoreAware = (*EditorService)(nil)
)

// EditorService provides manuscript revision operations over any
// chat completion provider.
type EditorService struct {
	chat        driven.ChatService
	promptStore driven.PromptStore
}

// NewEditorService creates an editor service backed by the given
// chat provider.
func NewEditorService(chat driven.ChatService) *EditorService {
	return &EditorService{chat: chat}
}

// defaultSuggestPrompt is the fallback prompt when no PromptStore is configured.
const defaultSuggestPrompt = `You are a line editor reviewing one chapter of a novel.
Find specific passages that should be improved (consistency, pacing, prose).
For each, quote the passage EXACTLY as it appears so it can be located verbatim.

Return ONLY a JSON array, no prose, with objects of this shape:
[{"kind":"consistency|pacing|prose|other","original_text":"...","suggested_text":"...","rationale":"..."}]

Chapter: %s

%s`

// defaultRewritePrompt is the fallback prompt when no PromptStore is configured.
const defaultRewritePrompt = `Rewrite this chapter to resolve the issues below.
%s
Context:
%s
Keep the chapter at roughly %d words. Return ONLY the rewritten chapter text.

Chapter:
%s`

// suggestionPayload is the wire shape for streamed suggestions.
type suggestionPayload struct {
	Kind          string `json:"kind"`
	OriginalText  string `json:"original_text"`
	SuggestedText string `json:"suggested_text"`
	Rationale     string `json:"rationale"`
}

// StreamSuggestions reviews the manuscript chapter by chapter,
// delivering each discovered suggestion as soon as its chapter's
// review call returns. A failure mid-manuscript leaves the already
// delivered suggestions with the caller.
func (s *EditorService) StreamSuggestions(
	ctx context.Context,
	ms domain.Manuscript,
	onProgress func(status string),
	onSuggestion func(sug domain.Suggestion),
) error {
	promptTemplate := s.loadPrompt(driven.PromptSuggest, defaultSuggestPrompt)

	for i, doc := range ms.Documents {
		onProgress(fmt.Sprintf("reviewing %q (%d of %d)", doc.Title, i+1, len(ms.Documents)))

		prompt := fmt.Sprintf(promptTemplate, doc.Title, doc.Text)
		raw, err := s.chat.Complete(ctx, prompt, driven.CompleteOptions{Temperature: 0.3})
		if err != nil {
			return fmt.Errorf("review of %s: %w", doc.ID, err)
		}

		var payloads []suggestionPayload
		if err := json.Unmarshal([]byte(stripCodeFence(raw)), &payloads); err != nil {
			return fmt.Errorf("review of %s: decode suggestions: %w", doc.ID, err)
		}

		for _, p := range payloads {
			// Anchors the model misquoted cannot be located later;
			// drop them here rather than stream dud suggestions.
			if p.OriginalText == "" || !strings.Contains(doc.Text, p.OriginalText) {
				logger.Debug("dropping suggestion with unlocatable anchor in %s", doc.ID)
				continue
			}
			onSuggestion(domain.Suggestion{
				DocumentID:    doc.ID,
				Kind:          domain.SuggestionKind(p.Kind),
				OriginalText:  p.OriginalText,
				SuggestedText: p.SuggestedText,
				Rationale:     p.Rationale,
			})
		}
	}

	return nil
}

// RewriteDocument rewrites one chapter against the combined
// instruction block.
func (s *EditorService) RewriteDocument(
	ctx context.Context,
	text, instructions, projectContext string,
	approxWords int,
) (string, error) {
	promptTemplate := s.loadPrompt(driven.PromptRewrite, defaultRewritePrompt)
	prompt := fmt.Sprintf(promptTemplate, instructions, projectContext, approxWords, text)

	result, err := s.chat.Complete(ctx, prompt, driven.CompleteOptions{Temperature: 0.7})
	if err != nil {
		return "", fmt.Errorf("rewrite document: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// Scan runs one analysis pass and decodes the kind-specific payload.
func (s *EditorService) Scan(ctx context.Context, kind domain.ScanKind, ms domain.Manuscript) (*domain.ScanResult, error) {
	prompt, err := s.scanPrompt(kind, ms)
	if err != nil {
		return nil, err
	}

	raw, err := s.chat.Complete(ctx, prompt, driven.CompleteOptions{Temperature: 0.2})
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", kind, err)
	}

	result, err := decodeScanResult(kind, stripCodeFence(raw))
	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", kind, err)
	}
	return result, nil
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func (s *EditorService) loadPrompt(name, fallback string) string {
	if s.promptStore == nil {
		return fallback
	}
	prompt, err := s.promptStore.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}

// ModelName returns the name of the model being used.
func (s *EditorService) ModelName() string {
	return s.chat.ModelName()
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (s *EditorService) SetPromptStore(store driven.PromptStore) {
	s.promptStore = store
}

// Ping validates the underlying provider is reachable.
func (s *EditorService) Ping(ctx context.Context) error {
	return s.chat.Ping(ctx)
}

// Close releases resources.
func (s *EditorService) Close() error {
	return s.chat.Close()
}

// stripCodeFence removes a surrounding markdown code fence, which
// models add despite instructions to return bare JSON.
func stripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
