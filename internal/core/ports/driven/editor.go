package driven

import (
	"context"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// CompleteOptions holds generation parameters for a single completion.
type CompleteOptions struct {
	// MaxTokens limits the response length (0 = provider default).
	MaxTokens int

	// Temperature controls randomness (0 = provider default).
	Temperature float64
}

// ChatService is the low-level completion surface a language-model
// provider offers. Provider adapters implement only this; the editor
// logic that turns completions into suggestions, rewrites and scans
// is shared across providers.
//
// Implementations may include:
//   - OpenAI (and API-compatible local servers)
//   - Anthropic
//   - Ollama (local)
type ChatService interface {
	// Complete sends one prompt and returns the model's reply.
	Complete(ctx context.Context, prompt string, opts CompleteOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a session.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// EditorService provides the language-model side of manuscript
// revision. It decides WHAT text should change; the core owns how a
// proposed change is anchored, validated, applied and rolled back.
// This is an optional service - when nil, the review, sweep and scan
// features are disabled and the CLI reports domain.ErrEditorUnavailable.
type EditorService interface {
	// StreamSuggestions produces anchored edit suggestions for the
	// manuscript, invoking onSuggestion once per discovered suggestion
	// and onProgress with free-text status updates as work advances.
	// Suggestions delivered before a failure remain valid; the caller
	// keeps them.
	StreamSuggestions(
		ctx context.Context,
		ms domain.Manuscript,
		onProgress func(status string),
		onSuggestion func(s domain.Suggestion),
	) error

	// RewriteDocument rewrites a single chapter against the combined
	// instruction block. projectContext carries whatever whole-
	// manuscript context the implementation wants to pass along;
	// approxWords hints at the expected output length.
	RewriteDocument(
		ctx context.Context,
		text, instructions, projectContext string,
		approxWords int,
	) (string, error)

	// Scan runs one analysis pass over the manuscript. The returned
	// result carries a payload only for the requested kind.
	Scan(ctx context.Context, kind domain.ScanKind, ms domain.Manuscript) (*domain.ScanResult, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup before committing to a session.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// AIConfigValidator validates editor provider configurations.
// Implementations typically create a throwaway service and ping it.
type AIConfigValidator interface {
	// ValidateEditor validates an editor configuration by pinging
	// the provider.
	ValidateEditor(config *domain.EditorSettings) error
}
