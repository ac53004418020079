// Package ai provides factory functions for creating editor service
// adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/llm"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/llm/anthropic"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/llm/ollama"
	"github.com/redraft-labs/redraft-cli/internal/adapters/driven/llm/openai"
	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEditorService creates the editor service for the configured
// provider. Returns nil if no provider is configured; the caller runs
// in offline mode with review, sweep and scan disabled.
func CreateEditorService(settings *domain.EditorSettings) (driven.EditorService, error) {
	chat, err := createChatService(settings)
	if err != nil {
		return nil, err
	}
	if chat == nil {
		return nil, nil
	}
	return llm.NewEditorService(chat), nil
}

// CreateAndValidateEditorService creates an editor service and
// validates connectivity. Returns the service if successful, or an
// error with guidance.
func CreateAndValidateEditorService(settings *domain.EditorSettings) (driven.EditorService, error) {
	svc, err := CreateEditorService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'redraft settings wizard' to fix",
			domain.ErrEditorUnavailable, err)
	}
	if svc == nil {
		return nil, nil
	}

	// Validate connectivity.
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'redraft settings wizard' to fix",
			domain.ErrEditorUnavailable, err)
	}

	return svc, nil
}

// ValidateEditorConfig validates an editor configuration by creating a
// service and pinging it. This is intended for use in the settings
// wizard to validate credentials on configuration.
func ValidateEditorConfig(settings *domain.EditorSettings) error {
	svc, err := CreateEditorService(settings)
	if err != nil {
		return err
	}
	if svc == nil {
		return nil
	}
	defer svc.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return svc.Ping(ctx)
}

// createChatService creates the provider-specific chat service.
// Returns nil if the provider is not configured.
func createChatService(settings *domain.EditorSettings) (driven.ChatService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollama.NewChatService(ollama.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openai.NewChatService(openai.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropic.NewChatService(anthropic.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unsupported editor provider: %s", settings.Provider)
	}
}
