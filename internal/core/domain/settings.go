package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies a language-model provider for the editor.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is the Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EditorSettings holds editor provider configuration.
type EditorSettings struct {
	// Provider is the language-model provider.
	Provider AIProvider

	// Model is the model name.
	Model string

	// BaseURL is the API endpoint (for Ollama and compatible servers).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the editor provider is set up.
func (e EditorSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// SweepSettings holds batch rewrite pacing configuration.
type SweepSettings struct {
	// PacingInterval is the minimum gap between rewrite calls.
	PacingInterval time.Duration

	// CallTimeout bounds a single rewrite call.
	CallTimeout time.Duration
}

// StorageSettings holds project persistence configuration.
type StorageSettings struct {
	// DatabasePath is the SQLite database location. Empty means
	// in-memory only (nothing survives the session).
	DatabasePath string
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Editor holds editor provider settings.
	Editor EditorSettings

	// Sweep holds batch rewrite pacing settings.
	Sweep SweepSettings

	// Storage holds persistence settings.
	Storage StorageSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// The editor is left unconfigured by default; users must explicitly
// configure a provider before review, sweep and scan work.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Editor: EditorSettings{},
		Sweep: SweepSettings{
			PacingInterval: 1500 * time.Millisecond,
			CallTimeout:    3 * time.Minute,
		},
		Storage: StorageSettings{},
	}
}

// AllEditorProviders returns providers that can back the editor.
func AllEditorProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEditorModels returns the recommended default model per provider.
func DefaultEditorModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}
