package driving

import (
	"time"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetEditorProvider configures the editor provider.
	SetEditorProvider(provider domain.AIProvider, model, apiKey string) error

	// SetSweepPacing updates the minimum gap between sweep rewrite calls.
	SetSweepPacing(interval time.Duration) error

	// Validate checks if current settings are consistent.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// ValidateEditorConfig validates the current editor configuration
	// by pinging the provider.
	ValidateEditorConfig() error
}
