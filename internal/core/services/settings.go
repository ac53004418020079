package services

import (
	"fmt"
	"time"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEditorProvider = "editor.provider"
	keyEditorModel    = "editor.model"
	keyEditorBaseURL  = "editor.base_url"
	keyEditorAPIKey   = "editor.api_key"
	keySweepPacing    = "sweep.pacing_interval"
	keySweepTimeout   = "sweep.call_timeout"
	keyStorageDBPath  = "storage.database_path"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Editor: domain.EditorSettings{
			Provider: s.getProvider(keyEditorProvider),
			Model:    s.configStore.GetString(keyEditorModel),
			BaseURL:  s.configStore.GetString(keyEditorBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEditorAPIKey),
		},
		Sweep: domain.SweepSettings{
			PacingInterval: s.getDuration(keySweepPacing, defaults.Sweep.PacingInterval),
			CallTimeout:    s.getDuration(keySweepTimeout, defaults.Sweep.CallTimeout),
		},
		Storage: domain.StorageSettings{
			DatabasePath: s.configStore.GetString(keyStorageDBPath),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyEditorProvider, settings.Editor.Provider.String()); err != nil {
		return fmt.Errorf("save editor provider: %w", err)
	}
	if err := s.configStore.Set(keyEditorModel, settings.Editor.Model); err != nil {
		return fmt.Errorf("save editor model: %w", err)
	}
	if err := s.configStore.Set(keyEditorBaseURL, settings.Editor.BaseURL); err != nil {
		return fmt.Errorf("save editor base_url: %w", err)
	}
	if settings.Editor.APIKey != "" {
		if err := s.configStore.Set(keyEditorAPIKey, settings.Editor.APIKey); err != nil {
			return fmt.Errorf("save editor api_key: %w", err)
		}
	}

	if err := s.configStore.Set(keySweepPacing, settings.Sweep.PacingInterval.String()); err != nil {
		return fmt.Errorf("save sweep pacing_interval: %w", err)
	}
	if err := s.configStore.Set(keySweepTimeout, settings.Sweep.CallTimeout.String()); err != nil {
		return fmt.Errorf("save sweep call_timeout: %w", err)
	}

	if err := s.configStore.Set(keyStorageDBPath, settings.Storage.DatabasePath); err != nil {
		return fmt.Errorf("save storage database_path: %w", err)
	}

	return nil
}

// SetEditorProvider configures the editor provider.
func (s *SettingsService) SetEditorProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid editor provider: %s", provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("provider %s requires an API key", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Editor.Provider = provider
	settings.Editor.Model = model
	if apiKey != "" {
		settings.Editor.APIKey = apiKey
	}

	return s.Save(settings)
}

// SetSweepPacing updates the minimum gap between sweep rewrite calls.
func (s *SettingsService) SetSweepPacing(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("pacing interval must be positive, got %s", interval)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Sweep.PacingInterval = interval
	return s.Save(settings)
}

// Validate checks if current settings are consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if settings.Editor.Provider != "" && !settings.Editor.Provider.IsValid() {
		return fmt.Errorf("unrecognised editor provider: %s", settings.Editor.Provider)
	}
	if settings.Editor.Provider.RequiresAPIKey() && settings.Editor.APIKey == "" {
		return fmt.Errorf("editor provider %s requires an API key", settings.Editor.Provider)
	}
	if settings.Sweep.PacingInterval <= 0 {
		return fmt.Errorf("sweep pacing interval must be positive")
	}
	if settings.Sweep.CallTimeout <= 0 {
		return fmt.Errorf("sweep call timeout must be positive")
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEditorConfig validates the current editor configuration by
// pinging the provider.
func (s *SettingsService) ValidateEditorConfig() error {
	if s.aiValidator == nil {
		return nil
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	return s.aiValidator.ValidateEditor(&settings.Editor)
}

// getProvider reads a provider key, returning empty (unconfigured) for
// unrecognised values.
func (s *SettingsService) getProvider(key string) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return ""
	}

	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return ""
	}
	return provider
}

// getDuration reads a duration key stored as a string (e.g. "1.5s").
func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}

	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}
