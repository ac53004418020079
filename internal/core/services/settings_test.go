package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

// TestSettings_GetDefaults verifies an empty store yields a working
// configuration with the editor left unconfigured.
func TestSettings_GetDefaults(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)

	settings, err := svc.Get()
	require.NoError(t, err)

	assert.False(t, settings.Editor.IsConfigured())
	assert.Equal(t, 1500*time.Millisecond, settings.Sweep.PacingInterval)
	assert.Equal(t, 3*time.Minute, settings.Sweep.CallTimeout)
}

// TestSettings_SaveRoundTrip verifies saved settings read back intact.
func TestSettings_SaveRoundTrip(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)

	in := &domain.AppSettings{
		Editor: domain.EditorSettings{
			Provider: domain.AIProviderAnthropic,
			Model:    "claude-3-5-sonnet-latest",
			APIKey:   "sk-ant-test",
		},
		Sweep: domain.SweepSettings{
			PacingInterval: 2 * time.Second,
			CallTimeout:    time.Minute,
		},
		Storage: domain.StorageSettings{DatabasePath: "/tmp/redraft.db"},
	}
	require.NoError(t, svc.Save(in))

	out, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderAnthropic, out.Editor.Provider)
	assert.Equal(t, "sk-ant-test", out.Editor.APIKey)
	assert.Equal(t, 2*time.Second, out.Sweep.PacingInterval)
	assert.Equal(t, "/tmp/redraft.db", out.Storage.DatabasePath)
}

// TestSettings_SetEditorProvider verifies provider updates persist and
// invalid providers are rejected.
func TestSettings_SetEditorProvider(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)

	err := svc.SetEditorProvider(domain.AIProviderOllama, "llama3.2", "")
	require.NoError(t, err)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOllama, settings.Editor.Provider)
	assert.True(t, settings.Editor.IsConfigured())
}

func TestSettings_SetEditorProvider_Invalid(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)

	err := svc.SetEditorProvider(domain.AIProvider("mystery"), "", "")
	assert.Error(t, err)
}

func TestSettings_SetEditorProvider_CloudNeedsKey(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)

	err := svc.SetEditorProvider(domain.AIProviderOpenAI, "gpt-4o", "")
	assert.Error(t, err)
}

// TestSettings_SetSweepPacing verifies the pacing interval round-trips
// through its string encoding.
func TestSettings_SetSweepPacing(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)

	require.NoError(t, svc.SetSweepPacing(2500*time.Millisecond))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, settings.Sweep.PacingInterval)
}

func TestSettings_SetSweepPacing_RejectsNonPositive(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)
	assert.Error(t, svc.SetSweepPacing(0))
}

// TestSettings_BadDurationFallsBack verifies a corrupt stored duration
// does not break loading.
func TestSettings_BadDurationFallsBack(t *testing.T) {
	store := newMockConfigStore()
	store.data[keySweepPacing] = "not-a-duration"
	svc := NewSettingsService(store, nil)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, settings.Sweep.PacingInterval)
}

// TestSettings_UnknownProviderTreatedAsUnconfigured verifies a stale
// provider value does not leak into the settings.
func TestSettings_UnknownProviderTreatedAsUnconfigured(t *testing.T) {
	store := newMockConfigStore()
	store.data[keyEditorProvider] = "long-gone-provider"
	svc := NewSettingsService(store, nil)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.False(t, settings.Editor.IsConfigured())
}

// TestSettings_ValidateEditorConfig verifies validation delegates to
// the injected validator.
func TestSettings_ValidateEditorConfig(t *testing.T) {
	validator := &mockValidator{err: errors.New("unreachable")}
	svc := NewSettingsService(newMockConfigStore(), validator)

	err := svc.ValidateEditorConfig()
	assert.Error(t, err)
	assert.Equal(t, 1, validator.called)
}

func TestSettings_ValidateEditorConfig_NoValidator(t *testing.T) {
	svc := NewSettingsService(newMockConfigStore(), nil)
	assert.NoError(t, svc.ValidateEditorConfig())
}
