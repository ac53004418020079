package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsCmd_Use(t *testing.T) {
	assert.Equal(t, "settings", settingsCmd.Use)
}

func TestSettingsPacingCmd_Use(t *testing.T) {
	assert.Equal(t, "pacing [interval]", settingsPacingCmd.Use)
}

func TestSettingsShowCmd_Executes(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "show"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "[Editor]")
	assert.Contains(t, buf.String(), "[Sweep]")
	assert.Contains(t, buf.String(), "[Storage]")
	assert.Contains(t, buf.String(), "Pacing interval:")
}

func TestSettingsPacingCmd_SetsInterval(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"settings", "pacing", "2s"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sweep pacing interval set to: 2s")

	settings, err := settingsService.Get()
	require.NoError(t, err)
	assert.Equal(t, "2s", settings.Sweep.PacingInterval.String())
}

func TestSettingsPacingCmd_RejectsBadInterval(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"settings", "pacing", "soon"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `invalid interval "soon"`)
}

// Test helper functions in settings.go

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Short key",
			input:    "abc123",
			expected: "****",
		},
		{
			name:     "Exactly 8 chars",
			input:    "12345678",
			expected: "****",
		},
		{
			name:     "Long key",
			input:    "sk-1234567890abcdef",
			expected: "sk-1...cdef",
		},
		{
			name:     "Empty key",
			input:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, maskAPIKey(tt.input))
		})
	}
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		maxVal     int
		defaultVal int
		expected   int
	}{
		{
			name:       "Empty uses default",
			input:      "",
			maxVal:     3,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Valid choice",
			input:      "2",
			maxVal:     3,
			defaultVal: 1,
			expected:   2,
		},
		{
			name:       "Out of range uses default",
			input:      "7",
			maxVal:     3,
			defaultVal: 1,
			expected:   1,
		},
		{
			name:       "Non-numeric uses default",
			input:      "two",
			maxVal:     3,
			defaultVal: 2,
			expected:   2,
		},
		{
			name:       "Zero uses default",
			input:      "0",
			maxVal:     3,
			defaultVal: 1,
			expected:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseChoice(tt.input, tt.maxVal, tt.defaultVal))
		})
	}
}
