package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot determine home directory")
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(home, ".redraft", "config.toml"), store.Path())

	// Cleanup
	_ = os.Remove(store.Path())
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("test_key", "test_value")
	require.NoError(t, err)

	val, ok := store.Get("test_key")
	assert.True(t, ok)
	assert.Equal(t, "test_value", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("string_key", "hello world")
	require.NoError(t, err)

	assert.Equal(t, "hello world", store.GetString("string_key"))

	// Non-existent key
	assert.Equal(t, "", store.GetString("nonexistent"))

	// Wrong type
	err = store.Set("int_key", 42)
	require.NoError(t, err)
	assert.Equal(t, "", store.GetString("int_key"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("int_key", 42)
	require.NoError(t, err)

	assert.Equal(t, 42, store.GetInt("int_key"))
	assert.Equal(t, 0, store.GetInt("nonexistent"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	err = store.Set("bool_key", true)
	require.NoError(t, err)

	assert.True(t, store.GetBool("bool_key"))
	assert.False(t, store.GetBool("nonexistent"))
}

// TestConfigStore_PersistsAcrossInstances verifies values written by
// one store instance are visible to a fresh one.
func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("editor.provider", "ollama"))
	require.NoError(t, store.Set("sweep.pacing_interval", "1.5s"))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, "ollama", reopened.GetString("editor.provider"))
	assert.Equal(t, "1.5s", reopened.GetString("sweep.pacing_interval"))
}

// TestConfigStore_FlattensNestedTables verifies TOML tables round-trip
// into dot-notation keys.
func TestConfigStore_FlattensNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.toml")

	content := "[editor]\nprovider = \"anthropic\"\nmodel = \"claude-3-5-sonnet-latest\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "anthropic", store.GetString("editor.provider"))
	assert.Equal(t, "claude-3-5-sonnet-latest", store.GetString("editor.model"))
}

func TestConfigStore_LoadMissingFile(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	// No config.toml on disk yet
	require.NoError(t, store.Load())
	_, ok := store.Get("anything")
	assert.False(t, ok)
}
