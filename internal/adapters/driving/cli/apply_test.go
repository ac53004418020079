package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyCmd_Use(t *testing.T) {
	assert.Equal(t, "apply [suggestion-id]", applyCmd.Use)
}

func TestApplyCmd_HasAllFlag(t *testing.T) {
	flag := applyCmd.Flags().Lookup("all")
	require.NotNil(t, flag, "all flag should exist")
	assert.Equal(t, "a", flag.Shorthand)
	assert.Equal(t, "false", flag.DefValue)
}

func TestApplyCmd_RequiresIDOrAll(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"apply"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provide a suggestion ID or use --all")
}

func TestApplyCmd_SingleSuggestion(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"review"})
	require.NoError(t, rootCmd.Execute())

	suggestions := reviewer.Suggestions()
	require.NotEmpty(t, suggestions)
	id := suggestions[0].ID

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"apply", id})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Applied suggestion "+id)

	ms := projectSession.Manuscript()
	assert.True(t, strings.HasPrefix(ms.Documents[0].Text, "ONCE"))
}

func TestApplyCmd_UnknownID(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"apply", "missing"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no suggestion with ID missing")
}

func TestApplyCmd_ConflictIsSoft(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"review"})
	require.NoError(t, rootCmd.Execute())

	suggestions := reviewer.Suggestions()
	require.NotEmpty(t, suggestions)
	id := suggestions[0].ID

	// First apply consumes the anchor; the second conflicts.
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"apply", id})
	require.NoError(t, rootCmd.Execute())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"apply", id})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Conflict: the original text for "+id)
}

func TestApplyCmd_All(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"review"})
	require.NoError(t, rootCmd.Execute())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"apply", "--all"})
	defer func() {
		rootCmd.SetArgs(nil)
		applyAll = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "applied 2 of 2 remaining fixes")
}
