package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweepCmd_Use(t *testing.T) {
	assert.Equal(t, "sweep [kind]", sweepCmd.Use)
}

func TestSweepCmd_Long(t *testing.T) {
	assert.Contains(t, sweepCmd.Long, "chapter by")
	assert.Contains(t, sweepCmd.Long, "pacing")

	// The help must describe the one-snapshot history model, not a
	// per-chapter commit.
	assert.Contains(t, sweepCmd.Long, "single snapshot")
	assert.NotContains(t, sweepCmd.Long, "as it lands")
}

func TestSweepCmd_UnknownKind(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"sweep", "vibes"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `unknown kind "vibes"`)
}

func TestSweepCmd_NothingToDo(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sweep", "health"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No health issues recorded. Run 'redraft scan health' first.")
}

func TestSweepCmd_RewritesEveryChapter(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"scan", "health"})
	require.NoError(t, rootCmd.Execute())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"sweep", "health"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Sweep complete: 2 chapters rewritten, 0 failed.")

	ms := projectSession.Manuscript()
	for _, doc := range ms.Documents {
		assert.True(t, strings.HasPrefix(doc.Text, "revised: "), doc.Title)
	}
}

func TestSweepCmd_CommitsOneSnapshot(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"scan", "health"})
	require.NoError(t, rootCmd.Execute())

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"sweep", "health"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()
	require.NoError(t, rootCmd.Execute())

	// One snapshot for the whole sweep: a single undo restores the
	// pre-sweep text.
	assert.True(t, projectSession.CanUndo())
	cursor, length := projectSession.HistoryPosition()
	assert.Equal(t, 1, cursor)
	assert.Equal(t, 2, length)
}

func TestKindList(t *testing.T) {
	list := kindList()
	assert.Contains(t, list, "synopsis")
	assert.Contains(t, list, "cohesion")
}
