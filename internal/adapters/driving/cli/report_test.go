package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCmd_Use(t *testing.T) {
	assert.Equal(t, "report", reportCmd.Use)
}

func TestReportCmd_NoScansYet(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"report"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Analysis report: Test Novel")
	assert.Contains(t, buf.String(), "No scans have run yet.")
}

func TestReportCmd_ShowsScanResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"scan", "health"})
	require.NoError(t, rootCmd.Execute())

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"report"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "## Health")
	assert.Contains(t, buf.String(), "Score: 70/100")
	assert.Contains(t, buf.String(), "rushed ending")
}

func TestReportCmd_NoActiveProject(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	projectSession = nil

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"report"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no active project")
}
