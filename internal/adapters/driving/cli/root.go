// Package cli implements the command-line interface for redraft.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/redraft-labs/redraft-cli/internal/core/ports/driven"
	"github.com/redraft-labs/redraft-cli/internal/core/ports/driving"
	"github.com/redraft-labs/redraft-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services the commands depend on. Set via SetServices before
// Execute; commands check for nil and fail with a clear message.
var (
	projectSession  driving.ProjectSession
	reviewer        driving.Reviewer
	sweepPipeline   driving.SweepPipeline
	scanRunner      driving.ScanRunner
	settingsService driving.SettingsService
	projectStore    driven.ProjectStore
	configStore     driven.ConfigStore
)

// Services bundles everything the CLI needs from the composition root.
type Services struct {
	Project  driving.ProjectSession
	Review   driving.Reviewer
	Sweep    driving.SweepPipeline
	Scan     driving.ScanRunner
	Settings driving.SettingsService
	Store    driven.ProjectStore
	Config   driven.ConfigStore
}

// SetServices wires the service dependencies into the command tree.
func SetServices(s Services) {
	projectSession = s.Project
	reviewer = s.Review
	sweepPipeline = s.Sweep
	scanRunner = s.Scan
	settingsService = s.Settings
	projectStore = s.Store
	configStore = s.Config
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "redraft",
	Short: "AI-assisted manuscript revision from your terminal",
	Long: `Redraft is a manuscript revision tool for fiction writers.

Import your chapters, then let a configured AI editor review them:
gather anchored edit suggestions, run whole-manuscript analysis scans,
and sweep global issues across every chapter. Every change lands in a
bounded undo history, so nothing is ever more than a few undos away.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

var verboseFlag bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
