package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/redraft-labs/redraft-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the AI editor provider, sweep pacing, and
other options.

Use subcommands to configure specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsEditorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Configure the AI editor provider",
	Long:  `Configure the AI provider that powers review, sweep and scan.`,
	RunE:  runSettingsEditor,
}

var settingsPacingCmd = &cobra.Command{
	Use:   "pacing [interval]",
	Short: "Set sweep pacing interval",
	Long: `Set the minimum gap between rewrite calls during a sweep, as a
Go duration (for example "1.5s" or "2s"). Longer intervals are gentler
on rate-limited providers.`,
	Args: cobra.ExactArgs(1),
	RunE: runSettingsPacing,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsEditorCmd)
	settingsCmd.AddCommand(settingsPacingCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	// Editor settings
	cmd.Println("[Editor]")
	cmd.Printf("  Provider: %s\n", settings.Editor.Provider.Description())
	cmd.Printf("  Model: %s\n", settings.Editor.Model)
	if settings.Editor.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", settings.Editor.BaseURL)
	}
	if settings.Editor.Provider.RequiresAPIKey() {
		if settings.Editor.APIKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Editor.APIKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !settings.Editor.IsConfigured() {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	// Sweep settings
	cmd.Println("[Sweep]")
	cmd.Printf("  Pacing interval: %s\n", settings.Sweep.PacingInterval)
	cmd.Printf("  Call timeout: %s\n", settings.Sweep.CallTimeout)
	cmd.Println()

	// Storage settings
	cmd.Println("[Storage]")
	if settings.Storage.DatabasePath != "" {
		cmd.Printf("  Database: %s\n", settings.Storage.DatabasePath)
	} else {
		cmd.Printf("  Database: (default)\n")
	}
	cmd.Println()

	// Validation
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'redraft settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	cmd.Println("Redraft Settings Wizard")
	cmd.Println("=======================")
	cmd.Println()

	reader := bufio.NewReader(os.Stdin)

	// Step 1: Editor provider
	cmd.Println("Step 1: Configure AI Editor")
	cmd.Println("---------------------------")
	cmd.Println("Review, sweep and scan all need an AI provider.")
	cmd.Println()

	if err := configureEditorProvider(cmd, reader); err != nil {
		return err
	}

	// Step 2: Sweep pacing
	cmd.Println("Step 2: Sweep Pacing")
	cmd.Println("--------------------")
	defaults := settingsService.GetDefaults()
	cmd.Printf("Minimum gap between rewrite calls during a sweep.\n")
	cmd.Printf("Enter interval [%s]: ", defaults.Sweep.PacingInterval)
	input := readLine(reader)
	if input != "" {
		interval, err := time.ParseDuration(input)
		if err != nil {
			return fmt.Errorf("invalid interval %q: %w", input, err)
		}
		if err := settingsService.SetSweepPacing(interval); err != nil {
			return fmt.Errorf("failed to set pacing: %w", err)
		}
		cmd.Printf("Set pacing interval to: %s\n", interval)
	}
	cmd.Println()

	// Final validation
	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsEditor(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	reader := bufio.NewReader(os.Stdin)
	return configureEditorProvider(cmd, reader)
}

func runSettingsPacing(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	interval, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid interval %q: %w", args[0], err)
	}

	if err := settingsService.SetSweepPacing(interval); err != nil {
		return fmt.Errorf("failed to set pacing: %w", err)
	}

	cmd.Printf("Sweep pacing interval set to: %s\n", interval)
	return nil
}

func configureEditorProvider(cmd *cobra.Command, reader *bufio.Reader) error {
	cmd.Println("Select AI Provider")
	providers := domain.AllEditorProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	input := readLine(reader)
	idx := parseChoice(input, len(providers), 1)
	selectedProvider := providers[idx-1]

	// Get model
	defaults := domain.DefaultEditorModels()
	defaultModel := defaults[selectedProvider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	// Get API key if needed
	var apiKey string
	if selectedProvider.RequiresAPIKey() {
		cmd.Print("Enter API key: ")
		apiKey = readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
	}

	if err := settingsService.SetEditorProvider(selectedProvider, model, apiKey); err != nil {
		return fmt.Errorf("failed to configure editor provider: %w", err)
	}

	// Validate the configuration by pinging the service
	cmd.Print("Validating configuration... ")
	if err := settingsService.ValidateEditorConfig(); err != nil {
		cmd.Printf("FAILED: %v\n", err)
		return fmt.Errorf("editor configuration validation failed: %w", err)
	}
	cmd.Println("OK")

	cmd.Printf("Editor provider configured: %s (%s)\n\n", selectedProvider.Description(), model)
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
