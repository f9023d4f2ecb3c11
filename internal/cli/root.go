package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"dailystatus/internal/config"
	"dailystatus/internal/log"
	"dailystatus/internal/ui"
)

var (
	// Global flags
	debugMode  bool
	configFile string

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
// Running it with no subcommand opens the interactive form.
var rootCmd = &cobra.Command{
	Use:   "dailystatus",
	Short: "Turn a day's Git diffs into a stand-up status report",
	Long: `DailyStatus collects the commits you made on a given day, feeds their
diffs to an LLM and produces a short past-tense status report.

Run without a subcommand to open the interactive form, or use
"dailystatus generate" for a one-shot report.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set debug mode before any command runs
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runInteractive,
}

func runInteractive(cmd *cobra.Command, args []string) error {
	settings, settingsPath, err := loadSettings()
	if err != nil {
		return err
	}
	return ui.NewForm(settings, settingsPath).Run()
}

// loadSettings resolves the settings path and loads the saved record,
// falling back to defaults with a warning when the file is unusable
func loadSettings() (*config.Settings, string, error) {
	settingsPath := configFile
	if settingsPath == "" {
		var err error
		settingsPath, err = config.DefaultPath()
		if err != nil {
			return nil, "", fmt.Errorf("failed to resolve settings path: %w", err)
		}
	}

	settings, warning := config.Load(settingsPath)
	if warning != nil {
		log.Warn("%v", warning)
	}
	log.DebugSettings("Settings", settings)
	return settings, settingsPath, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file path (default: ~/"+config.FileName+")")
}
