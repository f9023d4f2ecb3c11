package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dailystatus/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the DailyStatus settings file",
	Long: `Create a default settings file (~/` + config.FileName + `).

The file holds the repository folder, report style, branch selection,
API key and prompt template used by the interactive form. Edit it or
use the form to change settings.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settingsPath := configFile
		if settingsPath == "" {
			var err error
			settingsPath, err = config.DefaultPath()
			if err != nil {
				return fmt.Errorf("failed to resolve settings path: %w", err)
			}
		}

		if _, err := os.Stat(settingsPath); err == nil && !initForce {
			return fmt.Errorf("settings file already exists: %s\nUse --force to overwrite", settingsPath)
		}

		if err := config.Default().Save(settingsPath); err != nil {
			return fmt.Errorf("failed to write settings file: %w", err)
		}

		fmt.Printf("✅ Created settings file: %s\n", settingsPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Add your API key (or set it in the interactive form)")
		fmt.Println("  2. Run 'dailystatus' to open the form, or 'dailystatus generate'")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing settings file")

	rootCmd.AddCommand(initCmd)
}
