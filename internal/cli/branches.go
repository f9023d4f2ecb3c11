package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dailystatus/internal/git"
)

var branchesRepo string

var branchesCmd = &cobra.Command{
	Use:   "branches",
	Short: "List the local branches of a repository",
	RunE:  runBranches,
}

func init() {
	branchesCmd.Flags().StringVarP(&branchesRepo, "repo", "r", "", "Repository folder (defaults to saved setting or working directory)")

	rootCmd.AddCommand(branchesCmd)
}

func runBranches(cmd *cobra.Command, args []string) error {
	repoPath := branchesRepo
	if repoPath == "" {
		settings, _, err := loadSettings()
		if err != nil {
			return err
		}
		repoPath = settings.ProjectFolder
	}
	if repoPath == "" {
		repoPath, _ = os.Getwd()
	}

	executor := git.NewExecutor(repoPath)
	ctx := context.Background()

	if !executor.IsRepository(ctx) {
		return git.ErrNotRepository
	}

	branches, err := executor.ListBranches(ctx)
	if err != nil {
		return err
	}
	for _, name := range branches {
		fmt.Fprintln(os.Stdout, name)
	}
	return nil
}
