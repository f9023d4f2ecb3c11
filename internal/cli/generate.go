package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"dailystatus/internal/config"
	"dailystatus/internal/generator"
	"dailystatus/internal/llm"
	"dailystatus/internal/log"
	"dailystatus/internal/ui"
	"dailystatus/pkg/style"
)

var (
	generateRepo     string
	generateDate     string
	generateStyle    string
	generateBranches []string
	generateDryRun   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a status report for one day",
	Long: `Collect the commits made on the given day, render the prompt and send
it to the configured LLM. With --dry-run the prompt is printed instead
of being sent.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateRepo, "repo", "r", "", "Repository folder (defaults to saved setting or working directory)")
	generateCmd.Flags().StringVarP(&generateDate, "date", "d", "", "Target date, e.g. 2025-04-10 (defaults to today)")
	generateCmd.Flags().StringVarP(&generateStyle, "style", "s", "", "Report style: short, medium or long")
	generateCmd.Flags().StringSliceVarP(&generateBranches, "branch", "b", nil, "Branch to inspect (repeatable, defaults to the current branch)")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print the rendered prompt without calling the LLM")

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startTime := time.Now()

	settings, _, err := loadSettings()
	if err != nil {
		return err
	}

	repoPath := generateRepo
	if repoPath == "" {
		repoPath = settings.ProjectFolder
	}
	if repoPath == "" {
		repoPath, _ = os.Getwd()
	}

	day := time.Now()
	if generateDate != "" {
		day, err = time.ParseInLocation(config.DateFormat, generateDate, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q, expected %s", generateDate, config.DateFormat)
		}
	}

	reportStyle := settings.Style()
	if generateStyle != "" {
		reportStyle = style.Style(generateStyle)
		if !reportStyle.IsValid() {
			return fmt.Errorf("invalid style %q, expected one of: %s", generateStyle, strings.Join(styleNames(), ", "))
		}
	}

	branches := generateBranches
	if len(branches) == 0 {
		branches = settings.Branches
	}

	printer := ui.NewPrinter(os.Stderr)
	_ = printer.PrintProgress(fmt.Sprintf("Collecting commits for %s...", day.Format(config.DateFormat)))

	promptText, err := generator.BuildPrompt(ctx, generator.Request{
		RepoPath: repoPath,
		Date:     day,
		Style:    reportStyle,
		Branches: branches,
		Template: settings.PromptTemplate,
	})
	if err != nil {
		return err
	}

	if generateDryRun {
		_ = printer.PrintInfo("Dry run, prompt not sent.")
		fmt.Fprintln(os.Stdout, promptText)
		return nil
	}

	factory := llm.NewProviderFactory()
	provider, err := factory.Create(settings.ModelConfig())
	if err != nil {
		return err
	}

	retryCfg := llm.DefaultRetryConfig()
	retryCfg.Enabled = settings.RetryEnabled

	_ = printer.PrintProgress("Generating report...")
	text, err := generator.New(provider, generator.WithRetry(retryCfg)).Generate(ctx, promptText)
	if err != nil {
		_ = printer.PrintError(err.Error())
		return err
	}

	if err := ui.ShowReport(text, os.Stdout); err != nil {
		return err
	}
	_ = printer.PrintSuccess("Report generated.")

	log.DebugDuration("generate", time.Since(startTime))
	return nil
}

func styleNames() []string {
	names := make([]string, 0, len(style.All()))
	for _, s := range style.All() {
		names = append(names, s.String())
	}
	return names
}
