package generator

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"dailystatus/internal/git"
	"dailystatus/internal/log"
	"dailystatus/internal/report"
	"dailystatus/pkg/style"
)

// Request describes one report generation run.
type Request struct {
	RepoPath string
	Date     time.Time
	Style    style.Style
	Branches []string
	Template string
}

// BuildPrompt collects the day's diffs from the repository and renders
// the prompt. This is the shared front half of the pipeline; the form
// and the one-shot CLI both feed its output to Generate.
func BuildPrompt(ctx context.Context, req Request) (string, error) {
	collector := git.NewCollector(git.NewExecutor(req.RepoPath))
	diffs, err := collector.DayDiffs(ctx, req.Branches, req.Date)
	if err != nil {
		return "", err
	}
	log.Debug("Collected %d diffs for %s", len(diffs), req.Date.Format("2006-01-02"))

	rendered := make([]string, 0, len(diffs))
	for _, d := range diffs {
		rendered = append(rendered, d.Render())
	}

	prompt := report.Prompt{
		Project:  filepath.Base(strings.TrimRight(req.RepoPath, "/")),
		Date:     req.Date,
		Style:    req.Style,
		Template: req.Template,
		Diffs:    rendered,
	}
	return prompt.Render()
}
