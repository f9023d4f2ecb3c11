package git

import (
	"context"
	"fmt"
	"time"

	"dailystatus/internal/log"
)

// Diff is the patch text a single commit contributed on a branch.
// Commits reachable from several requested branches appear once per
// branch; the collector does not deduplicate.
type Diff struct {
	Hash   string
	Short  string
	Branch string
	Patch  string
}

// Render formats the diff the way it is embedded into the prompt.
func (d Diff) Render() string {
	return fmt.Sprintf("Commit %s on %s:\n%s", d.Short, d.Branch, d.Patch)
}

// Collector gathers per-day commit diffs from a repository
type Collector struct {
	exec Executor
}

// NewCollector creates a new Collector
func NewCollector(exec Executor) *Collector {
	return &Collector{exec: exec}
}

// Branches returns the local branch names. A folder that is not a
// repository yields an empty list, not an error, so the branch picker
// can simply show nothing.
func (c *Collector) Branches(ctx context.Context) ([]string, error) {
	if !c.exec.IsRepository(ctx) {
		return nil, nil
	}
	return c.exec.ListBranches(ctx)
}

// DayDiffs returns the diffs of all commits on the named branches whose
// committer timestamp falls within the calendar day of `day`, in local
// time, bounds inclusive. With no branches given, the current branch is
// used. Branches are processed in the order supplied; within a branch,
// commits keep git's traversal order. A root commit contributes its
// full content instead of a diff.
func (c *Collector) DayDiffs(ctx context.Context, branches []string, day time.Time) ([]Diff, error) {
	if !c.exec.IsRepository(ctx) {
		return nil, ErrNotRepository
	}

	if len(branches) == 0 {
		current, err := c.exec.CurrentBranch(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve current branch: %w", err)
		}
		branches = []string{current}
	}

	since := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	until := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

	var diffs []Diff
	for _, branch := range branches {
		commits, err := c.exec.Commits(ctx, branch)
		if err != nil {
			return nil, err
		}
		for _, commit := range commits {
			if commit.Time.Before(since) || commit.Time.After(until) {
				continue
			}

			var patch string
			if len(commit.Parents) > 0 {
				patch, err = c.exec.Patch(ctx, commit.Parents[0], commit.Hash)
			} else {
				patch, err = c.exec.Show(ctx, commit.Hash)
			}
			if err != nil {
				return nil, err
			}

			log.Debug("Collected commit %s on %s (%s)", commit.Short(), branch, commit.Subject)
			diffs = append(diffs, Diff{
				Hash:   commit.Hash,
				Short:  commit.Short(),
				Branch: branch,
				Patch:  patch,
			})
		}
	}
	return diffs, nil
}
