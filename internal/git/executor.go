package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrNotRepository is returned when the configured folder is not a Git
// repository. The text is shown to the user as-is.
var ErrNotRepository = errors.New("Not a Git repository.")

// Commit is one commit reachable from a branch head.
type Commit struct {
	Hash    string
	Time    time.Time
	Parents []string
	Subject string
}

// Short returns the abbreviated commit hash.
func (c Commit) Short() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// Executor defines the read-only git operations the collector needs
type Executor interface {
	// IsRepository reports whether the work dir is inside a git repository
	IsRepository(ctx context.Context) bool

	// CurrentBranch returns the checked-out branch name
	CurrentBranch(ctx context.Context) (string, error)

	// ListBranches returns all local branch names
	ListBranches(ctx context.Context) ([]string, error)

	// Commits returns the commits reachable from branch, in traversal order
	Commits(ctx context.Context, branch string) ([]Commit, error)

	// Patch returns the diff a commit introduces against a parent
	Patch(ctx context.Context, parent, hash string) (string, error)

	// Show returns the full content of a commit (used for root commits)
	Show(ctx context.Context, hash string) (string, error)
}

// DefaultExecutor runs the git binary against a working directory
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimRight(stdout.String(), "\n"), nil
}

// IsRepository reports whether the work dir is inside a git repository
func (e *DefaultExecutor) IsRepository(ctx context.Context) bool {
	_, err := e.runGit(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// CurrentBranch returns the checked-out branch name
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (string, error) {
	out, err := e.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// ListBranches returns all local branch names
func (e *DefaultExecutor) ListBranches(ctx context.Context) ([]string, error) {
	out, err := e.runGit(ctx, "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// Commits returns the commits reachable from branch, newest first.
// Fields are separated by tabs: hash, committer timestamp, parent
// hashes, subject.
func (e *DefaultExecutor) Commits(ctx context.Context, branch string) ([]Commit, error) {
	out, err := e.runGit(ctx, "log", branch, "--format=%H%x09%ct%x09%P%x09%s")
	if err != nil {
		// A fresh repository has branches but no commits yet
		if strings.Contains(err.Error(), "does not have any commits") {
			return nil, nil
		}
		return nil, err
	}
	if out == "" {
		return nil, nil
	}

	lines := strings.Split(out, "\n")
	commits := make([]Commit, 0, len(lines))
	for _, line := range lines {
		fields := strings.SplitN(line, "\t", 4)
		if len(fields) < 4 {
			continue
		}
		ts, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("unexpected git log output %q: %w", line, err)
		}
		var parents []string
		if fields[2] != "" {
			parents = strings.Fields(fields[2])
		}
		commits = append(commits, Commit{
			Hash:    fields[0],
			Time:    time.Unix(ts, 0),
			Parents: parents,
			Subject: fields[3],
		})
	}
	return commits, nil
}

// Patch returns the diff a commit introduces against a parent
func (e *DefaultExecutor) Patch(ctx context.Context, parent, hash string) (string, error) {
	return e.runGit(ctx, "diff", parent, hash)
}

// Show returns the full content of a commit
func (e *DefaultExecutor) Show(ctx context.Context, hash string) (string, error) {
	return e.runGit(ctx, "show", hash)
}
