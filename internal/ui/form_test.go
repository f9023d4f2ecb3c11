package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailystatus/internal/config"
	"dailystatus/internal/report"
	"dailystatus/pkg/style"
)

func newTestForm(t *testing.T) *Form {
	t.Helper()
	settings := config.Default()
	settings.ProjectFolder = "/tmp/project"
	settings.APIKey = "test-key"
	return NewForm(settings, filepath.Join(t.TempDir(), config.FileName))
}

func pressKey(f *Form, key tea.KeyType) {
	f.Update(tea.KeyMsg{Type: key})
}

func TestNewFormPopulatesFromSettings(t *testing.T) {
	settings := config.Default()
	settings.ProjectFolder = "/work/acme"
	settings.ReportStyle = "medium"
	settings.APIKey = "secret"
	settings.PromptTemplate = "custom {{.Diffs}}"

	f := NewForm(settings, "unused")

	assert.Equal(t, "/work/acme", f.repo.Value())
	assert.Equal(t, "secret", f.apiKey.Value())
	assert.Equal(t, style.Medium, f.currentStyle())
	assert.Equal(t, "custom {{.Diffs}}", f.prompt.Value())
}

func TestNewFormDefaultsPromptTemplate(t *testing.T) {
	f := newTestForm(t)
	assert.Equal(t, report.DefaultTemplate, f.prompt.Value())
}

func TestBranchesMsgKeepsPersistedSelection(t *testing.T) {
	settings := config.Default()
	settings.Branches = []string{"develop"}
	f := NewForm(settings, "unused")

	f.Update(branchesMsg{branches: []string{"main", "develop", "feature/x"}})

	require.Len(t, f.branches, 3)
	assert.False(t, f.branches[0].selected)
	assert.True(t, f.branches[1].selected)
	assert.Equal(t, []string{"develop"}, f.selectedBranches())
}

func TestBranchToggle(t *testing.T) {
	f := newTestForm(t)
	f.Update(branchesMsg{branches: []string{"main", "develop"}})
	f.setFocus(focusBranches)

	pressKey(f, tea.KeyDown)
	pressKey(f, tea.KeySpace)
	assert.Equal(t, []string{"develop"}, f.selectedBranches())

	pressKey(f, tea.KeySpace)
	assert.Empty(t, f.selectedBranches())
}

func TestStyleCycling(t *testing.T) {
	f := newTestForm(t)
	f.setFocus(focusStyle)
	require.Equal(t, style.Short, f.currentStyle())

	pressKey(f, tea.KeyRight)
	assert.Equal(t, style.Medium, f.currentStyle())

	pressKey(f, tea.KeyRight)
	assert.Equal(t, style.Long, f.currentStyle())

	pressKey(f, tea.KeyRight)
	assert.Equal(t, style.Short, f.currentStyle())

	pressKey(f, tea.KeyLeft)
	assert.Equal(t, style.Long, f.currentStyle())
}

func TestTabCyclesFocus(t *testing.T) {
	f := newTestForm(t)
	require.Equal(t, focusRepo, f.focus)

	pressKey(f, tea.KeyTab)
	assert.Equal(t, focusDate, f.focus)

	pressKey(f, tea.KeyShiftTab)
	pressKey(f, tea.KeyShiftTab)
	assert.Equal(t, focusPrompt, f.focus)
}

func TestReportMsgShowsOutput(t *testing.T) {
	f := newTestForm(t)
	f.generating = true

	f.Update(reportMsg{report: "Did X."})

	assert.False(t, f.generating)
	assert.Equal(t, "Did X.", f.output)
	assert.Empty(t, f.errText)
}

func TestReportMsgErrorClearsOutput(t *testing.T) {
	f := newTestForm(t)
	f.output = "stale report"
	f.generating = true

	f.Update(reportMsg{err: errors.New("generation failed: boom")})

	assert.False(t, f.generating)
	assert.Empty(t, f.output)
	assert.Equal(t, "generation failed: boom", f.errText)
}

func TestGenerateCmdInvalidDate(t *testing.T) {
	f := newTestForm(t)
	f.date.SetValue("09.04.2025")

	cmd := f.generateCmd()
	require.NotNil(t, cmd)
	msg := cmd()

	result, ok := msg.(reportMsg)
	require.True(t, ok)
	require.Error(t, result.err)
	assert.Contains(t, result.err.Error(), "invalid date")

	f.output = "stale report"
	f.Update(result)
	assert.Empty(t, f.output)
	assert.Contains(t, f.errText, "invalid date")
}

func TestGenerateIgnoredWhileRunning(t *testing.T) {
	f := newTestForm(t)
	f.generating = true

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	assert.Nil(t, cmd)
}

func TestResetPromptTemplate(t *testing.T) {
	f := newTestForm(t)
	f.prompt.SetValue("scribbles")

	pressKey(f, tea.KeyCtrlP)
	assert.Equal(t, report.DefaultTemplate, f.prompt.Value())
}

func TestSaveSettingsWritesFile(t *testing.T) {
	settings := config.Default()
	settings.APIKey = "secret"
	path := filepath.Join(t.TempDir(), config.FileName)
	f := NewForm(settings, path)

	f.repo.SetValue("/work/acme")
	f.Update(branchesMsg{branches: []string{"main"}})
	f.setFocus(focusBranches)
	pressKey(f, tea.KeySpace)
	pressKey(f, tea.KeyCtrlS)

	require.FileExists(t, path)
	loaded, warn := config.Load(path)
	require.NoError(t, warn)
	assert.Equal(t, "/work/acme", loaded.ProjectFolder)
	assert.Equal(t, []string{"main"}, loaded.Branches)
	assert.Equal(t, "secret", loaded.APIKey)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestViewRendersSections(t *testing.T) {
	f := newTestForm(t)
	f.Update(branchesMsg{branches: []string{"main"}})
	f.output = "Did X."

	view := f.View()
	assert.Contains(t, view, "Repository folder")
	assert.Contains(t, view, "Report style")
	assert.Contains(t, view, "main")
	assert.Contains(t, view, "Did X.")
}
