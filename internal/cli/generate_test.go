package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailystatus/internal/config"
)

// TestGenerateCmd_Initialization tests generate command initialization
func TestGenerateCmd_Initialization(t *testing.T) {
	require.NotNil(t, generateCmd)
	assert.Equal(t, "generate", generateCmd.Use)
	assert.NotEmpty(t, generateCmd.Short)
	assert.NotEmpty(t, generateCmd.Long)
}

// TestGenerateCmd_Flags tests that generate command has expected flags
func TestGenerateCmd_Flags(t *testing.T) {
	flags := generateCmd.Flags()

	assert.NotNil(t, flags.Lookup("repo"), "repo flag should exist")
	assert.NotNil(t, flags.Lookup("date"), "date flag should exist")
	assert.NotNil(t, flags.Lookup("style"), "style flag should exist")
	assert.NotNil(t, flags.Lookup("branch"), "branch flag should exist")
	assert.NotNil(t, flags.Lookup("dry-run"), "dry-run flag should exist")
}

func TestRootCmd_Subcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		names[cmd.Name()] = true
	}

	for _, want := range []string{"generate", "branches", "init", "version"} {
		assert.True(t, names[want], "%s subcommand should be registered", want)
	}
}

func TestStyleNames(t *testing.T) {
	assert.Equal(t, []string{"short", "medium", "long"}, styleNames())
}

func TestLoadSettings_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.FileName)
	saved := config.Default()
	saved.ProjectFolder = "/work/acme"
	require.NoError(t, saved.Save(path))

	orig := configFile
	configFile = path
	defer func() { configFile = orig }()

	settings, settingsPath, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, path, settingsPath)
	assert.Equal(t, "/work/acme", settings.ProjectFolder)
}

func TestLoadSettings_MissingFileFallsBackToDefaults(t *testing.T) {
	orig := configFile
	configFile = filepath.Join(t.TempDir(), config.FileName)
	defer func() { configFile = orig }()

	settings, _, err := loadSettings()
	require.NoError(t, err)
	assert.Equal(t, config.Default().ReportStyle, settings.ReportStyle)
}
