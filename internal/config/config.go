package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"dailystatus/pkg/style"
)

// FileName is the settings file kept in the user's home directory.
const FileName = ".dailystatus.json"

// DateFormat is the layout for the date field and the date form input.
const DateFormat = "2006-01-02"

// Supported providers
var supportedProviders = map[string]bool{
	"gemini":   true,
	"openai":   true,
	"deepseek": true,
	"ollama":   true,
	"grok":     true,
}

// SupportedProviders returns a list of supported providers
func SupportedProviders() []string {
	providers := make([]string, 0, len(supportedProviders))
	for p := range supportedProviders {
		providers = append(providers, p)
	}
	return providers
}

// Settings is the persisted user preference record. It is a single flat
// JSON object; the whole file is rewritten on save and the last write
// wins.
type Settings struct {
	ProjectFolder  string   `json:"project_folder" mapstructure:"project_folder"`
	ReportStyle    string   `json:"report_style" mapstructure:"report_style"`
	Branches       []string `json:"branches" mapstructure:"branches"`
	APIKey         string   `json:"api_key" mapstructure:"api_key"`
	PromptTemplate string   `json:"prompt_template" mapstructure:"prompt_template"`
	Date           string   `json:"date,omitempty" mapstructure:"date"`

	// Model selection for the generation backend.
	Provider string `json:"provider" mapstructure:"provider"`
	Model    string `json:"model" mapstructure:"model"`
	BaseURL  string `json:"base_url,omitempty" mapstructure:"base_url"`

	// RetryEnabled turns on backoff-and-retry for the remote call.
	// Off by default: a failed generation is reported, not repeated.
	RetryEnabled bool `json:"retry_enabled" mapstructure:"retry_enabled"`
}

// ModelConfig is the subset of settings the LLM layer needs.
type ModelConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
}

// Validate validates the model configuration
func (m *ModelConfig) Validate() error {
	if m.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !supportedProviders[m.Provider] {
		return fmt.Errorf("unsupported provider: %s", m.Provider)
	}
	if m.Model == "" {
		return fmt.Errorf("model is required")
	}
	// API key is required for all providers except ollama
	if m.Provider != "ollama" && m.APIKey == "" {
		return fmt.Errorf("api_key is required for provider %s", m.Provider)
	}
	return nil
}

// Default returns the settings used when no file exists or the file
// cannot be parsed.
func Default() *Settings {
	cwd, _ := os.Getwd()
	return &Settings{
		ProjectFolder: cwd,
		ReportStyle:   style.DefaultStyle().String(),
		Branches:      nil,
		Provider:      "gemini",
		Model:         "gemini-2.0-flash",
	}
}

// DefaultPath returns the per-user settings file path.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, FileName), nil
}

// Load reads settings from path, merged over the defaults. A missing
// file is not an error. A file that exists but cannot be parsed is
// reported through the returned warning; the defaults are used and the
// caller is expected to continue.
func Load(path string) (settings *Settings, warning error) {
	settings = Default()

	if _, err := os.Stat(path); err != nil {
		return settings, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return Default(), fmt.Errorf("settings file corrupted, using defaults: %w", err)
	}
	if err := v.Unmarshal(settings); err != nil {
		return Default(), fmt.Errorf("settings file corrupted, using defaults: %w", err)
	}

	if !style.Style(settings.ReportStyle).IsValid() {
		settings.ReportStyle = style.DefaultStyle().String()
	}
	return settings, nil
}

// Save serializes the settings to path, overwriting the whole file.
// The file holds a credential, hence 0600.
func (s *Settings) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize settings: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0600); err != nil {
		return fmt.Errorf("cannot save settings: %w", err)
	}
	return nil
}

// Style returns the report style as a typed value.
func (s *Settings) Style() style.Style {
	return style.Parse(s.ReportStyle)
}

// ModelConfig returns the model configuration with the API key expanded
// from the environment when it is given as ${VAR} or $VAR.
func (s *Settings) ModelConfig() ModelConfig {
	return ModelConfig{
		Provider: s.Provider,
		APIKey:   expandEnv(s.APIKey),
		Model:    s.Model,
		BaseURL:  s.BaseURL,
	}
}

// expandEnv expands environment variables in the format ${VAR} or $VAR
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	if strings.HasPrefix(s, "$") {
		return os.Getenv(s[1:])
	}
	return s
}
