package llm

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"dailystatus/internal/config"
)

// Default base URLs for the OpenAI-compatible providers
const (
	DeepseekDefaultBaseURL = "https://api.deepseek.com/v1"
	GrokDefaultBaseURL     = "https://api.x.ai/v1"
	OllamaDefaultBaseURL   = "http://localhost:11434/v1"
)

// CompatProvider implements Provider for every backend that speaks the
// OpenAI chat completion API: OpenAI itself, Deepseek, Grok, and a
// local Ollama.
type CompatProvider struct {
	name string
	cfg  config.ModelConfig
}

func newCompatProvider(name string, cfg config.ModelConfig, defaultBaseURL string) *CompatProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	return &CompatProvider{name: name, cfg: cfg}
}

// NewOpenAIProvider creates a provider for the OpenAI API
func NewOpenAIProvider(cfg config.ModelConfig) *CompatProvider {
	return newCompatProvider("openai", cfg, "")
}

// NewDeepseekProvider creates a provider for the Deepseek API
func NewDeepseekProvider(cfg config.ModelConfig) *CompatProvider {
	return newCompatProvider("deepseek", cfg, DeepseekDefaultBaseURL)
}

// NewGrokProvider creates a provider for the xAI Grok API
func NewGrokProvider(cfg config.ModelConfig) *CompatProvider {
	return newCompatProvider("grok", cfg, GrokDefaultBaseURL)
}

// NewOllamaProvider creates a provider for a local Ollama instance.
// Ollama does not require an API key; a placeholder is used.
func NewOllamaProvider(cfg config.ModelConfig) *CompatProvider {
	if cfg.APIKey == "" {
		cfg.APIKey = "ollama"
	}
	return newCompatProvider("ollama", cfg, OllamaDefaultBaseURL)
}

// Name returns the provider name
func (p *CompatProvider) Name() string {
	return p.name
}

// GetConfig returns the model configuration
func (p *CompatProvider) GetConfig() config.ModelConfig {
	return p.cfg
}

// chatModelConfig builds the request configuration. The same fixed
// request timeout applies to every backend.
func (p *CompatProvider) chatModelConfig() *openai.ChatModelConfig {
	return &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		Model:   p.cfg.Model,
		BaseURL: p.cfg.BaseURL,
		Timeout: RequestTimeout,
	}
}

// CreateChatModel creates an Eino ChatModel using the OpenAI-compatible
// endpoint
func (p *CompatProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	return openai.NewChatModel(ctx, p.chatModelConfig())
}
