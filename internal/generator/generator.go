// Package generator submits a finished prompt to the configured model
// and returns the generated report text.
package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"dailystatus/internal/llm"
	"dailystatus/internal/log"
)

// Generator turns one prompt into one report. No streaming, no
// conversation state.
type Generator struct {
	provider llm.Provider
	retry    llm.RetryConfig
}

// Option configures a Generator
type Option func(*Generator)

// WithRetry sets the retry behavior for the remote call
func WithRetry(cfg llm.RetryConfig) Option {
	return func(g *Generator) {
		g.retry = cfg
	}
}

// New creates a Generator backed by the given provider
func New(provider llm.Provider, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		retry:    llm.DefaultRetryConfig(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate sends the prompt as a single user message and returns the
// model's reply, trimmed. An empty reply is an error.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.provider == nil {
		return "", fmt.Errorf("no model provider configured")
	}

	chatModel, err := g.provider.CreateChatModel(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create chat model: %w", err)
	}

	log.Debug("Generating report via %s/%s (prompt: %d bytes)",
		g.provider.Name(), g.provider.GetConfig().Model, len(prompt))
	start := time.Now()

	messages := []*schema.Message{
		{Role: schema.User, Content: prompt},
	}

	reply, err := llm.WithRetry(ctx, g.retry, func() (*schema.Message, error) {
		return chatModel.Generate(ctx, messages)
	})
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}
	log.DebugDuration("Report generation", time.Since(start))

	text := strings.TrimSpace(reply.Content)
	if text == "" {
		return "", fmt.Errorf("no response from model")
	}
	return text, nil
}
