package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dailystatus/internal/config"
	"dailystatus/internal/llm"
)

// mockChatModel returns a canned reply or error
type mockChatModel struct {
	reply    *schema.Message
	err      error
	received []*schema.Message
}

func (m *mockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	m.received = input
	return m.reply, m.err
}

func (m *mockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *mockChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}

// mockProvider hands out a mockChatModel
type mockProvider struct {
	chatModel model.ChatModel
	createErr error
}

func (m *mockProvider) Name() string                  { return "mock" }
func (m *mockProvider) GetConfig() config.ModelConfig { return config.ModelConfig{Model: "mock-model"} }

func (m *mockProvider) CreateChatModel(ctx context.Context) (model.ChatModel, error) {
	return m.chatModel, m.createErr
}

func TestGenerator_Generate(t *testing.T) {
	chat := &mockChatModel{reply: &schema.Message{Role: schema.Assistant, Content: "Did X.\n"}}
	gen := New(&mockProvider{chatModel: chat})

	report, err := gen.Generate(context.Background(), "write my stand-up")
	require.NoError(t, err)
	assert.Equal(t, "Did X.", report)

	require.Len(t, chat.received, 1)
	assert.Equal(t, schema.User, chat.received[0].Role)
	assert.Equal(t, "write my stand-up", chat.received[0].Content)
}

func TestGenerator_Generate_NilProvider(t *testing.T) {
	gen := New(nil)

	_, err := gen.Generate(context.Background(), "prompt")
	assert.ErrorContains(t, err, "no model provider")
}

func TestGenerator_Generate_CreateModelFails(t *testing.T) {
	gen := New(&mockProvider{createErr: errors.New("bad credentials")})

	_, err := gen.Generate(context.Background(), "prompt")
	assert.ErrorContains(t, err, "failed to create chat model")
}

func TestGenerator_Generate_RemoteFailure(t *testing.T) {
	chat := &mockChatModel{err: errors.New("API request failed with status 500")}
	gen := New(&mockProvider{chatModel: chat})

	_, err := gen.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorContains(t, err, "generation failed")
	assert.ErrorContains(t, err, "500")
}

func TestGenerator_Generate_EmptyReply(t *testing.T) {
	chat := &mockChatModel{reply: &schema.Message{Role: schema.Assistant, Content: "  \n"}}
	gen := New(&mockProvider{chatModel: chat})

	_, err := gen.Generate(context.Background(), "prompt")
	assert.ErrorContains(t, err, "no response from model")
}

func TestGenerator_Generate_RetryOptIn(t *testing.T) {
	calls := 0
	chat := &retryingChatModel{failures: 2, calls: &calls}
	gen := New(&mockProvider{chatModel: chat},
		WithRetry(llm.RetryConfig{Enabled: true, MaxAttempts: 3, BackoffBase: 0.001, BackoffMax: 0.001}))

	report, err := gen.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Did X.", report)
	assert.Equal(t, 3, calls)
}

// retryingChatModel fails with a retryable error a fixed number of
// times, then succeeds
type retryingChatModel struct {
	failures int
	calls    *int
}

type transientError struct{}

func (transientError) Error() string       { return "service unavailable" }
func (transientError) HTTPStatusCode() int { return 503 }

func (m *retryingChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	*m.calls++
	if *m.calls <= m.failures {
		return nil, transientError{}
	}
	return &schema.Message{Role: schema.Assistant, Content: "Did X."}, nil
}

func (m *retryingChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("streaming not supported")
}

func (m *retryingChatModel) BindTools(tools []*schema.ToolInfo) error {
	return nil
}
