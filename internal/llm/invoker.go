package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/onguard-app/onguard/internal/llm/schema"
)

// Request carries everything one model call needs.
type Request struct {
	Task        schema.Task
	Prompt      string
	Schema      *schema.Schema
	Temperature float32
}

// Invoker sends a single prompt to the remote model and returns the raw
// response text. Implementations make exactly one outbound call per Invoke:
// no retries, no caching, no deduplication. Tests substitute a fake.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (string, error)
}

// OpenAIInvoker calls an OpenAI-compatible chat completion endpoint,
// attaching the task schema as a constrained-decoding response format.
type OpenAIInvoker struct {
	api   *openai.Client
	model string
}

// NewOpenAIInvoker creates an invoker for the given endpoint and model.
func NewOpenAIInvoker(baseURL, apiKey, modelName string) *OpenAIInvoker {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &OpenAIInvoker{
		api:   openai.NewClientWithConfig(config),
		model: modelName,
	}
}

func (o *OpenAIInvoker) Invoke(ctx context.Context, req Request) (string, error) {
	resp, err := o.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   string(req.Task),
				Schema: req.Schema,
			},
		},
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("%w: chat completion: %v", ErrRemote, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: model returned no choices", ErrRemote)
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if raw == "" {
		return "", fmt.Errorf("%w: model returned an empty body", ErrRemote)
	}
	return raw, nil
}
