// Package llm exposes one façade per model-backed task. Each façade is a
// straight-line composition: build prompt, invoke the model once, validate
// the response against the task schema, return the typed result. The first
// failure propagates to the caller unchanged in kind.
package llm

import (
	"context"
	"log/slog"
	"math/rand"

	"github.com/onguard-app/onguard/internal/llm/prompts"
	"github.com/onguard-app/onguard/internal/llm/schema"
	"github.com/onguard-app/onguard/internal/model"
)

// Sampling temperatures are fixed per task: low for classification where
// determinism matters, high for generative content.
const (
	tempAnalyzeMessage      float32 = 0.2
	tempAnalyzeConversation float32 = 0.4
	tempScenarios           float32 = 0.9
	tempTrends              float32 = 0.6
	tempTutor               float32 = 0.7
	tempDashboard           float32 = 0.8
	tempQuiz                float32 = 0.8
	tempBehavior            float32 = 0.7
)

var quizTopics = []string{
	"Phishing Scams",
	"Strong Passwords",
	"Social Media Privacy",
	"Online Bullying",
	"Recognizing Misinformation",
}

// Client exposes the task façades over a single Invoker.
type Client struct {
	invoker Invoker
}

// New creates a client backed by an OpenAI-compatible endpoint.
func New(baseURL, apiKey, modelName string) *Client {
	return &Client{invoker: NewOpenAIInvoker(baseURL, apiKey, modelName)}
}

// NewWithInvoker creates a client over a custom invoker. Tests use this with
// a fake returning canned text.
func NewWithInvoker(inv Invoker) *Client {
	return &Client{invoker: inv}
}

func (c *Client) call(ctx context.Context, task schema.Task, prompt string, temperature float32) (string, error) {
	desc, _ := schema.ForTask(task)
	raw, err := c.invoker.Invoke(ctx, Request{
		Task:        task,
		Prompt:      prompt,
		Schema:      desc,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}
	slog.Debug("model response", "task", task, "raw", raw)
	return raw, nil
}

// AnalyzeMessage classifies a single message for phishing/scam risk. The
// caller is expected to have redacted the text already.
func (c *Client) AnalyzeMessage(ctx context.Context, message string) (*model.AnalysisResult, error) {
	prompt, err := prompts.AnalyzeMessage(message)
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskAnalyzeMessage, prompt, tempAnalyzeMessage)
	if err != nil {
		return nil, err
	}
	var result model.AnalysisResult
	if err := decodeValidated(schema.TaskAnalyzeMessage, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AnalyzeConversation classifies a whole conversation thread, one message
// per input line.
func (c *Client) AnalyzeConversation(ctx context.Context, conversation string) (*model.ConversationAnalysis, error) {
	prompt, err := prompts.AnalyzeConversation(conversation)
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskAnalyzeConversation, prompt, tempAnalyzeConversation)
	if err != nil {
		return nil, err
	}
	var result model.ConversationAnalysis
	if err := decodeValidated(schema.TaskAnalyzeConversation, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GenerateScenarios produces count training examples mixing safe and
// dangerous messages.
func (c *Client) GenerateScenarios(ctx context.Context, count int) ([]model.Scenario, error) {
	prompt, err := prompts.Scenarios(count)
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskGenerateScenarios, prompt, tempScenarios)
	if err != nil {
		return nil, err
	}
	var result []model.Scenario
	if err := decodeValidated(schema.TaskGenerateScenarios, raw, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GenerateQuiz produces a multiple-choice quiz on a randomly chosen topic.
func (c *Client) GenerateQuiz(ctx context.Context) (*model.Quiz, error) {
	topic := quizTopics[rand.Intn(len(quizTopics))]
	prompt, err := prompts.Quiz(topic)
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskGenerateQuiz, prompt, tempQuiz)
	if err != nil {
		return nil, err
	}
	var result model.Quiz
	if err := decodeValidated(schema.TaskGenerateQuiz, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TrendAnalytics produces a generated summary of current threat trends.
func (c *Client) TrendAnalytics(ctx context.Context) (*model.TrendAnalytics, error) {
	prompt, err := prompts.Trends()
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskTrendAnalytics, prompt, tempTrends)
	if err != nil {
		return nil, err
	}
	var result model.TrendAnalytics
	if err := decodeValidated(schema.TaskTrendAnalytics, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DashboardData produces a generated dashboard summary.
func (c *Client) DashboardData(ctx context.Context) (*model.DashboardData, error) {
	prompt, err := prompts.Dashboard()
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskDashboard, prompt, tempDashboard)
	if err != nil {
		return nil, err
	}
	var result model.DashboardData
	if err := decodeValidated(schema.TaskDashboard, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// TutorResponse answers a safety question in the context of the prior chat.
func (c *Client) TutorResponse(ctx context.Context, question string, history []model.ChatMessage) (*model.TutorResponse, error) {
	prompt, err := prompts.Tutor(question, history)
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskTutor, prompt, tempTutor)
	if err != nil {
		return nil, err
	}
	var result model.TutorResponse
	if err := decodeValidated(schema.TaskTutor, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BehaviorAnalytics produces a generated behavioral analysis.
func (c *Client) BehaviorAnalytics(ctx context.Context) (*model.BehaviorAnalytics, error) {
	prompt, err := prompts.Behavior()
	if err != nil {
		return nil, err
	}
	raw, err := c.call(ctx, schema.TaskBehaviorAnalytics, prompt, tempBehavior)
	if err != nil {
		return nil, err
	}
	var result model.BehaviorAnalytics
	if err := decodeValidated(schema.TaskBehaviorAnalytics, raw, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
