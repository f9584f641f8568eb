// Package prompts builds the natural-language instruction text for each
// model-backed task. Caller-supplied payloads are interpolated verbatim; the
// remote model is trusted to treat them as data, which is an accepted
// prompt-injection surface of the design.
package prompts

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/onguard-app/onguard/internal/model"
)

//go:embed templates/*.txt
var templateFS embed.FS

var templateNames = []string{
	"analyze_message",
	"analyze_conversation",
	"scenarios",
	"quiz",
	"trends",
	"dashboard",
	"tutor",
	"behavior",
}

var (
	loadOnce  sync.Once
	loadErr   error
	templates map[string]*template.Template
)

// Load parses all embedded prompt templates. It uses sync.Once so templates
// are parsed only once; callers invoke it at startup to fail fast.
func Load() error {
	loadOnce.Do(func() {
		templates = make(map[string]*template.Template)
		for _, name := range templateNames {
			content, err := templateFS.ReadFile("templates/" + name + ".txt")
			if err != nil {
				loadErr = errors.New("read prompt template " + name + ": " + err.Error())
				return
			}
			tmpl, err := template.New(name).Parse(string(content))
			if err != nil {
				loadErr = errors.New("parse prompt template " + name + ": " + err.Error())
				return
			}
			templates[name] = tmpl
		}
	})
	return loadErr
}

func build(name string, data any) (string, error) {
	if err := Load(); err != nil {
		return "", err
	}
	tmpl, ok := templates[name]
	if !ok {
		return "", fmt.Errorf("no prompt template named %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template %q: %w", name, err)
	}
	return buf.String(), nil
}

// AnalyzeMessage builds the single-message analysis prompt.
func AnalyzeMessage(message string) (string, error) {
	return build("analyze_message", map[string]string{"Message": message})
}

// AnalyzeConversation builds the conversation analysis prompt. The
// conversation is a block of text with one message per line.
func AnalyzeConversation(conversation string) (string, error) {
	return build("analyze_conversation", map[string]string{"Conversation": conversation})
}

// Scenarios builds the scenario generation prompt for the given count.
func Scenarios(count int) (string, error) {
	return build("scenarios", map[string]int{"Count": count})
}

// Quiz builds the quiz generation prompt for the given topic.
func Quiz(topic string) (string, error) {
	return build("quiz", map[string]string{"Topic": topic})
}

// Trends builds the trend analytics prompt. It takes no payload.
func Trends() (string, error) {
	return build("trends", nil)
}

// Dashboard builds the dashboard summary prompt. It takes no payload.
func Dashboard() (string, error) {
	return build("dashboard", nil)
}

// Tutor builds the tutor prompt, embedding the prior chat history as a
// readable transcript ahead of the new question.
func Tutor(question string, history []model.ChatMessage) (string, error) {
	return build("tutor", map[string]string{
		"Question": question,
		"History":  formatHistory(history),
	})
}

// Behavior builds the behavior analytics prompt. It takes no payload.
func Behavior() (string, error) {
	return build("behavior", nil)
}

func formatHistory(history []model.ChatMessage) string {
	var sb strings.Builder
	for _, m := range history {
		switch m.Role {
		case model.ChatRoleUser:
			sb.WriteString("User: " + m.Text + "\n\n")
		case model.ChatRoleAssistant:
			if m.Tutor != nil {
				sb.WriteString("Tutor: " + m.Tutor.ResponseText + "\n\n")
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
