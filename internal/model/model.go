package model

import (
	"encoding/json"
	"fmt"
)

// RiskLevel is the ordinal danger classification used across all analyses.
type RiskLevel string

const (
	RiskSafe       RiskLevel = "Safe"
	RiskSuspicious RiskLevel = "Suspicious"
	RiskDangerous  RiskLevel = "Dangerous"
)

// AnalysisResult is the model's verdict on a single message.
// All string fields are required; an absent field is a contract violation.
type AnalysisResult struct {
	RiskLevel            RiskLevel `json:"risk_level"`
	Confidence           float64   `json:"confidence"`
	Explanation          string    `json:"explanation"`
	SuggestedAction      string    `json:"suggested_action"`
	HighlightedPhrases   []string  `json:"highlighted_phrases"`
	LearningTip          string    `json:"learning_tip"`
	GamificationFeedback string    `json:"gamification_feedback"`
}

// MessageRisk is the per-message entry of a conversation analysis.
// The model is asked to emit one entry per input line but is not mechanically
// constrained to, so callers must not assume a 1:1 index mapping.
type MessageRisk struct {
	MessageContent     string    `json:"message_content"`
	RiskLevel          RiskLevel `json:"risk_level"`
	HighlightedPhrases []string  `json:"highlighted_phrases"`
	Explanation        string    `json:"explanation"`
}

// ConversationAnalysis is the model's verdict on a whole conversation thread.
type ConversationAnalysis struct {
	OverallRiskLevel   RiskLevel     `json:"overall_risk_level"`
	OverallExplanation string        `json:"overall_explanation"`
	MessageRisks       []MessageRisk `json:"message_risks"`
}

// Scenario is a generated training example. Its risk level is restricted to
// the two-value subset {Safe, Dangerous}; Suspicious is not valid here.
type Scenario struct {
	Message     string    `json:"message"`
	RiskLevel   RiskLevel `json:"risk_level"`
	Explanation string    `json:"explanation"`
	LearningTip string    `json:"learning_tip"`
}

// TopRisk is one threat category with a relative frequency score (0-100).
type TopRisk struct {
	Type      string  `json:"type"`
	Frequency float64 `json:"frequency"`
}

// PlatformAnalysis is one platform with a relative risk score (0-100).
type PlatformAnalysis struct {
	Platform  string  `json:"platform"`
	RiskCount float64 `json:"risk_count"`
}

// TrendAnalytics summarizes current threat trends.
type TrendAnalytics struct {
	TrendSummary     string             `json:"trend_summary"`
	TopRisks         []TopRisk          `json:"top_risks"`
	PlatformAnalysis []PlatformAnalysis `json:"platform_analysis"`
}

// RecentMessageSummary is one entry of the dashboard's recent-activity list.
// Timestamp is free-text relative time ("2 hours ago"), not a machine timestamp.
type RecentMessageSummary struct {
	MessageSnippet string    `json:"message_snippet"`
	RiskLevel      RiskLevel `json:"risk_level"`
	Timestamp      string    `json:"timestamp"`
}

// DashboardData is the generated dashboard summary.
type DashboardData struct {
	SafetyScore           float64                `json:"safety_score"`
	PredictedRisks        []string               `json:"predicted_risks"`
	RecentMessagesSummary []RecentMessageSummary `json:"recent_messages_summary"`
}

// TutorResponse is one assistant turn of the tutor chat. It is also used for
// the locally-constructed greeting that seeds a new chat.
type TutorResponse struct {
	ResponseText      string `json:"response_text"`
	LearningTip       string `json:"learning_tip"`
	SuggestedExercise string `json:"suggested_exercise"`
}

// QuizQuestion is one multiple-choice question. The correct answer is expected
// to equal one of the four options, by convention rather than by schema.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// Quiz is a generated multiple-choice quiz.
type Quiz struct {
	QuizTitle          string         `json:"quiz_title"`
	GamificationPoints float64        `json:"gamification_points"`
	Questions          []QuizQuestion `json:"questions"`
}

// BehaviorAnalytics is the generated behavioral analysis.
type BehaviorAnalytics struct {
	BehaviorSummary    string   `json:"behavior_summary"`
	PredictedRisks     []string `json:"predicted_risks"`
	RecommendedActions []string `json:"recommended_actions"`
}

// ChatRole distinguishes the two sides of the tutor chat.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one turn of the tutor chat. The content is a tagged union
// keyed by the role: user turns carry plain text, assistant turns carry a
// structured TutorResponse. Exactly one of Text and Tutor is meaningful.
type ChatMessage struct {
	Role  ChatRole
	Text  string
	Tutor *TutorResponse
}

// UserMessage builds a user turn.
func UserMessage(text string) ChatMessage {
	return ChatMessage{Role: ChatRoleUser, Text: text}
}

// AssistantMessage builds an assistant turn.
func AssistantMessage(tr TutorResponse) ChatMessage {
	return ChatMessage{Role: ChatRoleAssistant, Tutor: &tr}
}

func (m ChatMessage) MarshalJSON() ([]byte, error) {
	switch m.Role {
	case ChatRoleAssistant:
		return json.Marshal(struct {
			Role    ChatRole       `json:"role"`
			Content *TutorResponse `json:"content"`
		}{m.Role, m.Tutor})
	case ChatRoleUser:
		return json.Marshal(struct {
			Role    ChatRole `json:"role"`
			Content string   `json:"content"`
		}{m.Role, m.Text})
	default:
		return nil, fmt.Errorf("unknown chat role %q", m.Role)
	}
}

func (m *ChatMessage) UnmarshalJSON(data []byte) error {
	var probe struct {
		Role    ChatRole        `json:"role"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	switch probe.Role {
	case ChatRoleUser:
		var text string
		if err := json.Unmarshal(probe.Content, &text); err != nil {
			return fmt.Errorf("user message content must be a string: %w", err)
		}
		*m = ChatMessage{Role: ChatRoleUser, Text: text}
	case ChatRoleAssistant:
		var tr TutorResponse
		if err := json.Unmarshal(probe.Content, &tr); err != nil {
			return fmt.Errorf("assistant message content must be a tutor response: %w", err)
		}
		*m = ChatMessage{Role: ChatRoleAssistant, Tutor: &tr}
	default:
		return fmt.Errorf("unknown chat role %q", probe.Role)
	}
	return nil
}

// ServiceConfig holds runtime parameters set via CLI flags.
type ServiceConfig struct {
	Lang                 string   // UI language for localized messages
	CORSOrigins          []string // allowed browser origins
	ScenarioCountDefault int      // scenario count when the request omits one
}
