package schema

import "github.com/onguard-app/onguard/internal/model"

// Task identifies one model-backed operation.
type Task string

const (
	TaskAnalyzeMessage      Task = "analyze_message"
	TaskAnalyzeConversation Task = "analyze_conversation"
	TaskGenerateScenarios   Task = "generate_scenarios"
	TaskGenerateQuiz        Task = "generate_quiz"
	TaskTrendAnalytics      Task = "trend_analytics"
	TaskDashboard           Task = "dashboard"
	TaskTutor               Task = "tutor"
	TaskBehaviorAnalytics   Task = "behavior_analytics"
)

var allRiskLevels = []string{
	string(model.RiskSafe),
	string(model.RiskSuspicious),
	string(model.RiskDangerous),
}

// Scenarios use a narrower risk enum than the general one.
var scenarioRiskLevels = []string{
	string(model.RiskSafe),
	string(model.RiskDangerous),
}

var analyzeMessageSchema = Object(
	Required("risk_level", StringEnum("Classification of the message risk.", allRiskLevels...)),
	Required("confidence", Number("A value between 0 and 1 representing the confidence of the classification.")),
	Required("explanation", String("A brief, clear explanation for the risk classification (max 50 words).")),
	Required("suggested_action", String("1-2 actionable safety steps the user should take.")),
	Required("highlighted_phrases", ArrayOf("The specific phrases in the message that are suspicious or dangerous.", String(""))),
	Required("learning_tip", String("An educational tip or mini-lesson related to the detected risk.")),
	Required("gamification_feedback", String("Feedback for the user, like awarding points or a badge for being cautious.")),
)

var analyzeConversationSchema = Object(
	Required("overall_risk_level", StringEnum("The cumulative risk of the entire conversation.", allRiskLevels...)),
	Required("overall_explanation", String("A summary of why the conversation has this overall risk level, focusing on patterns or escalation.")),
	Required("message_risks", ArrayOf("", Object(
		Required("message_content", String("The exact text of the message being analyzed.")),
		Required("risk_level", StringEnum("", allRiskLevels...)),
		Required("highlighted_phrases", ArrayOf("", String(""))),
		Required("explanation", String("An explanation for this specific message's risk.")),
	))),
)

var scenariosSchema = ArrayOf("", Object(
	Required("message", String("The example message text.")),
	Required("risk_level", StringEnum("Whether the message is 'Safe' or 'Dangerous'.", scenarioRiskLevels...)),
	Required("explanation", String("A brief explanation of why the message is safe or dangerous.")),
	Required("learning_tip", String("A concise, helpful tip related to the scenario.")),
))

var quizSchema = Object(
	Required("quiz_title", String("A short, engaging title for the quiz.")),
	Required("gamification_points", Number("The total points awarded for completing the quiz successfully.")),
	Required("questions", ArrayOf("", Object(
		Required("question", String("The quiz question.")),
		Required("options", ArrayOf("An array of 4 possible answers.", String(""))),
		Required("correct_answer", String("The correct answer from the options.")),
		Required("explanation", String("A brief explanation of why the answer is correct.")),
	))),
)

var trendsSchema = Object(
	Required("trend_summary", String("A concise summary of current online threat trends for young users.")),
	Required("top_risks", ArrayOf("", Object(
		Required("type", String("The category of the risk (e.g., 'Phishing', 'Urgency Scams').")),
		Required("frequency", Number("A relative score/percentage (0-100) of how common this risk is.")),
	))),
	Required("platform_analysis", ArrayOf("", Object(
		Required("platform", String("The platform where risks are seen (e.g., 'Email', 'Social Media DMs').")),
		Required("risk_count", Number("A relative score/percentage (0-100) of risks on this platform.")),
	))),
)

var dashboardSchema = Object(
	Required("safety_score", Number("A user's overall safety score from 0-100, based on recent activity.")),
	Required("predicted_risks", ArrayOf("An array of 2-3 short, predictive insights about potential upcoming risks.", String(""))),
	Required("recent_messages_summary", ArrayOf("", Object(
		Required("message_snippet", String("A short, privacy-safe snippet of a recent message.")),
		Required("risk_level", StringEnum("", allRiskLevels...)),
		Required("timestamp", String("A human-readable timestamp like '2 hours ago'.")),
	))),
)

var tutorSchema = Object(
	Required("response_text", String("The main, direct answer to the user's question.")),
	Required("learning_tip", String("An educational tip or piece of advice related to the question.")),
	Required("suggested_exercise", String("A simple, actionable exercise the user can do to practice the concept.")),
)

var behaviorSchema = Object(
	Required("behavior_summary", String("A summary of the user's online behavior patterns, highlighting safe and risky trends.")),
	Required("predicted_risks", ArrayOf("An array of 2-3 specific risks the user is likely to encounter based on their behavior.", String(""))),
	Required("recommended_actions", ArrayOf("An array of 2-3 actionable steps the user can take to improve their safety.", String(""))),
)

var registry = map[Task]*Schema{
	TaskAnalyzeMessage:      analyzeMessageSchema,
	TaskAnalyzeConversation: analyzeConversationSchema,
	TaskGenerateScenarios:   scenariosSchema,
	TaskGenerateQuiz:        quizSchema,
	TaskTrendAnalytics:      trendsSchema,
	TaskDashboard:           dashboardSchema,
	TaskTutor:               tutorSchema,
	TaskBehaviorAnalytics:   behaviorSchema,
}

// Tasks lists every registered task.
func Tasks() []Task {
	tasks := make([]Task, 0, len(registry))
	for t := range registry {
		tasks = append(tasks, t)
	}
	return tasks
}

// ForTask returns the structural descriptor for a task.
func ForTask(t Task) (*Schema, bool) {
	s, ok := registry[t]
	return s, ok
}
