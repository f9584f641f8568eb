// Package handler exposes the task façades over HTTP for the browser UI.
// Handlers check local preconditions before any network call, map classified
// failures to generic user-facing messages, and track the most recent result
// per view with last-write-wins semantics.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/onguard-app/onguard/internal/i18n"
	"github.com/onguard-app/onguard/internal/llm"
	"github.com/onguard-app/onguard/internal/model"
	"github.com/onguard-app/onguard/internal/redact"
)

const (
	minScenarioCount = 1
	maxScenarioCount = 10
)

// View names used to key the latest-result slots.
const (
	viewAnalysis     = "analysis"
	viewConversation = "conversation"
	viewScenarios    = "scenarios"
	viewQuiz         = "quiz"
	viewTrends       = "trends"
	viewDashboard    = "dashboard"
	viewBehavior     = "behavior"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	llm    *llm.Client
	config model.ServiceConfig
	latest map[string]*resultSlot
}

// New creates a new Handler.
func New(l *llm.Client, cfg model.ServiceConfig) *Handler {
	views := []string{
		viewAnalysis, viewConversation, viewScenarios,
		viewQuiz, viewTrends, viewDashboard, viewBehavior,
	}
	latest := make(map[string]*resultSlot, len(views))
	for _, v := range views {
		latest[v] = &resultSlot{}
	}
	return &Handler{llm: l, config: cfg, latest: latest}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/analyze/message", h.handleAnalyzeMessage)
	r.Post("/api/analyze/conversation", h.handleAnalyzeConversation)
	r.Get("/api/scenarios", h.handleScenarios)
	r.Get("/api/quiz", h.handleQuiz)
	r.Get("/api/trends", h.handleTrends)
	r.Get("/api/dashboard", h.handleDashboard)
	r.Post("/api/tutor", h.handleTutor)
	r.Get("/api/tutor/greeting", h.handleTutorGreeting)
	r.Get("/api/behavior", h.handleBehavior)
	r.Get("/api/latest/{view}", h.handleLatest)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

type errorBody struct {
	Error string `json:"error"`
}

// rejectInput reports a local precondition failure. Nothing has been sent to
// the model at this point.
func rejectInput(w http.ResponseWriter, r *http.Request, msgID string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: i18n.T(r.Context(), msgID)})
}

// writeFailure maps a classified façade failure to a response. Remote and
// malformed failures look identical to the UI; they are only distinguished in
// the logs.
func writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, llm.ErrMalformed):
		slog.Error("model response failed validation", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: i18n.T(r.Context(), "ServiceUnavailable")})
	case errors.Is(err, llm.ErrRemote):
		slog.Error("model request failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: i18n.T(r.Context(), "ServiceUnavailable")})
	default:
		slog.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: i18n.T(r.Context(), "ServiceUnavailable")})
	}
}

// respond commits the result to the view's slot and writes it back. A commit
// rejected as superseded is logged but the caller still receives its own
// result.
func (h *Handler) respond(w http.ResponseWriter, view string, gen uint64, result any) {
	if !h.latest[view].commit(gen, result) {
		slog.Debug("discarding superseded result", "view", view, "generation", gen)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAnalyzeMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		rejectInput(w, r, "EmptyMessage")
		return
	}

	gen := h.latest[viewAnalysis].begin()
	result, err := h.llm.AnalyzeMessage(r.Context(), redact.Redact(req.Message))
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	h.respond(w, viewAnalysis, gen, result)
}

func (h *Handler) handleAnalyzeConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Conversation string `json:"conversation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Conversation) == "" {
		rejectInput(w, r, "EmptyConversation")
		return
	}

	gen := h.latest[viewConversation].begin()
	result, err := h.llm.AnalyzeConversation(r.Context(), req.Conversation)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	h.respond(w, viewConversation, gen, result)
}

func (h *Handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	count := h.config.ScenarioCountDefault
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < minScenarioCount || parsed > maxScenarioCount {
			writeJSON(w, http.StatusBadRequest, errorBody{
				Error: i18n.Td(r.Context(), "BadScenarioCount", map[string]any{
					"Min": minScenarioCount,
					"Max": maxScenarioCount,
				}),
			})
			return
		}
		count = parsed
	}

	gen := h.latest[viewScenarios].begin()
	result, err := h.llm.GenerateScenarios(r.Context(), count)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	h.respond(w, viewScenarios, gen, result)
}

func (h *Handler) handleQuiz(w http.ResponseWriter, r *http.Request) {
	gen := h.latest[viewQuiz].begin()
	result, err := h.llm.GenerateQuiz(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	h.respond(w, viewQuiz, gen, result)
}

func (h *Handler) handleTrends(w http.ResponseWriter, r *http.Request) {
	gen := h.latest[viewTrends].begin()
	result, err := h.llm.TrendAnalytics(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	h.respond(w, viewTrends, gen, result)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	gen := h.latest[viewDashboard].begin()
	result, err := h.llm.DashboardData(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	h.respond(w, viewDashboard, gen, result)
}

func (h *Handler) handleTutor(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Question string              `json:"question"`
		History  []model.ChatMessage `json:"history"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Question) == "" {
		rejectInput(w, r, "EmptyQuestion")
		return
	}

	result, err := h.llm.TutorResponse(r.Context(), req.Question, req.History)
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleTutorGreeting returns the seed assistant turn for a new chat. It is
// constructed locally, not from the model.
func (h *Handler) handleTutorGreeting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	greeting := model.AssistantMessage(model.TutorResponse{
		ResponseText:      i18n.T(ctx, "TutorGreeting"),
		LearningTip:       i18n.T(ctx, "TutorGreetingTip"),
		SuggestedExercise: i18n.T(ctx, "TutorGreetingExercise"),
	})
	writeJSON(w, http.StatusOK, greeting)
}

func (h *Handler) handleBehavior(w http.ResponseWriter, r *http.Request) {
	gen := h.latest[viewBehavior].begin()
	result, err := h.llm.BehaviorAnalytics(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}
	h.respond(w, viewBehavior, gen, result)
}

// handleLatest returns the most recently committed result for a view, so a
// re-opened view can re-render without another model call. The value lives
// in memory only and is replaced, never merged.
func (h *Handler) handleLatest(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")
	slot, ok := h.latest[view]
	if !ok {
		http.NotFound(w, r)
		return
	}
	val, ok := slot.value()
	if !ok {
		writeJSON(w, http.StatusNotFound, errorBody{Error: i18n.T(r.Context(), "NoResultYet")})
		return
	}
	writeJSON(w, http.StatusOK, val)
}
