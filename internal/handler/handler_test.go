package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/onguard-app/onguard/internal/i18n"
	"github.com/onguard-app/onguard/internal/llm"
	"github.com/onguard-app/onguard/internal/model"
)

type fakeInvoker struct {
	response string
	err      error
	requests []llm.Request
}

func (f *fakeInvoker) Invoke(_ context.Context, req llm.Request) (string, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestServer(t *testing.T, fake *fakeInvoker) *httptest.Server {
	t.Helper()
	if err := i18n.Init("en"); err != nil {
		t.Fatalf("i18n.Init: %v", err)
	}
	h := New(llm.NewWithInvoker(fake), model.ServiceConfig{
		Lang:                 "en",
		ScenarioCountDefault: 5,
	})
	r := chi.NewRouter()
	r.Use(i18n.Middleware("en"))
	h.Routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func getURL(t *testing.T, url string) *http.Response {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

const validAnalysis = `{
	"risk_level": "Dangerous",
	"confidence": 0.92,
	"explanation": "Urgency pressure combined with a redacted link.",
	"suggested_action": "Do not click the link. Contact your bank directly.",
	"highlighted_phrases": ["URGENT", "verify your account now"],
	"learning_tip": "Banks never threaten suspension over chat.",
	"gamification_feedback": "Great instinct checking this! +10 points."
}`

func TestAnalyzeMessageEndToEnd(t *testing.T) {
	fake := &fakeInvoker{response: validAnalysis}
	srv := newTestServer(t, fake)

	message := "URGENT: verify your account now at http://totally-safe-bank.example or it will be suspended!"
	resp := postJSON(t, srv.URL+"/api/analyze/message", `{"message":`+mustMarshal(t, message)+`}`)

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	// The URL must have been redacted before the prompt was built.
	if len(fake.requests) != 1 {
		t.Fatalf("made %d model calls, want 1", len(fake.requests))
	}
	prompt := fake.requests[0].Prompt
	if strings.Contains(prompt, "totally-safe-bank.example") {
		t.Error("prompt leaked the raw URL")
	}
	if !strings.Contains(prompt, "[link redacted]") {
		t.Error("prompt should contain the link placeholder")
	}

	var result model.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.RiskLevel != model.RiskDangerous {
		t.Errorf("risk_level = %q, want Dangerous", result.RiskLevel)
	}
	if result.Confidence != 0.92 {
		t.Errorf("confidence = %v, want 0.92", result.Confidence)
	}
	want := []string{"URGENT", "verify your account now"}
	for i, phrase := range want {
		if i >= len(result.HighlightedPhrases) || result.HighlightedPhrases[i] != phrase {
			t.Errorf("highlighted_phrases = %v, want %v", result.HighlightedPhrases, want)
			break
		}
	}
}

func TestEmptyMessageRejectedLocally(t *testing.T) {
	fake := &fakeInvoker{response: validAnalysis}
	srv := newTestServer(t, fake)

	for _, body := range []string{`{"message":""}`, `{"message":"   "}`, `{}`, `not json`} {
		resp := postJSON(t, srv.URL+"/api/analyze/message", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
	if len(fake.requests) != 0 {
		t.Errorf("rejected input still reached the model: %d calls", len(fake.requests))
	}
}

func TestRemoteFailureSurfacesGenerically(t *testing.T) {
	fake := &fakeInvoker{err: llm.ErrRemote}
	srv := newTestServer(t, fake)

	resp := postJSON(t, srv.URL+"/api/analyze/message", `{"message":"hello"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "The AI service is unavailable. Please try again later." {
		t.Errorf("error = %q, want the generic message", body.Error)
	}
	if len(fake.requests) != 1 {
		t.Errorf("made %d calls, want exactly 1 (no retry)", len(fake.requests))
	}
}

func TestMalformedResponseSurfacesLikeRemoteFailure(t *testing.T) {
	fake := &fakeInvoker{response: `{"risk_level":"Unknown"}`}
	srv := newTestServer(t, fake)

	resp := postJSON(t, srv.URL+"/api/analyze/message", `{"message":"hello"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestScenarioCountValidation(t *testing.T) {
	fake := &fakeInvoker{response: `[]`}
	srv := newTestServer(t, fake)

	for _, count := range []string{"0", "11", "-1", "abc"} {
		resp := getURL(t, srv.URL+"/api/scenarios?count="+count)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("count=%s: status = %d, want 400", count, resp.StatusCode)
		}
	}
	if len(fake.requests) != 0 {
		t.Errorf("invalid counts still reached the model: %d calls", len(fake.requests))
	}

	resp := getURL(t, srv.URL+"/api/scenarios")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("default count: status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(fake.requests[0].Prompt, "exactly 5 objects") {
		t.Error("prompt should embed the configured default count")
	}
}

func TestTutorGreetingIsLocal(t *testing.T) {
	fake := &fakeInvoker{}
	srv := newTestServer(t, fake)

	resp := getURL(t, srv.URL+"/api/tutor/greeting")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var msg model.ChatMessage
	if err := json.NewDecoder(resp.Body).Decode(&msg); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if msg.Role != model.ChatRoleAssistant || msg.Tutor == nil {
		t.Fatalf("greeting = %+v, want an assistant turn", msg)
	}
	if !strings.Contains(msg.Tutor.ResponseText, "OnGuard AI Tutor") {
		t.Errorf("greeting text = %q", msg.Tutor.ResponseText)
	}
	if len(fake.requests) != 0 {
		t.Errorf("greeting made %d model calls, want 0", len(fake.requests))
	}
}

func TestLatestViewLifecycle(t *testing.T) {
	fake := &fakeInvoker{response: validAnalysis}
	srv := newTestServer(t, fake)

	// Nothing committed yet.
	resp := getURL(t, srv.URL+"/api/latest/analysis")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("before any analysis: status = %d, want 404", resp.StatusCode)
	}

	postJSON(t, srv.URL+"/api/analyze/message", `{"message":"check this out"}`)

	resp = getURL(t, srv.URL+"/api/latest/analysis")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("after analysis: status = %d, want 200", resp.StatusCode)
	}
	var result model.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if result.RiskLevel != model.RiskDangerous {
		t.Errorf("latest risk_level = %q, want Dangerous", result.RiskLevel)
	}

	resp = getURL(t, srv.URL+"/api/latest/nonsense")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown view: status = %d, want 404", resp.StatusCode)
	}
}

func mustMarshal(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}
