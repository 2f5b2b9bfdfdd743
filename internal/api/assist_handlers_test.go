package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/loomworks/tasklight/internal/anthropic"
	"github.com/loomworks/tasklight/internal/assist"
)

func TestExtractEndpoint_Success(t *testing.T) {
	llm := &fakeCompleter{response: `{"title":"보고서 제출","priority":"high","category":["work"],"due_date":"2099-01-02","due_time":"14:00"}`}
	srv := newTestServer(llm)
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/assist/extract", token, `{"prompt":"내일 오후 보고서 제출"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var body struct {
		Todo assist.TaskDraft `json:"todo"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Todo.Title != "보고서 제출" {
		t.Errorf("expected title 보고서 제출, got %q", body.Todo.Title)
	}
	if body.Todo.DueTime != "14:00" {
		t.Errorf("expected due_time 14:00, got %q", body.Todo.DueTime)
	}
}

func TestExtractEndpoint_ValidationFailure(t *testing.T) {
	llm := &fakeCompleter{}
	srv := newTestServer(llm)
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/assist/extract", token, `{"prompt":""}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty prompt, got %d", w.Code)
	}
	if llm.calls != 0 {
		t.Errorf("validation failure must not call upstream, got %d calls", llm.calls)
	}

	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Error == "" {
		t.Error("expected error message in body")
	}
}

func TestExtractEndpoint_RateLimited(t *testing.T) {
	llm := &fakeCompleter{err: &anthropic.APIError{StatusCode: 429, Type: "rate_limit_error", Message: "slow down"}}
	srv := newTestServer(llm)
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/assist/extract", token, `{"prompt":"buy milk tomorrow"}`)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}

	var body errorBody
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Details != "" {
		t.Errorf("raw upstream detail must not reach the client, got %q", body.Details)
	}
}

func TestExtractEndpoint_UpstreamFailure(t *testing.T) {
	llm := &fakeCompleter{response: "not json"}
	srv := newTestServer(llm)
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/assist/extract", token, `{"prompt":"buy milk tomorrow"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 for unparseable upstream response, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_Success(t *testing.T) {
	llm := &fakeCompleter{response: `{"summary":"Nice pace — 50% done.","urgentTasks":["보고서 제출"],"insights":["a","b","c"],"recommendations":["x","y","z"]}`}
	srv := newTestServer(llm)
	token := bearerToken(t)

	body := `{"timeframe":"week","todos":[{"title":"보고서 제출","priority":"high","completed":false},{"title":"gym","priority":"low","completed":true}]}`
	w := doRequest(srv, "POST", "/api/v1/assist/analyze", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	// The report is the response body directly, no wrapper.
	var report assist.Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	if report.Summary != "Nice pace — 50% done." {
		t.Errorf("unexpected summary: %q", report.Summary)
	}
	if len(report.UrgentTasks) != 1 {
		t.Errorf("unexpected urgent tasks: %v", report.UrgentTasks)
	}
}

func TestAnalyzeEndpoint_EmptyListShortCircuits(t *testing.T) {
	llm := &fakeCompleter{}
	srv := newTestServer(llm)
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/assist/analyze", token, `{"timeframe":"today","todos":[]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if llm.calls != 0 {
		t.Errorf("empty todo list must not call upstream, got %d calls", llm.calls)
	}
}

func TestAnalyzeEndpoint_BadTimeframe(t *testing.T) {
	llm := &fakeCompleter{}
	srv := newTestServer(llm)
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/assist/analyze", token, `{"timeframe":"quarter","todos":[{"title":"x"}]}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad timeframe, got %d", w.Code)
	}
}

func TestAnalyzeEndpoint_UpstreamFailureIs500(t *testing.T) {
	llm := &fakeCompleter{err: &anthropic.APIError{StatusCode: 429, Type: "rate_limit_error", Message: "slow down"}}
	srv := newTestServer(llm)
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/assist/analyze", token, `{"timeframe":"today","todos":[{"title":"x"}]}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("analysis surfaces upstream failures as 500, got %d", w.Code)
	}
}
