package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/loomworks/tasklight/internal/anthropic"
	"github.com/loomworks/tasklight/internal/assist"
	"github.com/loomworks/tasklight/internal/auth"
)

var testSecret = []byte("test-secret")

type fakeCompleter struct {
	calls    int
	response string
	err      error
}

func (f *fakeCompleter) Complete(_ context.Context, _ string, _ []anthropic.Message, _ int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newTestServer(llm assist.Completer) *Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(8080, Deps{
		Extractor:   assist.NewExtractor(llm, logger),
		Analyzer:    assist.NewAnalyzer(llm, logger),
		JWTSecret:   testSecret,
		CORSOrigins: []string{"*"},
		Logger:      logger,
	})
}

func bearerToken(t *testing.T) string {
	t.Helper()
	token, err := auth.GenerateToken(testSecret, uuid.New())
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func doRequest(srv *Server, method, path, token, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&fakeCompleter{})

	w := doRequest(srv, "GET", "/health", "", "")
	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %q", body["status"])
	}
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	srv := newTestServer(&fakeCompleter{})

	paths := []struct{ method, path string }{
		{"GET", "/api/v1/tasks"},
		{"POST", "/api/v1/tasks"},
		{"POST", "/api/v1/assist/extract"},
		{"POST", "/api/v1/assist/analyze"},
	}
	for _, p := range paths {
		w := doRequest(srv, p.method, p.path, "", "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestCreateTask_InvalidBody(t *testing.T) {
	srv := newTestServer(&fakeCompleter{})
	token := bearerToken(t)

	w := doRequest(srv, "POST", "/api/v1/tasks", token, "{not json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", w.Code)
	}

	w = doRequest(srv, "POST", "/api/v1/tasks", token, `{"title":"   "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for blank title, got %d", w.Code)
	}

	w = doRequest(srv, "POST", "/api/v1/tasks", token, `{"title":"ok","due_date":"not-a-date"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid due date, got %d", w.Code)
	}
}

func TestToggleTask_InvalidBody(t *testing.T) {
	srv := newTestServer(&fakeCompleter{})
	token := bearerToken(t)

	// A malformed non-empty body is rejected like every other handler's;
	// only an empty body means "flip".
	w := doRequest(srv, "PATCH", "/api/v1/tasks/"+uuid.New().String()+"/complete", token, "{not json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed toggle body, got %d", w.Code)
	}
}

func TestTaskID_Invalid(t *testing.T) {
	srv := newTestServer(&fakeCompleter{})
	token := bearerToken(t)

	w := doRequest(srv, "GET", "/api/v1/tasks/not-a-uuid", token, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid task id, got %d", w.Code)
	}
}

func TestNotFoundEndpoint(t *testing.T) {
	srv := newTestServer(&fakeCompleter{})

	w := doRequest(srv, "GET", "/nonexistent", "", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
