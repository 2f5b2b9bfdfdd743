package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/loomworks/tasklight/internal/assist"
)

type extractRequest struct {
	Prompt string `json:"prompt"`
}

type extractResponse struct {
	Todo *assist.TaskDraft `json:"todo"`
}

type analyzeRequest struct {
	Todos     []assist.TaskSummary `json:"todos"`
	Timeframe string               `json:"timeframe"`
}

func (s *Server) extractTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := ownerFromRequest(w, r); !ok {
		return
	}

	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	draft, err := s.extractor.Extract(r.Context(), req.Prompt, time.Now())
	if err != nil {
		s.writePipelineError(w, err, http.StatusTooManyRequests)
		return
	}

	s.writeJSON(w, http.StatusOK, extractResponse{Todo: draft})
}

func (s *Server) analyzeTasks(w http.ResponseWriter, r *http.Request) {
	if _, ok := ownerFromRequest(w, r); !ok {
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	report, err := s.analyzer.Analyze(r.Context(), req.Todos, assist.Timeframe(req.Timeframe), time.Now())
	if err != nil {
		// The analysis contract surfaces upstream failures as 500,
		// rate limiting included; only the message differs.
		s.writePipelineError(w, err, http.StatusInternalServerError)
		return
	}

	// The report is the response body, no wrapper.
	s.writeJSON(w, http.StatusOK, report)
}
