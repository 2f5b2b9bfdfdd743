package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/loomworks/tasklight/internal/assist"
)

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg, details string) {
	s.writeJSON(w, status, errorBody{Error: msg, Details: details})
}

// writePipelineError maps the assist error taxonomy onto HTTP statuses.
// rateLimitStatus is 429 for extraction; analysis keeps its documented
// 400/500 contract, so it passes 500. Raw causes are logged, not returned.
func (s *Server) writePipelineError(w http.ResponseWriter, err error, rateLimitStatus int) {
	var vErr *assist.ValidationError
	if errors.As(err, &vErr) {
		s.writeError(w, http.StatusBadRequest, "invalid input", vErr.Reason)
		return
	}

	var uErr *assist.UpstreamError
	if errors.As(err, &uErr) {
		s.logger.Error("assist pipeline failed", "error", err, "rate_limited", uErr.RateLimited)
		if uErr.RateLimited {
			s.writeError(w, rateLimitStatus, "too many requests, please try again later", "")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "something went wrong, please try again", "")
		return
	}

	s.logger.Error("unexpected assist error", "error", err)
	s.writeError(w, http.StatusInternalServerError, "something went wrong, please try again", "")
}
