package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/loomworks/tasklight/internal/auth"
	"github.com/loomworks/tasklight/internal/store"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  *store.User `json:"user"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !strings.Contains(req.Email, "@") {
		s.writeError(w, http.StatusBadRequest, "invalid email", "")
		return
	}
	if len(req.Password) < 8 {
		s.writeError(w, http.StatusBadRequest, "password must be at least 8 characters", "")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error("hash password", "error", err)
		s.writeError(w, http.StatusInternalServerError, "registration failed", "")
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Email, hash)
	if errors.Is(err, store.ErrEmailTaken) {
		s.writeError(w, http.StatusConflict, "email already registered", "")
		return
	}
	if err != nil {
		s.logger.Error("create user", "error", err)
		s.writeError(w, http.StatusInternalServerError, "registration failed", "")
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID)
	if err != nil {
		s.logger.Error("generate token", "error", err)
		s.writeError(w, http.StatusInternalServerError, "registration failed", "")
		return
	}

	s.logger.Info("user registered", "user_id", user.ID)
	s.writeJSON(w, http.StatusCreated, authResponse{Token: token, User: user})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body", "")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, store.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		s.writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}
	if err != nil {
		s.logger.Error("get user", "error", err)
		s.writeError(w, http.StatusInternalServerError, "login failed", "")
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, user.ID)
	if err != nil {
		s.logger.Error("generate token", "error", err)
		s.writeError(w, http.StatusInternalServerError, "login failed", "")
		return
	}

	s.writeJSON(w, http.StatusOK, authResponse{Token: token, User: user})
}
