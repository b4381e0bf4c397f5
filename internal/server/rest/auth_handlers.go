package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/metrics"
)

const (
	msgRegistered          = "Registration successful! Please login to continue."
	msgAllFieldsRequired   = "All fields are required"
	msgEmailTaken          = "Email already registered"
	msgLoggedIn            = "Login successful"
	msgCredentialsRequired = "Email and password are required"
	msgInvalidCredentials  = "Invalid email or password"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe truthy `json:"rememberMe"`
}

type loginResponse struct {
	Message   string `json:"message"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	_, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	switch {
	case err == nil:
		s.metrics.AuthEvent("register", metrics.OutcomeSuccess)
		writeJSON(w, http.StatusCreated, registerResponse{Message: msgRegistered, Email: req.Email})
	case errors.Is(err, common.ErrMissingField):
		s.metrics.AuthEvent("register", metrics.OutcomeRejected)
		writeError(w, http.StatusBadRequest, msgAllFieldsRequired)
	case errors.Is(err, common.ErrAlreadyExists):
		s.metrics.AuthEvent("register", metrics.OutcomeRejected)
		writeError(w, http.StatusBadRequest, msgEmailTaken)
	default:
		s.metrics.AuthEvent("register", metrics.OutcomeError)
		s.logger.Error(r.Context(), "register failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	res, err := s.users.Login(r.Context(), req.Email, req.Password, bool(req.RememberMe))
	switch {
	case err == nil:
		s.metrics.AuthEvent("login", metrics.OutcomeSuccess)
		writeJSON(w, http.StatusOK, loginResponse{
			Message:   msgLoggedIn,
			Token:     res.Token,
			ExpiresIn: res.ExpiresIn.Milliseconds(),
		})
	case errors.Is(err, common.ErrMissingField):
		s.metrics.AuthEvent("login", metrics.OutcomeRejected)
		writeError(w, http.StatusBadRequest, msgCredentialsRequired)
	case errors.Is(err, common.ErrorUnauthorized):
		s.metrics.AuthEvent("login", metrics.OutcomeRejected)
		writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
	default:
		s.metrics.AuthEvent("login", metrics.OutcomeError)
		s.logger.Error(r.Context(), "login failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}
