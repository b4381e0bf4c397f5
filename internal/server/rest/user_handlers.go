package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
)

const (
	msgUserNotFound         = "User not found"
	msgNameRequired         = "Name is required"
	msgNameUpdated          = "Name updated successfully"
	msgPasswordsRequired    = "Current password and new password are required"
	msgCurrentPasswordWrong = "Current password is incorrect"
	msgPasswordUpdated      = "Password updated successfully"
)

type updateNameRequest struct {
	Name string `json:"name"`
}

type updateNameResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Profile(r.Context(), identity(r).UserID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, user)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	default:
		s.logger.Error(r.Context(), "profile failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) updateName(w http.ResponseWriter, r *http.Request) {
	var req updateNameRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := s.users.UpdateName(r.Context(), identity(r).UserID, req.Name)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, updateNameResponse{Message: msgNameUpdated, User: user})
	case errors.Is(err, common.ErrMissingField):
		writeError(w, http.StatusBadRequest, msgNameRequired)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	default:
		s.logger.Error(r.Context(), "update name failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) updatePassword(w http.ResponseWriter, r *http.Request) {
	var req updatePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	err := s.users.UpdatePassword(r.Context(), identity(r).UserID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, messageResponse{Message: msgPasswordUpdated})
	case errors.Is(err, common.ErrMissingField):
		writeError(w, http.StatusBadRequest, msgPasswordsRequired)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, msgCurrentPasswordWrong)
	default:
		s.logger.Error(r.Context(), "update password failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}
