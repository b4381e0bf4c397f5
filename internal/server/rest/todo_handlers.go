package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
	"github.com/go-chi/chi/v5"
)

const (
	msgTodoFieldsRequired = "Title, description, and priority are required"
	msgTodoNotFound       = "Todo not found"
	msgTodoDeleted        = "Todo deleted successfully"
)

type todoRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     dueDate `json:"due_date"`
	Priority    string  `json:"priority"`
	IsComplete  truthy  `json:"is_complete"`
}

func (t todoRequest) input() services.TodoInput {
	return services.TodoInput{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.t,
		Priority:    t.Priority,
		IsComplete:  bool(t.IsComplete),
	}
}

// todoError writes the response for a failed todo operation.
func (s *Server) todoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrMissingField):
		writeError(w, http.StatusBadRequest, msgTodoFieldsRequired)
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, msgTodoNotFound)
	default:
		s.logger.Error(r.Context(), "todo operation failed", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
	}
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	todo, err := s.todos.Create(r.Context(), identity(r).UserID, req.input())
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	list, err := s.todos.List(r.Context(), identity(r).UserID)
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request) {
	todo, err := s.todos.Get(r.Context(), identity(r).UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgInvalidInput)
		return
	}

	todo, err := s.todos.Update(r.Context(), identity(r).UserID, chi.URLParam(r, "id"), req.input())
	if err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.todos.Delete(r.Context(), identity(r).UserID, chi.URLParam(r, "id")); err != nil {
		s.todoError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msgTodoDeleted})
}
