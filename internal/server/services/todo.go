package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// TodoInput carries the client-editable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    string
	IsComplete  bool
}

func (in TodoInput) validate() error {
	if in.Title == "" || in.Description == "" || in.Priority == "" {
		return common.ErrMissingField
	}
	return nil
}

type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
}

func NewTodoService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *TodoService {
	return &TodoService{db: db, repomanager: m, log: log.With("module", "todo_service")}
}

// New items always start incomplete.
func (s *TodoService) Create(ctx context.Context, userID string, in TodoInput) (*models.Todo, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	todo, err := s.repomanager.Todos(s.db).Create(ctx, &models.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}

	s.log.Debug(ctx, "todo created", "user_id", userID, "todo_id", todo.ID)
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, userID string) ([]models.Todo, error) {
	list, err := s.repomanager.Todos(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	return list, nil
}

func (s *TodoService) Get(ctx context.Context, userID, id string) (*models.Todo, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	todo, err := s.repomanager.Todos(s.db).Get(ctx, userID, id)
	if err != nil {
		return nil, notFoundOr(err, "error loading todo")
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, userID, id string, in TodoInput) (*models.Todo, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if !validID(id) {
		return nil, common.ErrorNotFound
	}

	todo, err := s.repomanager.Todos(s.db).Update(ctx, &models.Todo{
		ID:          id,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		IsComplete:  in.IsComplete,
	})
	if err != nil {
		return nil, notFoundOr(err, "error updating todo")
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}

	if err := s.repomanager.Todos(s.db).Delete(ctx, userID, id); err != nil {
		return notFoundOr(err, "error deleting todo")
	}

	s.log.Debug(ctx, "todo deleted", "user_id", userID, "todo_id", id)
	return nil
}

// validID reports whether id can name a row; the column is a UUID.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
