// Package client talks to the gophtodo REST API and bootstraps the CLI's
// local SQLite database.
//
// Protected calls carry the session token as a bearer credential. Failures
// are reported as *APIError; 401 and 403 responses match ErrUnauthorized
// with errors.Is, transport failures match ErrUnavailable.
package client

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string, rememberMe bool) (*models.LoginResult, error)

	ListTodos(ctx context.Context) ([]models.Todo, error)
	GetTodo(ctx context.Context, id string) (*models.Todo, error)
	CreateTodo(ctx context.Context, in models.TodoInput) (*models.Todo, error)
	UpdateTodo(ctx context.Context, id string, in models.TodoInput) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id string) error

	Profile(ctx context.Context) (*models.User, error)
	UpdateName(ctx context.Context, name string) (*models.User, error)
	UpdatePassword(ctx context.Context, current, next string) error
}

// TokenSource supplies the bearer token; *session.Manager implements it.
type TokenSource interface {
	Token() string
}
