package services

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

type TodoService interface {
	List(ctx context.Context) ([]models.Todo, error)
	Get(ctx context.Context, id string) (*models.Todo, error)
	Add(ctx context.Context, in models.TodoInput) (*models.Todo, error)
	Update(ctx context.Context, id string, in models.TodoInput) (*models.Todo, error)
	// SetComplete fetches the item and writes it back with the flag changed.
	SetComplete(ctx context.Context, id string, done bool) (*models.Todo, error)
	Delete(ctx context.Context, id string) error
}

type todoService struct {
	client  client.Client
	session Session
}

func NewTodoService(c client.Client, s Session) TodoService {
	return &todoService{client: c, session: s}
}

func (t *todoService) List(ctx context.Context) (list []models.Todo, err error) {
	err = protected(t.session, func() error {
		list, err = t.client.ListTodos(ctx)
		return err
	})
	return list, err
}

func (t *todoService) Get(ctx context.Context, id string) (todo *models.Todo, err error) {
	err = protected(t.session, func() error {
		todo, err = t.client.GetTodo(ctx, id)
		return err
	})
	return todo, err
}

func (t *todoService) Add(ctx context.Context, in models.TodoInput) (todo *models.Todo, err error) {
	err = protected(t.session, func() error {
		todo, err = t.client.CreateTodo(ctx, in)
		return err
	})
	return todo, err
}

func (t *todoService) Update(ctx context.Context, id string, in models.TodoInput) (todo *models.Todo, err error) {
	err = protected(t.session, func() error {
		todo, err = t.client.UpdateTodo(ctx, id, in)
		return err
	})
	return todo, err
}

func (t *todoService) SetComplete(ctx context.Context, id string, done bool) (*models.Todo, error) {
	cur, err := t.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in := models.InputFrom(*cur)
	in.IsComplete = done
	return t.Update(ctx, id, in)
}

func (t *todoService) Delete(ctx context.Context, id string) error {
	return protected(t.session, func() error {
		return t.client.DeleteTodo(ctx, id)
	})
}
