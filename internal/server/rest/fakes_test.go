package rest

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
)

type fakeUsers struct {
	registerErr error
	loginRes    *services.LoginResult
	loginErr    error
	profile     *models.User
	profileErr  error
	nameErr     error
	passwordErr error

	gotRemember *bool
	gotUserID   string
	gotName     string
	gotCurrent  string
	gotNext     string
}

func (f *fakeUsers) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return &models.User{ID: "u-1", Name: name, Email: email}, nil
}

func (f *fakeUsers) Login(ctx context.Context, email, password string, rememberMe bool) (*services.LoginResult, error) {
	f.gotRemember = &rememberMe
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	if f.loginRes != nil {
		return f.loginRes, nil
	}
	ttl := time.Hour
	if rememberMe {
		ttl = 7 * 24 * time.Hour
	}
	return &services.LoginResult{Token: "tok", ExpiresIn: ttl}, nil
}

func (f *fakeUsers) Profile(ctx context.Context, userID string) (*models.User, error) {
	f.gotUserID = userID
	return f.profile, f.profileErr
}

func (f *fakeUsers) UpdateName(ctx context.Context, userID, name string) (*models.User, error) {
	f.gotUserID, f.gotName = userID, name
	if f.nameErr != nil {
		return nil, f.nameErr
	}
	return &models.User{ID: userID, Name: name, Email: "a@example.com"}, nil
}

func (f *fakeUsers) UpdatePassword(ctx context.Context, userID, current, next string) error {
	f.gotUserID, f.gotCurrent, f.gotNext = userID, current, next
	return f.passwordErr
}

type fakeTodos struct {
	err     error
	items   []models.Todo
	gotUser string
	gotID   string
	gotIn   services.TodoInput
}

func (f *fakeTodos) Create(ctx context.Context, userID string, in services.TodoInput) (*models.Todo, error) {
	f.gotUser, f.gotIn = userID, in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: "t-1", UserID: userID, Title: in.Title, Description: in.Description, DueDate: in.DueDate, Priority: in.Priority}, nil
}

func (f *fakeTodos) List(ctx context.Context, userID string) ([]models.Todo, error) {
	f.gotUser = userID
	return f.items, f.err
}

func (f *fakeTodos) Get(ctx context.Context, userID, id string) (*models.Todo, error) {
	f.gotUser, f.gotID = userID, id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: id, UserID: userID, Title: "t"}, nil
}

func (f *fakeTodos) Update(ctx context.Context, userID, id string, in services.TodoInput) (*models.Todo, error) {
	f.gotUser, f.gotID, f.gotIn = userID, id, in
	if f.err != nil {
		return nil, f.err
	}
	return &models.Todo{ID: id, UserID: userID, Title: in.Title, IsComplete: in.IsComplete}, nil
}

func (f *fakeTodos) Delete(ctx context.Context, userID, id string) error {
	f.gotUser, f.gotID = userID, id
	return f.err
}
