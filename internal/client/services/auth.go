package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string, rememberMe bool) error
	Logout(ctx context.Context) error
	RememberedEmail(ctx context.Context) (string, error)
}

type authService struct {
	client  client.Client
	session Session
}

func NewAuthService(c client.Client, s Session) AuthService {
	return &authService{client: c, session: s}
}

// Register creates the account. It does not log in.
func (a *authService) Register(ctx context.Context, name, email, password string) error {
	return a.client.Register(ctx, name, email, password)
}

func (a *authService) Login(ctx context.Context, email, password string, rememberMe bool) error {
	res, err := a.client.Login(ctx, email, password, rememberMe)
	if err != nil {
		return err
	}
	if err := a.session.Establish(ctx, email, rememberMe, res.Token, res.ExpiresIn); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) RememberedEmail(ctx context.Context) (string, error) {
	return a.session.RememberedEmail(ctx)
}
