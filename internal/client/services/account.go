package services

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/models"
)

type AccountService interface {
	Profile(ctx context.Context) (*models.User, error)
	Rename(ctx context.Context, name string) (*models.User, error)
	ChangePassword(ctx context.Context, current, next string) error
}

type accountService struct {
	client  client.Client
	session Session
}

func NewAccountService(c client.Client, s Session) AccountService {
	return &accountService{client: c, session: s}
}

func (a *accountService) Profile(ctx context.Context) (u *models.User, err error) {
	err = protected(a.session, func() error {
		u, err = a.client.Profile(ctx)
		return err
	})
	return u, err
}

func (a *accountService) Rename(ctx context.Context, name string) (u *models.User, err error) {
	err = protected(a.session, func() error {
		u, err = a.client.UpdateName(ctx, name)
		return err
	})
	return u, err
}

func (a *accountService) ChangePassword(ctx context.Context, current, next string) error {
	return protected(a.session, func() error {
		return a.client.UpdatePassword(ctx, current, next)
	})
}
