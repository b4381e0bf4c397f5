// Package users is the credential store: user records keyed by id and by
// unique email.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/server/models"
)

// Repository persists credential records.
//
// Create returns common.ErrAlreadyExists when the email is taken; lookups and
// updates return common.ErrorNotFound for unknown users.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateName(ctx context.Context, id string, name string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id string, hash string) error
}
