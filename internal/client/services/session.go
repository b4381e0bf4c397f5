// Package services contains the CLI's application services. They call the
// API through client.Client and keep the session in step with the answers.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/session"
)

// Session is the part of *session.Manager the services need.
type Session interface {
	Establish(ctx context.Context, email string, rememberMe bool, token string, expiresIn time.Duration) error
	Logout(ctx context.Context) error
	Invalidate()
	State() session.State
	RememberedEmail(ctx context.Context) (string, error)
}

// ErrNotLoggedIn is returned by protected operations when there is no session.
var ErrNotLoggedIn = errors.New("not logged in")

// protected runs fn for an operation that needs a token. A rejection by the
// server's token check ends the local session.
func protected(s Session, fn func() error) error {
	if s.State() != session.LoggedIn {
		return ErrNotLoggedIn
	}
	err := fn()
	if errors.Is(err, client.ErrSessionRejected) {
		s.Invalidate()
	}
	return err
}
