// Package services contains server-side business logic. UserService covers
// registration, login and profile changes; TodoService covers the per-user
// todo list.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/repomanager"
)

// TokenIssuer signs bearer tokens. *auth.TokenService implements it.
type TokenIssuer interface {
	Issue(identity auth.Identity, ttl time.Duration) (string, error)
}

// LoginResult is what a successful login hands back to the client.
// ExpiresIn is the token lifetime, not an absolute time.
type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	ttl         auth.TTLPolicy
	log         logging.Logger
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher auth.PasswordHasher,
	tokens TokenIssuer, ttl auth.TTLPolicy, log logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		ttl:         ttl,
		log:         log.With("module", "user_service"),
	}
}

// Register creates a credential record. It does not log the user in.
//
// Returns common.ErrMissingField when any argument is empty and
// common.ErrAlreadyExists when the email is taken.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, common.ErrMissingField
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Login checks the credentials and issues a token whose lifetime depends on
// rememberMe. An unknown email and a wrong password both yield
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string, rememberMe bool) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, common.ErrMissingField
	}

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error verifying password: %w", err)
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	ttl := s.ttl.For(rememberMe)

	token, err := s.tokens.Issue(auth.Identity{UserID: user.ID, Name: user.Name}, ttl)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.log.Info(ctx, "user logged in", "user_id", user.ID, "remember_me", rememberMe)
	return &LoginResult{Token: token, ExpiresIn: ttl}, nil
}

func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	return user, nil
}

// UpdateName rejects blank names with common.ErrMissingField.
func (s *UserService) UpdateName(ctx context.Context, userID, name string) (*models.User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, common.ErrMissingField
	}

	user, err := s.repomanager.Users(s.db).UpdateName(ctx, userID, name)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating name: %w", err)
	}
	return user, nil
}

// UpdatePassword replaces the stored hash after checking current. The read
// and the write share one transaction. A wrong current password yields
// common.ErrorUnauthorized.
func (s *UserService) UpdatePassword(ctx context.Context, userID, current, next string) error {
	if current == "" || next == "" {
		return common.ErrMissingField
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		user, err := repo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		ok, err := s.hasher.Verify(current, user.PasswordHash)
		if err != nil {
			return err
		}
		if !ok {
			return common.ErrorUnauthorized
		}

		hash, err := s.hasher.Hash(next)
		if err != nil {
			return err
		}

		return repo.UpdatePasswordHash(ctx, userID, hash)
	})

	switch {
	case err == nil:
		s.log.Info(ctx, "password changed", "user_id", userID)
		return nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorUnauthorized):
		return err
	default:
		return fmt.Errorf("error updating password: %w", err)
	}
}
