package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophtodo/internal/client/client"
	"github.com/dmitrijs2005/gophtodo/internal/client/config"
	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gophtodo/internal/client/services"
	"github.com/dmitrijs2005/gophtodo/internal/client/session"
)

type App struct {
	authService    services.AuthService
	todoService    services.TodoService
	accountService services.AccountService
	session        *session.Manager
	db             *sql.DB
	reader         *bufio.Reader
	out            io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	sess := session.NewManager(metadata.NewStore(db))
	if err := sess.Load(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("load session: %w", err)
	}

	api := client.NewHTTPClient(c.ServerURL, c.RequestTimeout, sess)

	return &App{
		authService:    services.NewAuthService(api, sess),
		todoService:    services.NewTodoService(api, sess),
		accountService: services.NewAccountService(api, sess),
		session:        sess,
		db:             db,
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// Run blocks until the user exits, then closes the local database.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Welcome to gophtodo (type 'help' for commands)")
	if a.isLoggedIn() {
		if a.session.Expired() {
			fmt.Fprintln(a.out, "Your saved session has expired; run 'login' if requests are rejected.")
		}
		if err := a.List(ctx); err != nil {
			fmt.Fprintln(a.out, describeError(err))
		}
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
	return a.db.Close()
}

func (a *App) isLoggedIn() bool {
	return a.session.State() == session.LoggedIn
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return " (logged in)"
	}
	return ""
}

// describeError renders a command failure for the user.
func describeError(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, services.ErrNotLoggedIn):
		return "Please login first."
	case errors.Is(err, client.ErrSessionRejected):
		return "Your session has ended, please login again."
	case errors.Is(err, client.ErrUnavailable):
		return "Server unavailable, try again later."
	case errors.As(err, &apiErr):
		return "Error: " + apiErr.Error()
	}
	return "Error: " + err.Error()
}
