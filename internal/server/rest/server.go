// Package rest is the server's HTTP transport: a chi router exposing
// registration, login, the protected todo and profile routes and /metrics.
package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
	"github.com/dmitrijs2005/gophtodo/internal/server/metrics"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

type UserService interface {
	Register(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string, rememberMe bool) (*services.LoginResult, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateName(ctx context.Context, userID, name string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, current, next string) error
}

type TodoService interface {
	Create(ctx context.Context, userID string, in services.TodoInput) (*models.Todo, error)
	List(ctx context.Context, userID string) ([]models.Todo, error)
	Get(ctx context.Context, userID, id string) (*models.Todo, error)
	Update(ctx context.Context, userID, id string, in services.TodoInput) (*models.Todo, error)
	Delete(ctx context.Context, userID, id string) error
}

// TokenVerifier is satisfied by *auth.TokenService.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type Server struct {
	address    string
	logger     logging.Logger
	users      UserService
	todos      TodoService
	tokens     TokenVerifier
	metrics    *metrics.Metrics
	corsOrigin string
}

// NewServer builds the HTTP transport. m may be nil, in which case nothing is
// recorded and /metrics is not mounted.
func NewServer(a string, l logging.Logger, us UserService, ts TodoService, tv TokenVerifier,
	m *metrics.Metrics, corsOrigin string) *Server {
	return &Server{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		todos:      ts,
		tokens:     tv,
		metrics:    m,
		corsOrigin: corsOrigin,
	}
}

// Router returns the complete handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:       []string{s.corsOrigin},
		AllowedMethods:       []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:       []string{common.AuthorizationHeaderName, "Content-Type"},
		AllowCredentials:     true,
		OptionsSuccessStatus: http.StatusNoContent,
	}))

	r.Post("/register", s.register)
	r.Post("/login", s.login)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(s.authMiddleware)

		r.Route("/todos", func(r chi.Router) {
			r.Post("/", s.createTodo)
			r.Get("/", s.listTodos)
			r.Get("/{id}", s.getTodo)
			r.Put("/{id}", s.updateTodo)
			r.Delete("/{id}", s.deleteTodo)
		})

		r.Route("/user", func(r chi.Router) {
			r.Get("/profile", s.profile)
			r.Put("/update-name", s.updateName)
			r.Put("/update-password", s.updatePassword)
		})
	})

	return r
}

// Run serves HTTP until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "http shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
