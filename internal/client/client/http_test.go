package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, reply string) (*HTTPClient, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.auth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		if len(b) > 0 {
			_ = json.Unmarshal(b, &rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", time.Second, staticToken("tok-1")), rec
}

func TestLogin_SendsNoBearerAndConvertsExpiresIn(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `{"message":"Login successful","token":"abc","expiresIn":604800000}`)

	res, err := c.Login(context.Background(), "a@example.com", "pw", true)
	require.NoError(t, err)

	assert.Equal(t, "abc", res.Token)
	assert.Equal(t, 7*24*time.Hour, res.ExpiresIn)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/login", rec.path)
	assert.Empty(t, rec.auth)
	assert.Equal(t, map[string]any{"email": "a@example.com", "password": "pw", "rememberMe": true}, rec.body)
}

func TestRegister(t *testing.T) {
	c, rec := newTestServer(t, http.StatusCreated, `{"message":"Registration successful! Please login to continue.","email":"a@example.com"}`)

	require.NoError(t, c.Register(context.Background(), "Ann", "a@example.com", "pw"))
	assert.Equal(t, "/register", rec.path)
	assert.Equal(t, map[string]any{"name": "Ann", "email": "a@example.com", "password": "pw"}, rec.body)
}

func TestProtectedCallsCarryBearer(t *testing.T) {
	c, rec := newTestServer(t, http.StatusOK, `[{"todo_id":"1","title":"t","description":"d","priority":"low","is_complete":false,"due_date":null,"created_at":"2025-01-02T03:04:05Z","updated_at":null}]`)

	list, err := c.ListTodos(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)
	assert.Nil(t, list[0].DueDate)
	assert.Equal(t, "Bearer tok-1", rec.auth)
	assert.Equal(t, "/todos", rec.path)
}

func TestTodoRoutes(t *testing.T) {
	ctx := context.Background()
	due := "2025-05-01"
	in := models.TodoInput{Title: "t", Description: "d", Priority: "high", DueDate: &due}

	c, rec := newTestServer(t, http.StatusCreated, `{"todo_id":"9","title":"t"}`)
	todo, err := c.CreateTodo(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "9", todo.ID)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "2025-05-01", rec.body["due_date"])

	c, rec = newTestServer(t, http.StatusOK, `{"todo_id":"9","is_complete":true}`)
	todo, err = c.UpdateTodo(ctx, "9", in)
	require.NoError(t, err)
	assert.True(t, todo.IsComplete)
	assert.Equal(t, http.MethodPut, rec.method)
	assert.Equal(t, "/todos/9", rec.path)

	c, rec = newTestServer(t, http.StatusOK, `{"todo_id":"9"}`)
	_, err = c.GetTodo(ctx, "9")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)

	c, rec = newTestServer(t, http.StatusOK, `{"message":"Todo deleted successfully"}`)
	require.NoError(t, c.DeleteTodo(ctx, "9"))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/todos/9", rec.path)
}

func TestProfileRoutes(t *testing.T) {
	ctx := context.Background()

	c, rec := newTestServer(t, http.StatusOK, `{"user_id":"u1","name":"Ann","email":"a@example.com"}`)
	u, err := c.Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.User{ID: "u1", Name: "Ann", Email: "a@example.com"}, *u)
	assert.Equal(t, "/user/profile", rec.path)

	c, rec = newTestServer(t, http.StatusOK, `{"message":"Name updated successfully","user":{"user_id":"u1","name":"Bo","email":"a@example.com"}}`)
	u, err = c.UpdateName(ctx, "Bo")
	require.NoError(t, err)
	assert.Equal(t, "Bo", u.Name)
	assert.Equal(t, "/user/update-name", rec.path)

	c, rec = newTestServer(t, http.StatusOK, `{"message":"Password updated successfully"}`)
	require.NoError(t, c.UpdatePassword(ctx, "old", "new"))
	assert.Equal(t, map[string]any{"currentPassword": "old", "newPassword": "new"}, rec.body)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target   error
		msg      string
		rejected bool
	}{
		{"missing token", http.StatusForbidden, `{"error":"Token is required"}`, ErrUnauthorized, "Token is required", true},
		{"invalid token", http.StatusUnauthorized, `{"error":"Invalid or expired token"}`, ErrUnauthorized, "Invalid or expired token", true},
		{"wrong password", http.StatusUnauthorized, `{"error":"Current password is incorrect"}`, ErrUnauthorized, "Current password is incorrect", false},
		{"not found", http.StatusNotFound, `{"error":"Todo not found"}`, nil, "Todo not found", false},
		{"server", http.StatusInternalServerError, `{"error":"Server Error"}`, nil, "Server Error", false},
		{"gateway", http.StatusBadGateway, `<html>`, ErrUnavailable, "server returned 502", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestServer(t, tt.status, tt.body)
			_, err := c.GetTodo(context.Background(), "1")

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.msg, err.Error())
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			} else {
				assert.False(t, errors.Is(err, ErrUnauthorized))
			}
			assert.Equal(t, tt.rejected, errors.Is(err, ErrSessionRejected))
		})
	}
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second, staticToken(""))
	_, err := c.Profile(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}
