package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/dbx"
	"github.com/dmitrijs2005/gophtodo/internal/server/models"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/todos"
	"github.com/dmitrijs2005/gophtodo/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// memUsers is an in-memory users.Repository keyed by id, with a unique
// email index.
type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	err     error
	updates int
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (m *memUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, existing := range m.byID {
		if existing.Email == u.Email {
			return nil, common.ErrAlreadyExists
		}
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	m.byID[c.ID] = &c
	return &c, nil
}

func (m *memUsers) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.byID {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (m *memUsers) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (m *memUsers) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Name = name
	c := *u
	return &c, nil
}

func (m *memUsers) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	u, ok := m.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.PasswordHash = hash
	m.updates++
	return nil
}

type memTodos struct {
	mu    sync.Mutex
	items map[string]*models.Todo
	err   error
	clock time.Time
}

func newMemTodos() *memTodos {
	return &memTodos{items: map[string]*models.Todo{}, clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (m *memTodos) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c := *t
	c.ID = uuid.NewString()
	c.IsComplete = false
	m.clock = m.clock.Add(time.Minute)
	c.CreatedAt = m.clock
	m.items[c.ID] = &c
	out := c
	return &out, nil
}

func (m *memTodos) ListByUser(ctx context.Context, userID string) ([]models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]models.Todo, 0)
	for _, t := range m.items {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTodos) Get(ctx context.Context, userID, id string) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.items[id]
	if !ok || t.UserID != userID {
		return nil, common.ErrorNotFound
	}
	c := *t
	return &c, nil
}

func (m *memTodos) Update(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cur, ok := m.items[t.ID]
	if !ok || cur.UserID != t.UserID {
		return nil, common.ErrorNotFound
	}
	now := m.clock
	c := *t
	c.CreatedAt = cur.CreatedAt
	c.UpdatedAt = &now
	m.items[t.ID] = &c
	out := c
	return &out, nil
}

func (m *memTodos) Delete(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	t, ok := m.items[id]
	if !ok || t.UserID != userID {
		return common.ErrorNotFound
	}
	delete(m.items, id)
	return nil
}

type fakeRepoManager struct {
	u      *memUsers
	t      *memTodos
	usedDB []dbx.DBTX
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository {
	m.usedDB = append(m.usedDB, db)
	return m.u
}

func (m *fakeRepoManager) Todos(db dbx.DBTX) todos.Repository {
	m.usedDB = append(m.usedDB, db)
	return m.t
}

// fakeHasher stores passwords as "h:" + plaintext.
type fakeHasher struct {
	hashErr   error
	verifyErr error
}

func (f fakeHasher) Hash(p string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "h:" + p, nil
}

func (f fakeHasher) Verify(p, h string) (bool, error) {
	if f.verifyErr != nil {
		return false, f.verifyErr
	}
	return h == "h:"+p, nil
}
