package session

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophtodo/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) *metadata.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL)`)
	require.NoError(t, err)
	return metadata.NewStore(db)
}

func newManager(t *testing.T, store Storage, now *time.Time) *Manager {
	t.Helper()
	return NewManager(store).WithClock(func() time.Time { return *now })
}

func TestEstablish_PersistsTokenAndAbsoluteExpiry(t *testing.T) {
	store := newStore(t)
	now := t0
	m := newManager(t, store, &now)
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, "a@example.com", false, "tok-1", time.Hour))

	assert.Equal(t, LoggedIn, m.State())
	assert.Equal(t, "tok-1", m.Token())
	assert.Equal(t, t0.Add(time.Hour), m.Expiry())

	v, _, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", v)

	v, _, err = store.Get(ctx, KeyTokenExpiry)
	require.NoError(t, err)
	assert.Equal(t, "1748782800000", v)

	v, _, err = store.Get(ctx, KeyRememberMe)
	require.NoError(t, err)
	assert.Equal(t, "false", v)
}

func TestEstablish_RememberMeControlsEmail(t *testing.T) {
	store := newStore(t)
	now := t0
	m := newManager(t, store, &now)
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, "a@example.com", true, "tok-1", 7*24*time.Hour))
	email, err := m.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)

	require.NoError(t, m.Establish(ctx, "a@example.com", false, "tok-2", time.Hour))
	email, err = m.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)

	_, ok, err := store.Get(ctx, KeyRememberedEmail)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "tok-2", m.Token())
}

func TestRememberedEmail_RequiresFlag(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyRememberedEmail, "a@example.com"))

	m := NewManager(store)
	email, err := m.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)

	require.NoError(t, store.Set(ctx, KeyRememberMe, "true"))
	email, err = m.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)
	assert.Equal(t, LoggedOut, m.State(), "a remembered email is not a session")
}

func TestLoad_RehydratesAcrossRestart(t *testing.T) {
	store := newStore(t)
	now := t0
	ctx := context.Background()

	first := newManager(t, store, &now)
	require.NoError(t, first.Establish(ctx, "a@example.com", true, "tok-1", time.Hour))

	second := newManager(t, store, &now)
	assert.Equal(t, LoggedOut, second.State())
	require.NoError(t, second.Load(ctx))

	assert.Equal(t, LoggedIn, second.State())
	assert.Equal(t, "tok-1", second.Token())
	assert.Equal(t, t0.Add(time.Hour).UnixMilli(), second.Expiry().UnixMilli())
}

func TestLoad_StaleTokenStillLoggedIn(t *testing.T) {
	store := newStore(t)
	now := t0
	ctx := context.Background()

	m := newManager(t, store, &now)
	require.NoError(t, m.Establish(ctx, "", false, "tok-1", time.Hour))

	now = t0.Add(2 * time.Hour)
	reloaded := newManager(t, store, &now)
	require.NoError(t, reloaded.Load(ctx))

	assert.Equal(t, LoggedIn, reloaded.State())
	assert.True(t, reloaded.Expired())
}

func TestLoad_EmptyStore(t *testing.T) {
	m := NewManager(newStore(t))
	require.NoError(t, m.Load(context.Background()))
	assert.Equal(t, LoggedOut, m.State())
	assert.Empty(t, m.Token())
}

func TestExpired(t *testing.T) {
	now := t0
	m := newManager(t, newStore(t), &now)
	ctx := context.Background()

	assert.False(t, m.Expired(), "logged out is not expired")

	require.NoError(t, m.Establish(ctx, "", false, "tok", time.Hour))
	assert.False(t, m.Expired())

	now = t0.Add(time.Hour - time.Millisecond)
	assert.False(t, m.Expired())

	now = t0.Add(time.Hour)
	assert.True(t, m.Expired())
}

func TestInvalidate_KeepsStoredToken(t *testing.T) {
	store := newStore(t)
	now := t0
	m := newManager(t, store, &now)
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, "", false, "tok", time.Hour))
	m.Invalidate()

	assert.Equal(t, LoggedOut, m.State())
	assert.Empty(t, m.Token())

	v, ok, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)
}

func TestLogout_ForgetsTokenKeepsEmail(t *testing.T) {
	store := newStore(t)
	now := t0
	m := newManager(t, store, &now)
	ctx := context.Background()

	require.NoError(t, m.Establish(ctx, "a@example.com", true, "tok", time.Hour))
	require.NoError(t, m.Logout(ctx))

	assert.Equal(t, LoggedOut, m.State())
	_, ok, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = store.Get(ctx, KeyTokenExpiry)
	require.NoError(t, err)
	assert.False(t, ok)

	email, err := m.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", email)
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}

func (failingStore) Apply(context.Context, map[string]string, []string) error {
	return errors.New("disk gone")
}

func TestStorageErrors(t *testing.T) {
	m := NewManager(failingStore{})
	ctx := context.Background()

	require.Error(t, m.Establish(ctx, "a@example.com", true, "tok", time.Hour))
	assert.Equal(t, LoggedOut, m.State(), "state changes only after a successful write")
	require.Error(t, m.Load(ctx))
	require.Error(t, m.Logout(ctx))
	_, err := m.RememberedEmail(ctx)
	require.Error(t, err)
}

func TestConcurrentAccess(t *testing.T) {
	now := t0
	m := newManager(t, newStore(t), &now)
	ctx := context.Background()
	require.NoError(t, m.Establish(ctx, "", false, "tok", time.Hour))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = m.Token()
			_ = m.State()
		}()
		go func() {
			defer wg.Done()
			m.Invalidate()
		}()
	}
	wg.Wait()
	assert.Equal(t, LoggedOut, m.State())
}
