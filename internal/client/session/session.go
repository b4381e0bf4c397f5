// Package session keeps the CLI's login state: the bearer token, its absolute
// expiry and the optional remembered email. State is persisted in the local
// metadata store so that a session survives restarts.
//
// The server is never asked whether a token is still valid. A session ends
// when the user logs out or when a protected call reports an auth failure
// (see Manager.Invalidate).
package session

import (
	"context"
	"strconv"
	"sync"
	"time"
)

// Metadata keys.
const (
	KeyToken           = "auth_token"
	KeyTokenExpiry     = "token_expiry"
	KeyRememberMe      = "remember_me"
	KeyRememberedEmail = "remembered_email"
)

type State int

const (
	LoggedOut State = iota
	LoggedIn
)

func (s State) String() string {
	if s == LoggedIn {
		return "logged in"
	}
	return "logged out"
}

// Storage is satisfied by *metadata.Store.
type Storage interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Apply(ctx context.Context, set map[string]string, del []string) error
}

// Manager is safe for concurrent use.
type Manager struct {
	store Storage
	now   func() time.Time

	mu     sync.RWMutex
	state  State
	token  string
	expiry time.Time
}

func NewManager(store Storage) *Manager {
	return &Manager{store: store, now: time.Now}
}

// WithClock replaces the time source; used by tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// Establish records a successful login. The expiry is computed locally as
// now + expiresIn. With rememberMe the email is kept for the next login
// prompt; without it any previously remembered email is forgotten.
func (m *Manager) Establish(ctx context.Context, email string, rememberMe bool, token string, expiresIn time.Duration) error {
	expiry := m.now().Add(expiresIn)

	set := map[string]string{
		KeyToken:       token,
		KeyTokenExpiry: strconv.FormatInt(expiry.UnixMilli(), 10),
		KeyRememberMe:  strconv.FormatBool(rememberMe),
	}
	var del []string
	if rememberMe {
		set[KeyRememberedEmail] = email
	} else {
		del = append(del, KeyRememberedEmail)
	}

	if err := m.store.Apply(ctx, set, del); err != nil {
		return err
	}

	m.mu.Lock()
	m.state, m.token, m.expiry = LoggedIn, token, expiry
	m.mu.Unlock()
	return nil
}

// Load rehydrates the session from storage. A stored token means LoggedIn
// whether or not its expiry has passed.
func (m *Manager) Load(ctx context.Context) error {
	token, ok, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return err
	}

	var expiry time.Time
	if raw, found, err := m.store.Get(ctx, KeyTokenExpiry); err != nil {
		return err
	} else if found {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			expiry = time.UnixMilli(ms)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ok && token != "" {
		m.state, m.token, m.expiry = LoggedIn, token, expiry
	} else {
		m.state, m.token, m.expiry = LoggedOut, "", time.Time{}
	}
	return nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Token returns the bearer credential, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Expiry is the zero time when unknown.
func (m *Manager) Expiry() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.expiry
}

// Expired reports whether the stored expiry has passed. It is advisory; the
// server's answer is authoritative.
func (m *Manager) Expired() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.state != LoggedIn || m.expiry.IsZero() {
		return false
	}
	return !m.now().Before(m.expiry)
}

// Invalidate moves to LoggedOut after a protected call was rejected. The
// stored token is left in place; the next login overwrites it.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.state, m.token, m.expiry = LoggedOut, "", time.Time{}
	m.mu.Unlock()
}

// Logout forgets the token and its expiry. The remembered email is kept.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Apply(ctx, nil, []string{KeyToken, KeyTokenExpiry}); err != nil {
		return err
	}
	m.Invalidate()
	return nil
}

// RememberedEmail returns the email to pre-fill at the login prompt. It says
// nothing about whether a session is active.
func (m *Manager) RememberedEmail(ctx context.Context) (string, error) {
	remember, _, err := m.store.Get(ctx, KeyRememberMe)
	if err != nil {
		return "", err
	}
	if remember != "true" {
		return "", nil
	}
	email, _, err := m.store.Get(ctx, KeyRememberedEmail)
	if err != nil {
		return "", err
	}
	return email, nil
}
