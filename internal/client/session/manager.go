// Package session owns the authenticated-user state of the client: bootstrap
// from the credential repository, login/logout transitions, and the
// inactivity watchdog that expires idle sessions.
//
// State machine: Bootstrapping to {Anonymous, Authenticated}. The manager is
// constructed with a synchronous bootstrap; afterwards Login and Logout move
// between Anonymous and Authenticated. The watchdog runs only while
// Authenticated and there is exactly one of it per authenticated period.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anandk87/filetrack/internal/client/api"
	"github.com/anandk87/filetrack/internal/client/models"
	"github.com/anandk87/filetrack/internal/client/repositories/credentials"
	"github.com/anandk87/filetrack/internal/common"
	"github.com/anandk87/filetrack/internal/logging"
)

type Manager struct {
	store   credentials.Repository
	client  api.Client
	log     logging.Logger
	timeout time.Duration

	mu        sync.Mutex
	loading   bool
	session   *models.Session
	epoch     uint64
	watchdog  *time.Timer
	onExpired func()
}

// New constructs a Manager and synchronously bootstraps it from the
// credential repository. If both the token and the user record are present
// and parse, the manager starts out Authenticated; on any failure the store
// is cleared and the manager starts out Anonymous. Bootstrap never returns
// an error to the caller.
//
// timeout is the inactivity window; a non-positive value disables the
// watchdog (tests use that).
func New(ctx context.Context, store credentials.Repository, client api.Client, timeout time.Duration, log logging.Logger) *Manager {
	m := &Manager{
		store:   store,
		client:  client,
		log:     log,
		timeout: timeout,
		loading: true,
	}
	m.bootstrap(ctx)

	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()

	return m
}

// OnExpired registers the callback notified (once per occurrence) when the
// watchdog expires the session. It must be set before login.
func (m *Manager) OnExpired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpired = fn
}

// Current returns the active session, or (nil, false) when Anonymous.
func (m *Manager) Current() (*models.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil, false
	}
	return m.session, true
}

// IsLoading reports whether the constructor-time bootstrap is still running.
func (m *Manager) IsLoading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Epoch increases on every login and logout. Callers capture it before a
// network call and compare after, so responses that arrive for a session
// that has since ended can be discarded instead of applied.
func (m *Manager) Epoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

func (m *Manager) bootstrap(ctx context.Context) {
	token, err := m.store.Get(ctx, common.TokenKey)
	if err != nil {
		m.log.Warn(ctx, "reading stored token", "error", err)
		m.reset(ctx)
		return
	}
	rawUser, err := m.store.Get(ctx, common.UserKey)
	if err != nil {
		m.log.Warn(ctx, "reading stored user", "error", err)
		m.reset(ctx)
		return
	}

	if token == nil || rawUser == nil {
		// One key without the other is a broken store; wipe both.
		if token != nil || rawUser != nil {
			m.reset(ctx)
		}
		return
	}

	if err := checkToken(string(token)); err != nil {
		m.log.Warn(ctx, "discarding stored session", "reason", err)
		m.reset(ctx)
		return
	}

	var user models.User
	if err := json.Unmarshal(rawUser, &user); err != nil {
		m.log.Warn(ctx, "discarding unparseable stored user", "error", err)
		m.reset(ctx)
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.client.SetToken(string(token))
	m.session = &models.Session{
		Token:         string(token),
		User:          &user,
		EstablishedAt: time.Now(),
	}
	m.startWatchdogLocked()
}

// reset clears the credential store, best effort.
func (m *Manager) reset(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.log.Error(ctx, "clearing credential store", "error", err)
	}
}

// Login authenticates against the server and, on success, persists the token
// and user record atomically and enters Authenticated. On any failure the
// state is left unchanged; the caller is responsible for surfacing "Invalid
// credentials" to the user.
func (m *Manager) Login(ctx context.Context, username, password string) error {
	token, user, err := m.client.Login(ctx, username, password)
	if err != nil {
		return err
	}

	rawUser, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("%w: encoding user record: %v", common.ErrTransport, err)
	}

	// Persisting happens under the same lock as the in-memory swap so the
	// store and the session always transition together. A watchdog expiry
	// racing this login is fully ordered before or after it, never between
	// the persist and the swap.
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SetAll(ctx, map[string][]byte{
		common.TokenKey: []byte(token),
		common.UserKey:  rawUser,
	}); err != nil {
		return fmt.Errorf("persisting credentials: %w", err)
	}

	m.stopWatchdogLocked()
	m.client.SetToken(token)
	m.session = &models.Session{Token: token, User: user, EstablishedAt: time.Now()}
	m.epoch++
	m.startWatchdogLocked()

	m.log.Info(ctx, "logged in", "username", user.Username, "role", user.Role)
	return nil
}

// Logout clears the credential store and the in-memory session
// unconditionally. It is idempotent and never fails: a store error is logged
// and the in-memory state is still torn down, watchdog included.
func (m *Manager) Logout(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopWatchdogLocked()
	m.client.SetToken("")
	m.session = nil
	m.epoch++
	m.reset(ctx)
}

// Activity records a user-activity signal (key press, command input) and
// pushes the inactivity deadline out by a full timeout window.
func (m *Manager) Activity() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.watchdog != nil {
		m.watchdog.Reset(m.timeout)
	}
}

func (m *Manager) startWatchdogLocked() {
	if m.timeout <= 0 {
		return
	}
	epoch := m.epoch
	m.watchdog = time.AfterFunc(m.timeout, func() { m.expire(epoch) })
}

func (m *Manager) stopWatchdogLocked() {
	if m.watchdog != nil {
		m.watchdog.Stop()
		m.watchdog = nil
	}
}

// expire is the watchdog callback. The epoch guard makes a stale timer that
// fires while a newer session is active a no-op.
func (m *Manager) expire(epoch uint64) {
	ctx := context.Background()

	m.mu.Lock()
	if m.epoch != epoch || m.session == nil {
		m.mu.Unlock()
		return
	}
	m.stopWatchdogLocked()
	m.client.SetToken("")
	m.session = nil
	m.epoch++
	onExpired := m.onExpired
	// The store wipe stays under the lock: a concurrent Login must not be
	// able to persist fresh credentials between the in-memory teardown and
	// the wipe, or the wipe would empty the store under a live session.
	m.reset(ctx)
	m.mu.Unlock()

	m.log.Info(ctx, "session expired due to inactivity")
	if onExpired != nil {
		onExpired()
	}
}

// checkToken decodes the stored JWT without verifying its signature (the
// client holds no key material) and rejects tokens that are already expired,
// so a stale cache does not produce a session doomed to 401 on first use.
func checkToken(token string) error {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("parsing token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("reading token expiry: %w", err)
	}
	if exp != nil && exp.Before(time.Now()) {
		return common.ErrSessionExpired
	}
	return nil
}
