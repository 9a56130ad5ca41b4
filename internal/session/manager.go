// Package session owns the client's authentication state.
//
// A Manager holds the access/refresh token pair, is the only writer of the
// persistent token store, and serves as the token source of the API client:
// the Authorization header of every outgoing request is derived from the
// Manager's current access token. Concurrent refreshes are collapsed into a
// single in-flight call shared by all waiters.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/smartchef/smartchef-cli/internal/auth"
)

// Store persists the token pair under the access_token and refresh_token keys.
// *config.Manager implements it.
type Store interface {
	LoadTokens() (access, refresh string, err error)
	// SaveTokens writes both tokens at once; an empty refresh token removes the stored one.
	SaveTokens(access, refresh string) error
	SaveAccessToken(access string) error
	ClearTokens() error
}

// Authenticator is the remote auth service. *auth.Remote implements it.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (auth.TokenPair, error)
	Register(ctx context.Context, username, email, password string) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
}

const refreshKey = "refresh"

// errSessionChanged aborts a refresh whose session was replaced or cleared while it was in flight
var errSessionChanged = errors.New("session changed during refresh")

// Manager maintains the session and keeps request authorization consistent with the store
type Manager struct {
	store  Store
	remote Authenticator
	logger *slog.Logger

	// mu guards access and generation, and is held across store writes so
	// a commit can never interleave with a teardown
	mu         sync.RWMutex
	access     string
	generation uint64

	refreshes singleflight.Group
}

// NewManager creates an unauthenticated session manager. Call InitSession to
// restore a persisted session.
func NewManager(store Store, remote Authenticator, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		remote: remote,
		logger: logger,
	}
}

// AccessToken returns the access token applied to outgoing requests
func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

// Authorization returns the Authorization header value, or "" without a session
func (m *Manager) Authorization() string {
	if token := m.AccessToken(); token != "" {
		return "Bearer " + token
	}
	return ""
}

// Authenticated reports whether an access token is stored and applied
func (m *Manager) Authenticated() bool {
	return m.AccessToken() != ""
}

// State returns the current authentication state
func (m *Manager) State() State {
	if m.Authenticated() {
		return StateAuthenticated
	}
	return StateUnauthenticated
}

// apply replaces the in-memory token and starts a new session generation
func (m *Manager) apply(access string) {
	m.mu.Lock()
	m.access = access
	m.generation++
	m.mu.Unlock()
}

func (m *Manager) currentGeneration() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

// InitSession restores a persisted access token. It reports whether the
// session is authenticated and only touches the in-memory token.
func (m *Manager) InitSession(ctx context.Context) (bool, error) {
	access, _, err := m.store.LoadTokens()
	if err != nil {
		m.apply("")
		return false, fmt.Errorf("failed to load session: %w", err)
	}

	m.apply(access)

	if access == "" {
		m.logger.DebugContext(ctx, "no stored session")
		return false, nil
	}

	m.logger.DebugContext(ctx, "session restored")
	return true, nil
}

// Login authenticates with username and password and establishes the session
func (m *Manager) Login(ctx context.Context, username, password string) error {
	pair, err := m.remote.Login(ctx, username, password)
	if err != nil {
		m.logger.DebugContext(ctx, "login failed", slog.String("username", username), slog.Any("error", err))
		return err
	}

	if err := m.establish(pair); err != nil {
		return err
	}

	m.logger.InfoContext(ctx, "login succeeded", slog.String("username", username))
	return nil
}

// Register creates an account. When the server returns tokens the session is
// established exactly as for Login, and signedIn is true. Absent tokens are not
// an error; the caller is expected to log in separately.
func (m *Manager) Register(ctx context.Context, username, email, password string) (signedIn bool, err error) {
	pair, err := m.remote.Register(ctx, username, email, password)
	if err != nil {
		m.logger.DebugContext(ctx, "registration failed", slog.String("username", username), slog.Any("error", err))
		return false, err
	}

	if pair.Access == "" {
		m.logger.InfoContext(ctx, "registration succeeded without session", slog.String("username", username))
		return false, nil
	}

	if err := m.establish(pair); err != nil {
		return false, err
	}

	m.logger.InfoContext(ctx, "registration succeeded", slog.String("username", username))
	return true, nil
}

// establish persists a fresh pair and applies the access token
func (m *Manager) establish(pair auth.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.SaveTokens(pair.Access, pair.Refresh); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	m.access = pair.Access
	m.generation++
	return nil
}

// Refresh obtains a new access token with the stored refresh token.
//
// Without a refresh token it fails with auth.ErrNoRefreshToken; any other
// failure is an auth.ErrRefreshFailed. In both cases the session is torn down
// before returning, unless the call was cancelled or the session was replaced
// while the refresh ran. Concurrent calls share one in-flight refresh, which is not
// bound to any single caller's cancellation: a caller whose ctx ends stops
// waiting and gets ctx.Err(), the refresh carries on for the others.
func (m *Manager) Refresh(ctx context.Context) error {
	ch := m.refreshes.DoChan(refreshKey, func() (interface{}, error) {
		return nil, m.refresh(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Shared {
			m.logger.DebugContext(ctx, "joined in-flight refresh")
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Manager) refresh(ctx context.Context) error {
	gen := m.currentGeneration()

	_, refresh, err := m.store.LoadTokens()
	if err != nil {
		return m.failRefresh(ctx, gen, &auth.Error{
			Kind:    auth.KindRefreshFailed,
			Message: auth.ErrRefreshFailed.Message,
			Err:     err,
		})
	}

	if refresh == "" {
		return m.failRefresh(ctx, gen, &auth.Error{
			Kind:    auth.KindNoRefreshToken,
			Message: auth.ErrNoRefreshToken.Message,
		})
	}

	pair, err := m.remote.Refresh(ctx, refresh)
	if err != nil {
		var authErr *auth.Error
		if !errors.As(err, &authErr) || authErr.Kind != auth.KindRefreshFailed {
			err = &auth.Error{Kind: auth.KindRefreshFailed, Message: auth.ErrRefreshFailed.Message, Err: err}
		}
		// A cancelled call says nothing about the refresh token, keep the session
		if errors.Is(err, context.Canceled) {
			m.logger.DebugContext(ctx, "refresh cancelled, keeping session", slog.Any("error", err))
			return err
		}
		return m.failRefresh(ctx, gen, err)
	}

	return m.commitRefresh(ctx, gen, refresh, pair)
}

// commitRefresh persists and applies a refreshed token, unless the session it
// was obtained for has been cleared or replaced in the meantime
func (m *Manager) commitRefresh(ctx context.Context, gen uint64, refresh string, pair auth.TokenPair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		m.logger.DebugContext(ctx, "session changed during refresh, discarding token")
		return &auth.Error{Kind: auth.KindRefreshFailed, Message: auth.ErrRefreshFailed.Message, Err: errSessionChanged}
	}

	rotated := pair.Refresh != "" && pair.Refresh != refresh

	var err error
	if rotated {
		err = m.store.SaveTokens(pair.Access, pair.Refresh)
	} else {
		err = m.store.SaveAccessToken(pair.Access)
	}
	if err != nil {
		err = &auth.Error{Kind: auth.KindRefreshFailed, Message: auth.ErrRefreshFailed.Message, Err: err}
		m.logger.WarnContext(ctx, "refresh failed, clearing session", slog.Any("error", err))
		if clearErr := m.clearLocked(ctx); clearErr != nil {
			return errors.Join(err, clearErr)
		}
		return err
	}

	m.access = pair.Access
	m.logger.InfoContext(ctx, "token refreshed", slog.Bool("rotated", rotated))
	return nil
}

// failRefresh tears the session down and returns the refresh error. A session
// that was replaced while the refresh ran is left alone.
func (m *Manager) failRefresh(ctx context.Context, gen uint64, err error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		m.logger.DebugContext(ctx, "refresh failed for a previous session", slog.Any("error", err))
		return err
	}

	m.logger.WarnContext(ctx, "refresh failed, clearing session", slog.Any("error", err))
	if clearErr := m.clearLocked(ctx); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	return err
}

// Logout clears both tokens and stops authorizing requests.
// Logging out without a session is a no-op.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearLocked(ctx)
}

// clearLocked ends the current session. m.mu must be held.
func (m *Manager) clearLocked(ctx context.Context) error {
	m.access = ""
	m.generation++

	if err := m.store.ClearTokens(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	m.logger.DebugContext(ctx, "session cleared")
	return nil
}
