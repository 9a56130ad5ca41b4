package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartchef/smartchef-cli/internal/api"
	iface "github.com/smartchef/smartchef-cli/internal/service/interface"
	"github.com/smartchef/smartchef-cli/internal/session"
)

// ProfilePath is the endpoint describing the authenticated user
const ProfilePath = "/api/accounts/me/"

// ErrNotLoggedIn is returned before calling an authenticated endpoint without a session
var ErrNotLoggedIn = errors.New("not logged in. Please run 'smartchef login' first")

// requireSession fails fast when there is no session to authorize the request
func requireSession(s *session.Manager) error {
	if !s.Authenticated() {
		return ErrNotLoggedIn
	}
	return nil
}

// authService implements iface.AuthService
type authService struct {
	session *session.Manager
	client  *api.Client
	now     func() time.Time
}

// NewAuthService creates a new authentication service
func NewAuthService(sess *session.Manager, client *api.Client) iface.AuthService {
	return &authService{
		session: sess,
		client:  client,
		now:     time.Now,
	}
}

// Login authenticates and saves the session
func (s *authService) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	// Check if already logged in
	if s.session.Authenticated() {
		return fmt.Errorf("already logged in. Use 'smartchef logout' first to log out")
	}

	return s.session.Login(ctx, username, password)
}

// Register creates an account
func (s *authService) Register(ctx context.Context, input *iface.RegisterInput) (*iface.RegisterResult, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, errors.New("username, email and password are required")
	}

	signedIn, err := s.session.Register(ctx, input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	return &iface.RegisterResult{SignedIn: signedIn}, nil
}

// Logout clears stored credentials
func (s *authService) Logout(ctx context.Context) error {
	if err := s.session.Logout(ctx); err != nil {
		return fmt.Errorf("failed to clear credentials: %w", err)
	}
	return nil
}

// IsLoggedIn checks if the user is currently authenticated
// Note: This only checks if a token is applied, not if the server accepts it
func (s *authService) IsLoggedIn() bool {
	return s.session.Authenticated()
}

// Status describes the session. The profile is fetched first because the request
// may refresh the token or, when the refresh fails, tear the session down.
func (s *authService) Status(ctx context.Context) (*iface.SessionStatus, error) {
	var profile *iface.Profile
	var profileErr error

	if s.session.Authenticated() {
		var p iface.Profile
		if err := s.client.Get(ctx, ProfilePath, &p); err != nil {
			profileErr = err
		} else {
			profile = &p
		}
	}

	status := &iface.SessionStatus{
		Authenticated: s.session.Authenticated(),
		State:         s.session.State().String(),
	}
	if !status.Authenticated {
		return status, nil
	}

	status.Profile = profile
	if profileErr != nil {
		status.ProfileError = profileErr.Error()
	}

	if claims, err := s.session.Claims(); err == nil {
		status.UserID = claims.UserID
		if !claims.ExpiresAt.IsZero() {
			exp := claims.ExpiresAt
			status.ExpiresAt = &exp
			status.Expired = claims.Expired(s.now())
		}
	}

	return status, nil
}
