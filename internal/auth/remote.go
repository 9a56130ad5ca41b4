// Package auth provides the client side of the SmartChef authentication endpoints.
// It turns login, registration, and refresh responses into token pairs and
// typed errors with user-displayable messages.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/smartchef/smartchef-cli/internal/api"
)

// Endpoint paths of the remote auth service
const (
	LoginPath    = "/api/accounts/login/"
	RegisterPath = "/api/accounts/register/"
	RefreshPath  = "/api/accounts/token/refresh/"
)

const (
	loginFailedMessage    = "login failed"
	registerFailedMessage = "registration failed"
)

// registerFields are checked in order for a field-level validation message
var registerFields = []string{"username", "email", "password"}

// Poster sends unauthenticated JSON requests. *api.Client implements it.
type Poster interface {
	PostPublic(ctx context.Context, path string, body interface{}, result interface{}) error
}

// Remote calls the auth endpoints of the SmartChef backend
type Remote struct {
	client Poster
}

// NewRemote creates a remote auth service on top of an API client
func NewRemote(client Poster) *Remote {
	return &Remote{client: client}
}

// LoginRequest is the body of the login endpoint
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest is the body of the register endpoint
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the body of the refresh endpoint
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

// Login exchanges credentials for a token pair.
// The response must carry an access token.
func (r *Remote) Login(ctx context.Context, username, password string) (TokenPair, error) {
	var raw json.RawMessage
	err := r.client.PostPublic(ctx, LoginPath, &LoginRequest{Username: username, Password: password}, &raw)
	if err != nil {
		return TokenPair{}, loginError(err)
	}

	pair, err := DecodeTokenPair(raw)
	if err != nil {
		return TokenPair{}, err
	}

	if pair.Access == "" {
		return TokenPair{}, newError(KindDecode, "no access token in login response", nil)
	}

	return pair, nil
}

// Register creates an account. The backend may or may not sign the user in,
// so an empty pair is a valid result.
func (r *Remote) Register(ctx context.Context, username, email, password string) (TokenPair, error) {
	var raw json.RawMessage
	err := r.client.PostPublic(ctx, RegisterPath, &RegisterRequest{Username: username, Email: email, Password: password}, &raw)
	if err != nil {
		return TokenPair{}, registerError(err)
	}

	return DecodeTokenPair(raw)
}

// Refresh exchanges a refresh token for a new access token.
// Refresh in the returned pair is set only when the server rotated it.
func (r *Remote) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	var raw json.RawMessage
	if err := r.client.PostPublic(ctx, RefreshPath, &RefreshRequest{Refresh: refreshToken}, &raw); err != nil {
		return TokenPair{}, newError(KindRefreshFailed, refreshMessage(err), err)
	}

	pair, err := DecodeTokenPair(raw)
	if err != nil {
		return TokenPair{}, newError(KindRefreshFailed, err.Error(), err)
	}

	if pair.Access == "" {
		return TokenPair{}, newError(KindRefreshFailed, "no access token in refresh response", nil)
	}

	return pair, nil
}

func loginError(err error) error {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return newError(KindNetwork, loginFailedMessage, err)
	}

	msg := loginFailedMessage
	if apiErr.Detail != "" {
		msg = apiErr.Detail
	}

	switch apiErr.StatusCode {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return newError(KindInvalidCredentials, msg, err)
	default:
		return newError(KindNetwork, msg, err)
	}
}

func registerError(err error) error {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return newError(KindNetwork, registerFailedMessage, err)
	}

	msg := registerFailedMessage
	for _, field := range registerFields {
		if m, ok := apiErr.FieldError(field); ok {
			msg = m
			break
		}
	}
	if msg == registerFailedMessage && apiErr.Detail != "" {
		msg = apiErr.Detail
	}

	if apiErr.StatusCode == http.StatusBadRequest {
		return newError(KindValidationFailed, msg, err)
	}
	return newError(KindNetwork, msg, err)
}

func refreshMessage(err error) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return "token refresh failed: " + apiErr.Detail
	}
	return ErrRefreshFailed.Message
}
