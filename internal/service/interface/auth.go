// Package iface defines service interfaces for the SmartChef CLI.
// These interfaces enable dependency injection and mocking for tests.
package iface

import (
	"context"
	"time"
)

// RegisterInput represents the input for creating an account
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterResult describes the outcome of a registration
type RegisterResult struct {
	// SignedIn is true when the server returned tokens and the session is active
	SignedIn bool
}

// Profile represents the authenticated user
type Profile struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// SessionStatus describes the local session
type SessionStatus struct {
	Authenticated bool       `json:"authenticated"`
	State         string     `json:"state"`
	UserID        string     `json:"user_id,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	Expired       bool       `json:"expired"`
	Profile       *Profile   `json:"profile,omitempty"`
	ProfileError  string     `json:"profile_error,omitempty"`
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Login authenticates with username and password and saves the session
	Login(ctx context.Context, username, password string) error

	// Register creates an account, signing in when the server returns tokens
	Register(ctx context.Context, input *RegisterInput) (*RegisterResult, error)

	// Logout clears the stored session
	Logout(ctx context.Context) error

	// IsLoggedIn checks if a session is active
	IsLoggedIn() bool

	// Status describes the session, including the profile when reachable
	Status(ctx context.Context) (*SessionStatus, error)
}
