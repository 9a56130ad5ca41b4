// Package config provides configuration management for the SmartChef CLI.
// It handles reading and writing the credentials file and loading settings.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the name of the config directory
	ConfigDirName = ".smartchef"

	// CredentialsFileName is the name of the credentials file
	CredentialsFileName = "credentials.json"
)

// Credentials represents the token pair stored on disk.
// The JSON keys double as the persistent store keys of the session.
type Credentials struct {
	// AccessToken is the short-lived token sent as a bearer credential
	AccessToken string `json:"access_token,omitempty"`

	// RefreshToken is the longer-lived token used to obtain a new access token
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Manager handles credentials file operations
type Manager struct {
	path string
}

// DefaultDir returns ~/.smartchef
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ConfigDirName), nil
}

// NewManager creates a new credentials manager under the default directory
func NewManager() (*Manager, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewManagerWithPath(filepath.Join(dir, CredentialsFileName)), nil
}

// NewManagerWithPath creates a new credentials manager with a custom path
// This is useful for testing
func NewManagerWithPath(path string) *Manager {
	return &Manager{path: path}
}

// Load reads the credentials from disk
// Returns empty credentials if the file doesn't exist
func (m *Manager) Load() (*Credentials, error) {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Credentials{}, nil
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save writes the credentials to disk
func (m *Manager) Save(creds *Credentials) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Owner read/write only
	return os.WriteFile(m.path, data, 0600)
}

// LoadTokens returns the stored access and refresh tokens.
// Missing tokens are returned as empty strings.
func (m *Manager) LoadTokens() (access, refresh string, err error) {
	creds, err := m.Load()
	if err != nil {
		return "", "", err
	}
	return creds.AccessToken, creds.RefreshToken, nil
}

// SaveTokens replaces both tokens in a single write.
// An empty refresh token removes the stored one.
func (m *Manager) SaveTokens(access, refresh string) error {
	return m.Save(&Credentials{
		AccessToken:  access,
		RefreshToken: refresh,
	})
}

// SaveAccessToken replaces the access token and keeps the refresh token
func (m *Manager) SaveAccessToken(access string) error {
	creds, err := m.Load()
	if err != nil {
		return err
	}

	creds.AccessToken = access
	return m.Save(creds)
}

// ClearTokens removes both tokens. Clearing an empty store does not touch the disk,
// an unreadable file is overwritten.
func (m *Manager) ClearTokens() error {
	creds, err := m.Load()
	if err == nil && creds.AccessToken == "" && creds.RefreshToken == "" {
		return nil
	}

	return m.Save(&Credentials{})
}
