package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/smartchef-cli/internal/config"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(5 * time.Minute).Truncate(time.Second)

	tests := []struct {
		name    string
		token   string
		want    *Claims
		wantErr bool
	}{
		{
			name:  "numeric user id",
			token: signedToken(t, jwt.MapClaims{"user_id": 42, "exp": exp.Unix(), "token_type": "access"}),
			want:  &Claims{UserID: "42", ExpiresAt: exp},
		},
		{
			name:  "string subject",
			token: signedToken(t, jwt.MapClaims{"sub": "alice", "user_id": "u-1"}),
			want:  &Claims{Subject: "alice", UserID: "u-1"},
		},
		{
			name:    "opaque token",
			token:   "A1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClaims(tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.Subject, got.Subject)
			assert.Equal(t, tt.want.UserID, got.UserID)
			assert.True(t, tt.want.ExpiresAt.Equal(got.ExpiresAt), "expires at %s, want %s", got.ExpiresAt, tt.want.ExpiresAt)
		})
	}
}

func TestClaims_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Claims{}).Expired(now))
	assert.False(t, (&Claims{ExpiresAt: now.Add(time.Minute)}).Expired(now))
	assert.True(t, (&Claims{ExpiresAt: now}).Expired(now))
}

func TestManager_Claims(t *testing.T) {
	store := config.NewManagerWithPath(filepath.Join(t.TempDir(), config.CredentialsFileName))
	m := NewManager(store, &MockAuthenticator{}, nil)

	_, err := m.Claims()
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.SaveTokens(signedToken(t, jwt.MapClaims{"user_id": 7}), "R1"))
	_, err = m.InitSession(context.Background())
	require.NoError(t, err)

	c, err := m.Claims()
	require.NoError(t, err)
	assert.Equal(t, "7", c.UserID)
}
