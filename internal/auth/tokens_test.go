package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeTokenPair(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    TokenPair
		wantErr bool
	}{
		{
			name: "short names",
			body: `{"access":"A1","refresh":"R1"}`,
			want: TokenPair{Access: "A1", Refresh: "R1"},
		},
		{
			name: "long names",
			body: `{"access_token":"A1","refresh_token":"R1","token_type":"Bearer"}`,
			want: TokenPair{Access: "A1", Refresh: "R1"},
		},
		{
			name: "mixed names",
			body: `{"access":"A1","refresh_token":"R1"}`,
			want: TokenPair{Access: "A1", Refresh: "R1"},
		},
		{
			name: "both names agree",
			body: `{"access":"A1","access_token":"A1"}`,
			want: TokenPair{Access: "A1"},
		},
		{
			name: "registration without tokens",
			body: `{"detail":"registered"}`,
		},
		{
			name: "null tokens",
			body: `{"access":null,"refresh":null}`,
		},
		{
			name: "empty body",
			body: ``,
		},
		{
			name:    "both names disagree",
			body:    `{"access":"A1","access_token":"A2"}`,
			wantErr: true,
		},
		{
			name:    "token is not a string",
			body:    `{"access":42}`,
			wantErr: true,
		},
		{
			name:    "array body",
			body:    `["A1","R1"]`,
			wantErr: true,
		},
		{
			name:    "null body",
			body:    `null`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTokenPair([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDecode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestError_Is(t *testing.T) {
	err := newError(KindValidationFailed, "already exists", nil)

	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "already exists", err.Error())
	assert.Equal(t, "validation_failed", err.Kind.String())
}
