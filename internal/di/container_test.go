package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartchef/smartchef-cli/internal/config"
	"github.com/smartchef/smartchef-cli/internal/logging"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	router := mux.NewRouter()
	router.HandleFunc("/api/accounts/login/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"access_token": "A1", "refresh_token": "R1"})
	}).Methods(http.MethodPost)
	router.HandleFunc("/api/recipes/favorites/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer A1" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Given token not valid"})
			return
		}
		w.Write([]byte(`[]`))
	}).Methods(http.MethodGet)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func TestNewContainerWithStore(t *testing.T) {
	srv := newBackend(t)
	settings := &config.Settings{APIURL: srv.URL, Timeout: 5 * time.Second, LogLevel: "error"}
	ctx := context.Background()

	t.Run("login then reuse the stored session", func(t *testing.T) {
		store := config.NewManagerWithPath(filepath.Join(t.TempDir(), config.CredentialsFileName))

		c := NewContainerWithStore(ctx, settings, store, logging.Discard())
		assert.False(t, c.AuthService().IsLoggedIn())

		require.NoError(t, c.AuthService().Login(ctx, "alice", "secret"))

		// A second process picks the session up from the store
		next := NewContainerWithStore(ctx, settings, store, logging.Discard())
		assert.True(t, next.AuthService().IsLoggedIn())

		favorites, err := next.RecipeService().ListFavorites(ctx)
		require.NoError(t, err)
		assert.Empty(t, favorites)

		require.NoError(t, next.AuthService().Logout(ctx))
		assert.False(t, NewContainerWithStore(ctx, settings, store, logging.Discard()).AuthService().IsLoggedIn())
	})

	t.Run("unreadable store starts unauthenticated", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), config.CredentialsFileName)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

		c := NewContainerWithStore(ctx, settings, config.NewManagerWithPath(path), logging.Discard())
		assert.False(t, c.AuthService().IsLoggedIn())

		require.NoError(t, c.AuthService().Login(ctx, "alice", "secret"))
		assert.True(t, c.AuthService().IsLoggedIn())
	})
}
