package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrail-dev/fintrail/internal/api"
	"github.com/fintrail-dev/fintrail/internal/model"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	return NewStore(dir, zerolog.Nop()), dir
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestStore_SaveLoadClear(t *testing.T) {
	store, dir := testStore(t)

	state := State{Token: "tok", Email: "a@b.c", SavedAt: time.Now().UTC()}
	require.NoError(t, store.Save(state))

	info, err := os.Stat(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok", loaded.Token)
	assert.Equal(t, "a@b.c", loaded.Email)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Empty(t, loaded.Token)

	// Clearing twice is fine.
	assert.NoError(t, store.Clear())
}

func TestStore_LoadMissingFile(t *testing.T) {
	store, _ := testStore(t)
	state, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, state.Token)
}

func TestExpired(t *testing.T) {
	now := time.Now()

	assert.True(t, Expired(signedToken(t, now.Add(-time.Hour)), now))
	assert.False(t, Expired(signedToken(t, now.Add(time.Hour)), now))

	// Opaque tokens cannot be checked locally, so they are not expired.
	assert.False(t, Expired("not-a-jwt", now))
}

func TestStore_Restore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/me", r.URL.Path)
		json.NewEncoder(w).Encode(model.User{ID: 1, Name: "Asha", Email: "a@b.c"})
	}))
	defer srv.Close()

	store, _ := testStore(t)
	require.NoError(t, store.Save(State{Token: signedToken(t, time.Now().Add(time.Hour))}))

	client := api.NewClient(srv.URL)
	ok, err := store.Restore(context.Background(), client)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NotNil(t, client.Credentials())
	assert.Equal(t, "Asha", client.Credentials().User.Name)
}

func TestStore_RestoreNoSession(t *testing.T) {
	store, _ := testStore(t)
	client := api.NewClient("http://localhost:0")

	ok, err := store.Restore(context.Background(), client)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RestoreExpiredTokenClearsWithoutRequest(t *testing.T) {
	var requests int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	store, dir := testStore(t)
	require.NoError(t, store.Save(State{Token: signedToken(t, time.Now().Add(-time.Minute))}))

	ok, err := store.Restore(context.Background(), api.NewClient(srv.URL))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, requests)

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_RestoreRejectedTokenClears(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"error": "token revoked"})
	}))
	defer srv.Close()

	store, dir := testStore(t)
	require.NoError(t, store.Save(State{Token: signedToken(t, time.Now().Add(time.Hour))}))

	client := api.NewClient(srv.URL)
	ok, err := store.Restore(context.Background(), client)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, client.Credentials())

	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_RestoreServerErrorKeepsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store, dir := testStore(t)
	require.NoError(t, store.Save(State{Token: signedToken(t, time.Now().Add(time.Hour))}))

	_, err := store.Restore(context.Background(), api.NewClient(srv.URL))
	require.Error(t, err)

	// A transient failure must not destroy the stored token.
	_, statErr := os.Stat(filepath.Join(dir, FileName))
	assert.NoError(t, statErr)
}
