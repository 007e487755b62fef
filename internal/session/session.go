// Package session persists the bearer token between runs and restores it on
// startup.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/fintrail-dev/fintrail/internal/api"
)

// FileName is the fixed name of the session file inside the data directory.
const FileName = "session.json"

// State is the on-disk session shape.
type State struct {
	Token   string    `json:"token"`
	Email   string    `json:"email,omitempty"`
	SavedAt time.Time `json:"saved_at"`
}

// Store reads and writes the session file.
type Store struct {
	path string
	log  zerolog.Logger
}

// NewStore creates a Store rooted at dataDir.
func NewStore(dataDir string, log zerolog.Logger) *Store {
	return &Store{path: filepath.Join(dataDir, FileName), log: log}
}

// Save writes the session file with owner-only permissions.
func (s *Store) Save(state State) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Load reads the session file. A missing file returns an empty state and no
// error.
func (s *Store) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("reading session: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parsing session: %w", err)
	}
	return state, nil
}

// Clear removes the session file. Missing files are fine.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}

// Expired reports whether a stored token is a JWT whose exp claim is already
// past. The signature is not verified, only the server can do that; this just
// skips a round trip that is guaranteed to fail. Tokens that do not parse as
// JWTs are treated as possibly valid.
func Expired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

// Restore attempts silent re-authentication with the stored token: install
// it on the client and verify via /auth/me. Any auth failure (or a locally
// expired token) clears the stored state and leaves the client
// unauthenticated.
func (s *Store) Restore(ctx context.Context, client *api.Client) (bool, error) {
	state, err := s.Load()
	if err != nil {
		return false, err
	}
	if state.Token == "" {
		return false, nil
	}

	if Expired(state.Token, time.Now()) {
		s.log.Debug().Msg("stored token expired, clearing session")
		if err := s.Clear(); err != nil {
			return false, err
		}
		return false, nil
	}

	client.SetCredentials(&api.Credentials{Token: state.Token})
	user, err := client.Me(ctx)
	if err != nil {
		client.ClearCredentials()
		if api.IsUnauthorized(err) || api.IsNotFound(err) {
			s.log.Debug().Msg("stored token rejected, clearing session")
			if clearErr := s.Clear(); clearErr != nil {
				return false, clearErr
			}
			return false, nil
		}
		return false, err
	}

	client.SetCredentials(&api.Credentials{Token: state.Token, User: user})
	return true, nil
}
