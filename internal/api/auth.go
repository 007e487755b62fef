package api

import (
	"context"
	"net/http"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// AuthResponse is the shape of both login and register responses.
type AuthResponse struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// Login authenticates with email and password. The returned credentials are
// not installed on the client; the caller decides the session lifecycle.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	body := map[string]string{"email": email, "password": password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &Credentials{Token: resp.Token, User: resp.User}, nil
}

// Register creates a new user and returns a fresh session.
func (c *Client) Register(ctx context.Context, name, email, password string) (*Credentials, error) {
	body := map[string]string{"name": name, "email": email, "password": password}

	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &Credentials{Token: resp.Token, User: resp.User}, nil
}

// Me returns the user the current bearer token belongs to.
func (c *Client) Me(ctx context.Context) (model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
