// Package api implements the REST client for the fintrail server. Every
// operation is an independent round trip: no caching, no retries, no
// timeouts. Cancellation happens only through the caller's context.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/fintrail-dev/fintrail/internal/model"
)

// Credentials is the session credential object for one authenticated
// session. It is constructed once at login (or session restore) and passed
// to the client; there is no package-level token.
type Credentials struct {
	Token string
	User  model.User
}

// Client issues authenticated requests against a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *Credentials
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets the request logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithCredentials sets session credentials at construction.
func WithCredentials(creds *Credentials) Option {
	return func(c *Client) { c.creds = creds }
}

// NewClient creates a Client for the given base URL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetCredentials installs credentials for subsequent requests.
func (c *Client) SetCredentials(creds *Credentials) {
	c.creds = creds
}

// ClearCredentials drops the session credentials.
func (c *Client) ClearCredentials() {
	c.creds = nil
}

// Credentials returns the current session credentials, or nil.
func (c *Client) Credentials() *Credentials {
	return c.creds
}

// Error is a server-rejected request: a non-2xx response with the server's
// message (its JSON "error" field, or a status-derived default).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// ColdStartAdvisory is shown when the server does not answer at all. Free
// tiers spin the instance down when idle; the first request after that
// fails while it boots.
const ColdStartAdvisory = "could not reach the server — it may be waking up, try again in about 30 seconds"

// do sends a JSON request and decodes the JSON response into `into` (when
// non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, into any) error {
	var rdr io.Reader
	contentType := ""
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		rdr = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, rdr, contentType, into)
}

// doMultipart sends a multipart form with one file part plus string fields.
// The multipart writer owns the content type; no JSON header is set.
func (c *Client) doMultipart(ctx context.Context, method, path string, fields map[string]string, fileField, fileName string, file io.Reader, into any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		if v == "" {
			continue
		}
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("writing form field %s: %w", k, err)
		}
	}

	fw, err := mw.CreateFormFile(fileField, fileName)
	if err != nil {
		return fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(fw, file); err != nil {
		return fmt.Errorf("copying file %s: %w", fileName, err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("closing multipart form: %w", err)
	}

	return c.send(ctx, method, path, &buf, mw.FormDataContentType(), into)
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string, into any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.creds != nil && c.creds.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.creds.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// Caller-initiated cancellation passes through untouched.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("%s: %w", ColdStartAdvisory, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}

	if into == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, into); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorMessage extracts the server's "error" field, falling back to a
// status-derived default.
func errorMessage(status int, raw []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(status))
}

// pathWithQuery joins a path with encoded query parameters.
func pathWithQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
