package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shiftkerja/shiftclient/core/session"
)

// maxErrorBody bounds how much of a rejection body is kept for diagnostics.
const maxErrorBody = 4 << 10

// Config holds login endpoint settings.
type Config struct {
	URL     string        `env:"LOGIN_URL" envDefault:"http://localhost:8080/login"`
	Timeout time.Duration `env:"LOGIN_TIMEOUT" envDefault:"10s"`
}

// Client posts credentials to the backend login endpoint.
// It implements session.Authenticator.
type Client struct {
	url  string
	http *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New creates a login client for cfg.URL.
func New(cfg Config, opts ...Option) *Client {
	c := &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type loginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Authenticate sends creds as JSON and returns the session from a 2xx
// response body of the form {"token": "...", "role": "..."}.
func (c *Client) Authenticate(ctx context.Context, creds session.Credentials) (session.Session, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return session.Session{}, errors.Join(ErrRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return session.Session{}, errors.Join(ErrRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return session.Session{}, errors.Join(ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return session.Session{}, &StatusError{
			Code:    resp.StatusCode,
			Message: strings.TrimSpace(string(msg)),
		}
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return session.Session{}, errors.Join(ErrMalformedResponse, err)
	}
	if out.Token == "" || out.Role == "" {
		return session.Session{}, ErrMalformedResponse
	}

	return session.Session{Token: out.Token, Role: session.Role(out.Role)}, nil
}
