// Package api wraps net/http into the single configured client the stores
// share: it injects the API key header on every request, turns non-2xx
// answers into typed errors, and runs the session-expiry side effects on 401.
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tally/internal/log"
	"tally/internal/notify"
)

// Session supplies and clears the current API key.
type Session interface {
	Key() string
	ClearKey() error
}

// Notifier queues user-facing messages.
type Notifier interface {
	Push(msg string, level notify.Level)
}

// Config holds client construction parameters.
type Config struct {
	// BaseURL is prefixed to every request path, e.g. "/api/v1" or
	// "https://host/api/v1".
	BaseURL string
	// Timeout bounds every request, transport and body read included.
	Timeout time.Duration
}

// DefaultTimeout is the request timeout used when Config leaves it zero.
const DefaultTimeout = 10 * time.Second

// Client is the shared HTTP client for the budgeting API. Construct it once
// and pass it to every store; it is safe for concurrent use.
type Client struct {
	http     *http.Client
	baseURL  string
	session  Session
	notifier Notifier
	navigate func()
	logger   *log.Logger
}

// New builds a Client. navigate is invoked after a 401 clears the session
// (typically routing the UI to the login view); it may be nil.
func New(cfg Config, session Session, notifier Notifier, navigate func(), logger *log.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http:     &http.Client{Timeout: timeout},
		baseURL:  cfg.BaseURL,
		session:  session,
		notifier: notifier,
		navigate: navigate,
		logger:   logger.WithComponent(log.ComponentAPI),
	}
}

// Do issues one request and returns the raw response body. Errors are
// returned to the caller after the notification and session side effects
// have run.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader) ([]byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", newRequestID())
	if key := c.session.Key(); key != "" {
		req.Header.Set("X-API-Key", key)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			log.FieldMethod, method,
			log.FieldPath, path,
			log.FieldError, err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	c.logger.Debug("request completed",
		log.FieldMethod, method,
		log.FieldPath, path,
		log.FieldStatusCode, resp.StatusCode,
		log.FieldDuration, time.Since(start).Milliseconds())

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, c.handleUnauthorized(method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := serverMessage(data)
		if msg == "" {
			msg = fmt.Sprintf("Request failed (%s)", http.StatusText(resp.StatusCode))
		}
		if c.notifier != nil {
			c.notifier.Push(msg, notify.LevelError)
		}
		return nil, &Error{Status: resp.StatusCode, Message: msg}
	}
	return data, nil
}

// handleUnauthorized runs the central 401 policy: drop the session, tell the
// user, send them to login. The error still propagates to the caller.
func (c *Client) handleUnauthorized(method, path string) error {
	if err := c.session.ClearKey(); err != nil {
		c.logger.Error("clear session", log.FieldError, err)
	}
	if c.notifier != nil {
		c.notifier.Push("Session expired", notify.LevelError)
	}
	if c.navigate != nil {
		c.navigate()
	}
	c.logger.Warn("session expired", log.FieldMethod, method, log.FieldPath, path)
	return &Error{Status: http.StatusUnauthorized, Message: "Session expired"}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	return c.Do(ctx, http.MethodGet, path, query, nil)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	rd, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, path, nil, rd)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) ([]byte, error) {
	rd, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPut, path, nil, rd)
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) ([]byte, error) {
	rd, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPatch, path, nil, rd)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) ([]byte, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

func encodeBody(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	return &buf, nil
}

// newRequestID generates a random id for request correlation.
func newRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
