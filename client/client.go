// Package client is the shared HTTP client for the portal backend. It owns
// the two cross-cutting policies every request shares: the bearer token is
// read fresh per request from a provider, and a 401 answer fires a single
// global unauthorized hook before the error returns to the call site.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"civicportal/utils"
)

// TokenProvider returns the current bearer token, or "" when anonymous.
// It is consulted on every request so a token refreshed mid-session is
// picked up immediately.
type TokenProvider func() string

// Client talks to the portal backend. Construct with New; the zero value
// is not usable.
type Client struct {
	baseURL       string
	httpClient    *http.Client
	tokenProvider TokenProvider
	limiter       *rate.Limiter

	// onUnauthorized runs once per 401 response, regardless of which
	// component issued the request.
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithUnauthorizedHook installs the global 401 handler.
func WithUnauthorizedHook(hook func()) Option {
	return func(c *Client) { c.onUnauthorized = hook }
}

// WithRateLimit throttles outbound requests to n per minute.
func WithRateLimit(perMinute int) Option {
	return func(c *Client) {
		if perMinute > 0 {
			c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
		}
	}
}

// New builds a client against baseURL. tokens supplies the bearer token per
// request and must not be nil.
func New(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 15 * time.Second},
		tokenProvider: tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: %v", ErrTransport, err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.tokenProvider(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		utils.GetLogger().Warn("Request rejected as unauthenticated",
			zap.String("method", method), zap.String("path", path))
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	return decodeBody(raw, out)
}

// decodeBody accepts both response shapes the backend produces: a bare
// payload, or the payload nested under "data" in the success envelope.
func decodeBody(raw []byte, out any) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err == nil {
			return nil
		}
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil {
		return ""
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(raw))
}

// Get issues a GET and decodes the response into out (may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

// Post issues a JSON POST.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("client: encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json", out)
}

// Put issues a JSON PUT.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("client: encode request: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, nil, bytes.NewReader(payload), "application/json", out)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, "", out)
}

// FileAttachment is an optional upload included in a multipart request.
type FileAttachment struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// PostMultipart submits form fields plus an optional file attachment as
// multipart/form-data. Empty field values are omitted, matching the form
// behavior the backend expects.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, file *FileAttachment, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(key, value); err != nil {
			return fmt.Errorf("client: write field %s: %w", key, err)
		}
	}
	if file != nil {
		part, err := w.CreateFormFile(file.Field, file.Filename)
		if err != nil {
			return fmt.Errorf("client: attach file: %w", err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return fmt.Errorf("client: copy file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("client: finalize multipart body: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, nil, &buf, w.FormDataContentType(), out)
}

// Health probes GET /api/health and records the result in the shared
// health snapshot.
func (c *Client) Health(ctx context.Context) error {
	err := c.Get(ctx, "/api/health", nil, nil)
	utils.SetHealthStatus(err == nil)
	return err
}
