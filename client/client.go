// Package client is the Go SDK for the ClasSmart API. It mirrors the calls
// the browser clients make: fixed path templates, the Token authorization
// scheme, and no retries or caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// APIError is the error envelope the API returns.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Client talks to one ClasSmart deployment on behalf of one session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    Session
}

// Options tunes the client. Zero values fall back to sane defaults.
type Options struct {
	HTTPClient *http.Client
	Session    Session
}

// New builds a client for the given base URL.
func New(baseURL string, opts Options) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	sess := opts.Session
	if sess == nil {
		sess = NewMemorySession()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		session:    sess,
	}, nil
}

// Session returns the session store backing this client.
func (c *Client) Session() Session {
	return c.session
}

// withAuth attaches the stored token. Public storefront reads, the favorites
// endpoints, and the pre-auth calls go without it, matching the storefront.
const (
	withAuth = true
	noAuth   = false
)

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, authed bool) error {
	var token string
	if authed {
		token = c.session.Token()
	}
	return c.doWithToken(ctx, method, path, query, body, out, token)
}

// doWithToken issues a request with an explicit Authorization token; the email
// verification flow uses it for the one-shot token from the mail link.
func (c *Client) doWithToken(ctx context.Context, method, path string, query url.Values, body any, out any, token string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	var envelope struct {
		Data  json.RawMessage `json:"data"`
		Error *APIError       `json:"error"`
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return fmt.Errorf("%s %s: unexpected response (status %d)", method, path, resp.StatusCode)
		}
	}

	if resp.StatusCode >= 400 {
		if envelope.Error != nil {
			envelope.Error.Status = resp.StatusCode
			return envelope.Error
		}
		return &APIError{Code: "HTTP_ERROR", Message: http.StatusText(resp.StatusCode), Status: resp.StatusCode}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decoding response data: %w", err)
		}
	}
	return nil
}
