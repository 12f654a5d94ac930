package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/tidwall/gjson"

	capihttp "github.com/fivetwenty-io/capi-admin/internal/http"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// Doer executes a single HTTP round trip.
type Doer interface {
	Do(ctx context.Context, req *capihttp.Request) (*capihttp.Response, error)
}

// TokenManager supplies the bearer credential.
type TokenManager interface {
	Discover(ctx context.Context) (capi.Endpoints, error)
	Token(ctx context.Context) (capi.Credential, error)
	Relogin(ctx context.Context, stale capi.Credential) (capi.Credential, error)
}

// Metrics receives client events. Implementations must be safe for concurrent use.
type Metrics interface {
	ObserveAuthRetry()
	ObservePage(style string)
}

// Client implements capi.ResourceClient.
type Client struct {
	doer    Doer
	tokens  TokenManager
	baseURL string
	logger  capi.Logger
	metrics Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger capi.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(metrics Metrics) Option {
	return func(c *Client) {
		c.metrics = metrics
	}
}

// New creates a resource client for the control plane at baseURL.
func New(doer Doer, tokens TokenManager, baseURL string, opts ...Option) *Client {
	client := &Client{
		doer:    doer,
		tokens:  tokens,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// URL builds the control-plane URL for path.
func (c *Client) URL(path string) string {
	return joinURL(c.baseURL, path)
}

// List implements capi.ResourceClient.List.
func (c *Client) List(ctx context.Context, path string) ([]json.RawMessage, error) {
	return c.drain(ctx, c.baseURL, path)
}

// ListIdentity implements capi.ResourceClient.ListIdentity.
func (c *Client) ListIdentity(ctx context.Context, path string) ([]json.RawMessage, error) {
	endpoints, err := c.tokens.Discover(ctx)
	if err != nil {
		return nil, err
	}

	return c.drain(ctx, endpoints.TokenEndpoint, path)
}

// Put implements capi.ResourceClient.Put.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	var payload []byte

	switch b := body.(type) {
	case nil:
	case json.RawMessage:
		payload = b
	case []byte:
		payload = b
	default:
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		payload = encoded
	}

	resp, err := c.authenticatedCall(ctx, http.MethodPut, c.URL(path), payload, http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	return json.RawMessage(resp.Body), nil
}

// Delete implements capi.ResourceClient.Delete.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.authenticatedCall(ctx, http.MethodDelete, c.URL(path), nil, http.StatusOK, http.StatusNoContent)

	return err
}

// authenticatedCall executes a request with the current credential. A 401 is
// answered with exactly one re-login and one retry; anything outside expected
// after that is a *capi.ProtocolError.
func (c *Client) authenticatedCall(ctx context.Context, method, url string, body []byte, expected ...int) (*capihttp.Response, error) {
	credential, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	req := &capihttp.Request{
		Method: method,
		URL:    url,
		Token:  credential.Header(),
		Body:   body,
	}

	resp, err := c.doer.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.warn("Credential rejected, retrying once", map[string]interface{}{"method": method, "url": url})

		if c.metrics != nil {
			c.metrics.ObserveAuthRetry()
		}

		credential, err = c.tokens.Relogin(ctx, credential)
		if err != nil {
			return nil, err
		}

		req.Token = credential.Header()

		resp, err = c.doer.Do(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, url, err)
		}
	}

	if !slices.Contains(expected, resp.StatusCode) {
		return nil, &capi.ProtocolError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Message:    responseMessage(resp),
		}
	}

	return resp, nil
}

// responseMessage prefers the server's own description over the reason phrase.
func responseMessage(resp *capihttp.Response) string {
	if gjson.ValidBytes(resp.Body) {
		for _, field := range []string{"description", "error_description", "message"} {
			if msg := gjson.GetBytes(resp.Body, field).String(); msg != "" {
				return msg
			}
		}
	}

	return resp.Reason()
}

// joinURL appends path to base. A rooted path is appended as is; any other
// path gets a separating slash. Absolute URLs are returned unchanged.
func joinURL(base, path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}

	if strings.HasPrefix(path, "/") {
		return base + path
	}

	return base + "/" + path
}

func (c *Client) debug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, fields)
	}
}

func (c *Client) warn(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, fields)
	}
}
