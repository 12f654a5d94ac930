// Package http executes single HTTP round trips against the control plane and
// the identity service. It holds no credentials and makes no decision based on
// the response status; callers interpret status codes themselves.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
)

// Logger is the logging surface used by the transport.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Request describes one HTTP call.
type Request struct {
	Method string
	URL    string
	// BasicAuth is a complete Authorization header value such as "Basic Y2Y6".
	BasicAuth string
	// Token is a complete Authorization header value such as "bearer abc".
	// It takes precedence over BasicAuth.
	Token       string
	Body        []byte
	ContentType string
}

// Response is the raw outcome of a round trip.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// Reason returns the reason phrase of the status line.
func (r *Response) Reason() string {
	reason := strings.TrimSpace(strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)))
	if reason == "" {
		return http.StatusText(r.StatusCode)
	}

	return reason
}

// Client is a stateless transport safe for concurrent use.
type Client struct {
	retryClient *retryablehttp.Client
	logger      Logger
	userAgent   string
	debug       bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTimeout bounds each round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.retryClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithHTTPClient uses a copy of httpClient for round trips. The configured
// timeout is kept unless the given client sets its own; httpClient itself is
// never modified.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		clone := *httpClient
		if clone.Timeout == 0 {
			clone.Timeout = c.retryClient.HTTPClient.Timeout
		}

		c.retryClient.HTTPClient = &clone
	}
}

// WithRetryConfig enables retries of GET requests on connection errors, 429
// and 5xx responses. Other methods are never retried.
func WithRetryConfig(maxRetries int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryClient.RetryMax = maxRetries
		c.retryClient.RetryWaitMin = waitMin
		c.retryClient.RetryWaitMax = waitMax
	}
}

// NewClient creates a transport.
func NewClient(opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.RetryWaitMin = constants.DefaultRetryWaitMin
	retryClient.RetryWaitMax = constants.DefaultRetryWaitMax
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = readOnlyRetryPolicy
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		retryClient: retryClient,
		userAgent:   "capi-admin/1.0",
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.logger != nil {
		retryClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

type retryableKey struct{}

// readOnlyRetryPolicy retries only requests marked retryable in their
// context, so that PUT and DELETE are never submitted twice.
func readOnlyRetryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if retryable, _ := ctx.Value(retryableKey{}).(bool); !retryable {
		return false, nil
	}

	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// Do executes the request. Network errors are returned as they are; any HTTP
// status, including 4xx and 5xx, is returned as a Response.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	ctx = context.WithValue(ctx, retryableKey{}, req.Method == http.MethodGet)

	var body interface{}
	if len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if len(req.Body) > 0 {
		contentType := req.ContentType
		if contentType == "" {
			contentType = "application/json"
		}

		httpReq.Header.Set("Content-Type", contentType)
	}

	switch {
	case req.Token != "":
		httpReq.Header.Set("Authorization", req.Token)
	case req.BasicAuth != "":
		httpReq.Header.Set("Authorization", req.BasicAuth)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    req.URL,
		})
	}

	start := time.Now()

	resp, err := c.retryClient.Do(httpReq)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}

		return nil, err
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method":   req.Method,
			"url":      req.URL,
			"status":   resp.StatusCode,
			"duration": time.Since(start).String(),
		})
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// leveledLogger adapts Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}

		// retryablehttp logs the *http.Request; the URL is enough and never
		// carries credentials.
		if r, isReq := keysAndValues[i+1].(*http.Request); isReq {
			fields[key] = r.URL.String()

			continue
		}

		fields[key] = keysAndValues[i+1]
	}

	return fields
}
