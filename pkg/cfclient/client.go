// Package cfclient provides the main entry point for creating the admin client
package cfclient

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/fivetwenty-io/capi-admin/internal/auth"
	"github.com/fivetwenty-io/capi-admin/internal/client"
	"github.com/fivetwenty-io/capi-admin/internal/constants"
	capihttp "github.com/fivetwenty-io/capi-admin/internal/http"
	"github.com/fivetwenty-io/capi-admin/internal/operation"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// Metrics receives events from every layer of the client.
type Metrics interface {
	auth.Metrics
	client.Metrics
	operation.Metrics
}

// Client is a ResourceClient and an Operations controller sharing one
// transport and one credential.
type Client struct {
	*client.Client
	*operation.Controller

	tokens *auth.PasswordTokenManager
}

var (
	_ capi.ResourceClient = (*Client)(nil)
	_ capi.Operations     = (*Client)(nil)
)

// Option configures New.
type Option func(*options)

type options struct {
	metrics Metrics
}

// WithMetrics sets the metrics sink for every layer.
func WithMetrics(metrics Metrics) Option {
	return func(o *options) {
		o.metrics = metrics
	}
}

// New creates an admin client. Nothing is fetched until the first call;
// discovery and login happen on demand.
func New(_ context.Context, config *capi.Config, status capi.StatusSource, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, capi.ErrConfigRequired
	}

	if config.APIEndpoint == "" {
		return nil, capi.ErrAPIEndpointRequired
	}

	if config.Username == "" || config.Password == "" {
		return nil, capi.ErrCredentialsRequired
	}

	if status == nil {
		return nil, capi.ErrStatusSourceRequired
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	apiEndpoint := NormalizeEndpoint(config.APIEndpoint)

	transport, err := newTransport(config)
	if err != nil {
		return nil, err
	}

	authOpts := []auth.Option{auth.WithLogger(config.Logger)}
	clientOpts := []client.Option{client.WithLogger(config.Logger)}
	operationOpts := []operation.Option{
		operation.WithLogger(config.Logger),
		operation.WithInterval(config.PollInterval),
		operation.WithMaxAttempts(config.PollAttempts),
	}

	if o.metrics != nil {
		authOpts = append(authOpts, auth.WithMetrics(o.metrics))
		clientOpts = append(clientOpts, client.WithMetrics(o.metrics))
		operationOpts = append(operationOpts, operation.WithMetrics(o.metrics))
	}

	tokens := auth.NewPasswordTokenManager(transport, auth.Config{
		APIEndpoint: apiEndpoint,
		Username:    config.Username,
		Password:    config.Password,
		ClientID:    config.ClientID,
	}, authOpts...)

	resources := client.New(transport, tokens, apiEndpoint, clientOpts...)

	return &Client{
		Client:     resources,
		Controller: operation.New(resources, status, operationOpts...),
		tokens:     tokens,
	}, nil
}

// Endpoints returns the identity-service locations, discovering them on
// first use.
func (c *Client) Endpoints(ctx context.Context) (capi.Endpoints, error) {
	return c.tokens.Discover(ctx)
}

// Login obtains a fresh credential. It is only needed to check credentials
// eagerly; every call logs in on demand.
func (c *Client) Login(ctx context.Context) error {
	_, err := c.tokens.Login(ctx)

	return err
}

// NormalizeEndpoint trims a trailing slash and adds https:// when no scheme
// is present.
func NormalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

func newTransport(config *capi.Config) (*capihttp.Client, error) {
	opts := []capihttp.Option{
		capihttp.WithTimeout(config.HTTPTimeout),
		capihttp.WithDebug(config.Debug),
	}

	if config.Logger != nil {
		opts = append(opts, capihttp.WithLogger(config.Logger))
	}

	if config.UserAgent != "" {
		opts = append(opts, capihttp.WithUserAgent(config.UserAgent))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin == 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax == 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, capihttp.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	if config.SkipTLSVerify {
		// Only allow insecure TLS in explicit development environments
		if !isDevelopmentEnvironment() {
			return nil, fmt.Errorf("%w (set %s=true)", capi.ErrSkipTLSOnlyInDev, constants.DevModeEnv)
		}

		opts = append(opts, capihttp.WithHTTPClient(&http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- Protected by development environment check above
			},
		}))
	}

	return capihttp.NewClient(opts...), nil
}

// isDevelopmentEnvironment checks if we're in a development environment.
func isDevelopmentEnvironment() bool {
	devMode := os.Getenv(constants.DevModeEnv)

	return devMode == "true" || devMode == "1"
}
