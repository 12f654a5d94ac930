package capi

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -destination=mocks/mock_client.go -package=mocks -source=client.go ResourceClient,Operations,StatusSource

// ResourceClient provides raw, authenticated access to the control plane.
type ResourceClient interface {
	// List drains a paginated control-plane collection.
	List(ctx context.Context, path string) ([]json.RawMessage, error)
	// ListIdentity drains a paginated identity-service collection.
	ListIdentity(ctx context.Context, path string) ([]json.RawMessage, error)
	Put(ctx context.Context, path string, body interface{}) (json.RawMessage, error)
	Delete(ctx context.Context, path string) error
}

// Operations issues lifecycle commands and waits for them to converge.
type Operations interface {
	ManageApplication(ctx context.Context, command Command, org, space, app string) (*Result, error)
	ManageRoute(ctx context.Context, command Command, hostAndDomain string) (*Result, error)
}

// StatusSource is the read-only view of the runtime-state snapshot that an
// external listener keeps up to date. ok is false while the application has
// not been observed.
type StatusSource interface {
	ApplicationState(ctx context.Context, key AppKey) (state string, ok bool, err error)
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building the admin client.
//
// # Authentication
//
// Only the OAuth2 password grant is supported. The token endpoint is
// discovered from "<APIEndpoint>/info" on first use and cached for the
// lifetime of the client. The grant is sent with a basic-auth header for
// ClientID and an empty secret ("Basic Y2Y6" for the default "cf" client).
//
// # Timeouts, retries, and polling
//
// HTTPTimeout bounds every single HTTP round trip. RetryMax enables transport
// retries for GET requests only; side-effecting requests are never retried by
// the transport. PollInterval and PollAttempts bound how long a lifecycle
// command waits for the runtime-state snapshot to converge.
type Config struct {
	// APIEndpoint: base URL for the control plane (e.g., "https://api.example.com").
	// cfclient.New normalizes this value by trimming a trailing slash and
	// adding "https://" if no scheme is present.
	APIEndpoint string

	// Username: account username for the OAuth2 password grant.
	Username string
	// Password: account password for the OAuth2 password grant.
	Password string
	// ClientID: OAuth2 client identity sent with the grant. Defaults to "cf".
	ClientID string

	// HTTPTimeout: per-request timeout. Defaults to 30s.
	HTTPTimeout time.Duration
	// RetryMax: maximum transport retries for GET requests (>=500, 429 and
	// connection errors). Zero disables transport retries.
	RetryMax int
	// RetryWaitMin: minimum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMin time.Duration
	// RetryWaitMax: maximum backoff between retries. Applied when RetryMax > 0.
	RetryWaitMax time.Duration

	// PollInterval: delay between convergence checks. Defaults to 1s.
	PollInterval time.Duration
	// PollAttempts: maximum convergence checks per command. Defaults to 30.
	PollAttempts int

	// Debug: enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger: optional structured logger used by every layer.
	Logger Logger
	// SkipTLSVerify: skip TLS verification. Only honored when CAPI_DEV_MODE
	// is set to "true" or "1".
	SkipTLSVerify bool
	// UserAgent: overrides the default User-Agent header sent by the client.
	UserAgent string
}

// Endpoints are the identity-service locations advertised by the control plane.
type Endpoints struct {
	AuthorizationEndpoint string `json:"authorization_endpoint" yaml:"authorization_endpoint"`
	TokenEndpoint         string `json:"token_endpoint"         yaml:"token_endpoint"`
}

// Credential is the bearer credential returned by a successful login.
type Credential struct {
	TokenType   string
	AccessToken string
}

// Header returns the Authorization header value for the credential.
func (c Credential) Header() string {
	return c.TokenType + " " + c.AccessToken
}

// IsZero reports whether no credential is held.
func (c Credential) IsZero() bool {
	return c.AccessToken == ""
}
