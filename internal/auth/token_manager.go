package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	capihttp "github.com/fivetwenty-io/capi-admin/internal/http"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// Doer executes a single HTTP round trip.
type Doer interface {
	Do(ctx context.Context, req *capihttp.Request) (*capihttp.Response, error)
}

// Config holds what the password grant needs.
type Config struct {
	APIEndpoint string
	Username    string
	Password    string
	ClientID    string
}

// Metrics receives authentication events. Implementations must be safe for concurrent use.
type Metrics interface {
	ObserveLogin(success bool)
}

// PasswordTokenManager discovers the identity service and keeps the bearer
// credential obtained with the OAuth2 password grant.
type PasswordTokenManager struct {
	doer      Doer
	config    Config
	logger    capi.Logger
	metrics   Metrics
	basicAuth string

	discoverMu sync.Mutex
	endpoints  *capi.Endpoints

	mu         sync.RWMutex
	credential capi.Credential

	group singleflight.Group
}

// Option configures a PasswordTokenManager.
type Option func(*PasswordTokenManager)

// WithLogger sets the logger.
func WithLogger(logger capi.Logger) Option {
	return func(m *PasswordTokenManager) {
		m.logger = logger
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(metrics Metrics) Option {
	return func(m *PasswordTokenManager) {
		m.metrics = metrics
	}
}

// NewPasswordTokenManager creates a token manager. Nothing is fetched until
// the first Discover or Login.
func NewPasswordTokenManager(doer Doer, config Config, opts ...Option) *PasswordTokenManager {
	if config.ClientID == "" {
		config.ClientID = constants.DefaultClientID
	}

	config.APIEndpoint = strings.TrimSuffix(config.APIEndpoint, "/")

	manager := &PasswordTokenManager{
		doer:      doer,
		config:    config,
		basicAuth: "Basic " + base64.StdEncoding.EncodeToString([]byte(config.ClientID+":")),
	}

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// Discover fetches the control plane's info document. A successful result is
// kept for the lifetime of the manager; a failure is not, so the next call
// tries again.
func (m *PasswordTokenManager) Discover(ctx context.Context) (capi.Endpoints, error) {
	m.discoverMu.Lock()
	defer m.discoverMu.Unlock()

	if m.endpoints != nil {
		return *m.endpoints, nil
	}

	infoURL := m.config.APIEndpoint + constants.InfoPath

	resp, err := m.doer.Do(ctx, &capihttp.Request{Method: http.MethodGet, URL: infoURL})
	if err != nil {
		return capi.Endpoints{}, fmt.Errorf("fetching %s: %w", infoURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		return capi.Endpoints{}, &capi.ProtocolError{
			Method:     http.MethodGet,
			URL:        infoURL,
			StatusCode: resp.StatusCode,
			Message:    resp.Reason(),
			Err:        capi.ErrDiscoveryFailed,
		}
	}

	if !gjson.ValidBytes(resp.Body) {
		return capi.Endpoints{}, &capi.ProtocolError{
			Method:  http.MethodGet,
			URL:     infoURL,
			Message: "info document is not valid JSON",
			Err:     capi.ErrDiscoveryFailed,
		}
	}

	fields := gjson.GetManyBytes(resp.Body, "authorization_endpoint", "token_endpoint")
	for i, name := range []string{"authorization_endpoint", "token_endpoint"} {
		if fields[i].String() == "" {
			return capi.Endpoints{}, &capi.ProtocolError{
				Method:  http.MethodGet,
				URL:     infoURL,
				Message: fmt.Sprintf("info does not include %s", name),
				Err:     capi.ErrMissingEndpoint,
			}
		}
	}

	m.endpoints = &capi.Endpoints{
		AuthorizationEndpoint: strings.TrimSuffix(fields[0].String(), "/"),
		TokenEndpoint:         strings.TrimSuffix(fields[1].String(), "/"),
	}

	m.debug("Discovered identity service", map[string]interface{}{
		"authorization_endpoint": m.endpoints.AuthorizationEndpoint,
		"token_endpoint":         m.endpoints.TokenEndpoint,
	})

	return *m.endpoints, nil
}

// Login performs a password grant and caches the resulting credential.
// Concurrent callers share one round trip, which outlives the cancellation of
// whichever caller started it. Each caller stops waiting when its own ctx ends.
func (m *PasswordTokenManager) Login(ctx context.Context) (capi.Credential, error) {
	flight := context.WithoutCancel(ctx)

	ch := m.group.DoChan("login", func() (interface{}, error) {
		return m.login(flight)
	})

	select {
	case <-ctx.Done():
		return capi.Credential{}, fmt.Errorf("waiting for login: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return capi.Credential{}, res.Err
		}

		credential, _ := res.Val.(capi.Credential)

		return credential, nil
	}
}

func (m *PasswordTokenManager) login(ctx context.Context) (capi.Credential, error) {
	m.Invalidate()

	endpoints, err := m.Discover(ctx)
	if err != nil {
		return capi.Credential{}, err
	}

	tokenURL := endpoints.TokenEndpoint + constants.TokenPath

	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", m.config.Username)
	form.Set("password", m.config.Password)

	resp, err := m.doer.Do(ctx, &capihttp.Request{
		Method:      http.MethodPost,
		URL:         tokenURL,
		BasicAuth:   m.basicAuth,
		Body:        []byte(form.Encode()),
		ContentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return capi.Credential{}, fmt.Errorf("requesting token from %s: %w", tokenURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		m.observe(false)
		m.warn("Login rejected", map[string]interface{}{"url": tokenURL, "status": resp.StatusCode})

		return capi.Credential{}, &capi.AuthenticationError{
			URL:        tokenURL,
			StatusCode: resp.StatusCode,
			Message:    resp.Reason(),
		}
	}

	fields := gjson.GetManyBytes(resp.Body, "token_type", "access_token")

	credential := capi.Credential{
		TokenType:   fields[0].String(),
		AccessToken: fields[1].String(),
	}
	if credential.IsZero() {
		m.observe(false)

		return capi.Credential{}, &capi.AuthenticationError{
			URL:        tokenURL,
			StatusCode: resp.StatusCode,
			Message:    "response does not include access_token",
		}
	}

	if credential.TokenType == "" {
		credential.TokenType = "bearer"
	}

	m.mu.Lock()
	m.credential = credential
	m.mu.Unlock()

	m.observe(true)
	m.info("Logged in", map[string]interface{}{"username": m.config.Username})

	return credential, nil
}

// Credential returns the cached credential, if any.
func (m *PasswordTokenManager) Credential() (capi.Credential, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.credential, !m.credential.IsZero()
}

// Invalidate clears the cached credential.
func (m *PasswordTokenManager) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.credential = capi.Credential{}
}

// Token returns the cached credential, logging in first when none is held.
func (m *PasswordTokenManager) Token(ctx context.Context) (capi.Credential, error) {
	if credential, ok := m.Credential(); ok {
		return credential, nil
	}

	return m.Login(ctx)
}

// Relogin replaces a credential the server rejected. When another caller has
// already replaced stale, the newer credential is returned without a round
// trip.
func (m *PasswordTokenManager) Relogin(ctx context.Context, stale capi.Credential) (capi.Credential, error) {
	m.mu.RLock()
	current := m.credential
	m.mu.RUnlock()

	if !current.IsZero() && current != stale {
		return current, nil
	}

	m.warn("Credential rejected, logging in again", nil)

	return m.Login(ctx)
}

func (m *PasswordTokenManager) observe(success bool) {
	if m.metrics != nil {
		m.metrics.ObserveLogin(success)
	}
}

func (m *PasswordTokenManager) debug(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, fields)
	}
}

func (m *PasswordTokenManager) info(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Info(msg, fields)
	}
}

func (m *PasswordTokenManager) warn(msg string, fields map[string]interface{}) {
	if m.logger != nil {
		m.logger.Warn(msg, fields)
	}
}
