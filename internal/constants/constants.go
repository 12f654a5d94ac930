package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ServerReadHeaderTimeout bounds header reads on the console API listener.
	ServerReadHeaderTimeout = 10 * time.Second

	// ServerShutdownTimeout bounds graceful shutdown of the console API listener.
	ServerShutdownTimeout = 15 * time.Second
)

// Retry limits.
const (
	// DefaultRetryWaitMin is the minimum wait time between transport retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between transport retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Convergence polling.
const (
	// DefaultPollInterval is the delay between runtime-state checks.
	DefaultPollInterval = 1 * time.Second

	// DefaultPollAttempts is the number of runtime-state checks per command.
	DefaultPollAttempts = 30
)

// Identity service.
const (
	// DefaultClientID is the public client used for the password grant.
	DefaultClientID = "cf"

	// TokenPath is appended to the discovered token endpoint.
	TokenPath = "/oauth/token"

	// InfoPath is the control-plane discovery document.
	InfoPath = "/info"

	// StartIndexParam is the offset-pagination query parameter.
	StartIndexParam = "startIndex"
)

// Application states as reported by the control plane and the runtime snapshot.
const (
	AppStateStarted = "STARTED"
	AppStateStopped = "STOPPED"
)

// Control-plane collection paths.
const (
	OrganizationsPath = "v2/organizations"
	SpacesPath        = "v2/spaces"
	DomainsPath       = "v2/domains"
	RoutesPath        = "v2/routes"
	AppsPath          = "v2/apps"
)

// Runtime-state broadcasts.
const (
	// DefaultStatusSubject is the NATS subject components publish app status on.
	DefaultStatusSubject = "admin.apps.status"

	// DefaultNATSURL is used when no NATS server is configured.
	DefaultNATSURL = "nats://127.0.0.1:4222"
)

// Console API.
const (
	// DefaultListenAddress is where `serve` listens by default.
	DefaultListenAddress = ":8070"

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace = "capi_admin"
)

// Environment.
const (
	// DevModeEnv enables development-only behavior such as skipping TLS verification.
	DevModeEnv = "CAPI_DEV_MODE"

	// EnvPrefix is the viper environment prefix for the CLI.
	EnvPrefix = "CAPI"
)

// CLI output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// CLI configuration.
const (
	// ConfigDirName is created below the user's home directory.
	ConfigDirName = ".capi-admin"

	// ConfigFileName is the config file name without extension.
	ConfigFileName = "config"
)
