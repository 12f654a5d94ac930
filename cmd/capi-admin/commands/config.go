package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/fivetwenty-io/capi-admin/internal/observability"
	"github.com/fivetwenty-io/capi-admin/internal/varz"
	"github.com/fivetwenty-io/capi-admin/pkg/capi"
	"github.com/fivetwenty-io/capi-admin/pkg/cfclient"
)

var errPasswordNotTerminal = errors.New("password is required when stdin is not a terminal")

// session is everything a command needs to talk to the platform.
type session struct {
	client   *cfclient.Client
	store    *varz.Store
	logger   *observability.Logger
	conn     *nats.Conn
	listener *varz.Listener
}

// Close releases the NATS subscription and connection, if any.
func (s *session) Close() {
	if s.listener != nil {
		if err := s.listener.Close(); err != nil {
			s.logger.Warn("Closing status listener failed", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.conn != nil {
		s.conn.Close()
	}
}

// newLogger builds the process logger from the log-level and verbose settings.
func newLogger() *observability.Logger {
	level := viper.GetString("log-level")
	if viper.GetBool("verbose") {
		level = "debug"
	}

	console := term.IsTerminal(int(os.Stderr.Fd()))

	return observability.NewLogger(observability.InitLogger("capi-admin", os.Stderr, level, console))
}

// loadConfig reads the client configuration from flags, environment and the
// config file. A missing password is prompted for on a terminal.
func loadConfig(logger capi.Logger) (*capi.Config, error) {
	config := &capi.Config{
		APIEndpoint:   viper.GetString("api"),
		Username:      viper.GetString("username"),
		Password:      viper.GetString("password"),
		ClientID:      viper.GetString("client-id"),
		HTTPTimeout:   viper.GetDuration("timeout"),
		RetryMax:      viper.GetInt("retry-max"),
		PollInterval:  viper.GetDuration("poll-interval"),
		PollAttempts:  viper.GetInt("poll-attempts"),
		Debug:         viper.GetBool("verbose"),
		SkipTLSVerify: viper.GetBool("skip-ssl-validation"),
		Logger:        logger,
	}

	if config.APIEndpoint == "" {
		return nil, fmt.Errorf("%w (use --api or CAPI_API)", capi.ErrAPIEndpointRequired)
	}

	if config.Password == "" && config.Username != "" {
		password, err := promptPassword(os.Stdin, os.Stderr)
		if err != nil {
			return nil, err
		}

		config.Password = password
	}

	return config, nil
}

func promptPassword(in *os.File, out io.Writer) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return "", errPasswordNotTerminal
	}

	fmt.Fprint(out, "Password: ")

	bytePassword, err := term.ReadPassword(fd)
	fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	return strings.TrimSpace(string(bytePassword)), nil
}

// newSession builds the admin client. withStatus subscribes to runtime status
// broadcasts so that lifecycle commands can be confirmed.
func newSession(ctx context.Context, withStatus bool, opts ...cfclient.Option) (*session, error) {
	logger := newLogger()

	config, err := loadConfig(logger)
	if err != nil {
		return nil, err
	}

	s := &session{
		store:  varz.NewStore(),
		logger: logger,
	}

	if withStatus {
		err = s.listen()
		if err != nil {
			return nil, err
		}
	}

	s.client, err = cfclient.New(ctx, config, s.store, opts...)
	if err != nil {
		s.Close()

		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return s, nil
}

func (s *session) listen() error {
	conn, err := varz.Connect(viper.GetString("nats"))
	if err != nil {
		return err
	}

	s.conn = conn
	s.listener = varz.NewListener(conn, s.store,
		varz.WithSubject(viper.GetString("status-subject")),
		varz.WithLogger(s.logger),
	)

	err = s.listener.Start()
	if err != nil {
		s.Close()

		return err
	}

	return nil
}
