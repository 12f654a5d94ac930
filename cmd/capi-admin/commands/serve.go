package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
	"github.com/fivetwenty-io/capi-admin/internal/observability"
	"github.com/fivetwenty-io/capi-admin/internal/web"
	"github.com/fivetwenty-io/capi-admin/pkg/cfclient"
)

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console API",
		Long: `Serve the JSON console API and Prometheus metrics, keeping the runtime
status snapshot up to date from NATS broadcasts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := newSession(ctx, true, cfclient.WithMetrics(observability.NewMetrics()))
			if err != nil {
				return err
			}
			defer s.Close()

			router := web.NewRouter(s.client, s.client, s.logger,
				web.WithSnapshot(s.store),
				web.WithMiddlewares(
					observability.RequestLogger(s.logger.Zerolog()),
					observability.RequestMetricsMiddleware,
				),
			)

			server := &http.Server{
				Addr:              viper.GetString("listen"),
				Handler:           router,
				ReadHeaderTimeout: constants.ServerReadHeaderTimeout,
			}

			return runServer(ctx, server, s.logger)
		},
	}

	cmd.Flags().String("listen", constants.DefaultListenAddress, "address the console API listens on")
	_ = viper.BindPFlag("listen", cmd.Flags().Lookup("listen"))

	return cmd
}

// runServer serves until ctx ends, then shuts down gracefully.
func runServer(ctx context.Context, server *http.Server, logger *observability.Logger) error {
	errCh := make(chan error, 1)

	go func() {
		logger.Info("Console API listening", map[string]interface{}{"address": server.Addr})

		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return fmt.Errorf("console API: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down console API", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down console API: %w", err)
	}

	return nil
}
