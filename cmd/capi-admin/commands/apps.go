package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// NewAppsCommand creates the apps command group.
func NewAppsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apps",
		Aliases: []string{"app", "a"},
		Short:   "Manage applications",
		Long:    "Start, stop and restart applications and wait for the runtime to confirm",
	}

	cmd.AddCommand(newAppsStateCommand(capi.CommandStart, "Start an application"))
	cmd.AddCommand(newAppsStateCommand(capi.CommandStop, "Stop an application"))
	cmd.AddCommand(newAppsStateCommand(capi.CommandRestart, "Restart an application"))

	return cmd
}

func newAppsStateCommand(command capi.Command, short string) *cobra.Command {
	return &cobra.Command{
		Use:   strings.ToLower(string(command)) + " ORG SPACE APP",
		Short: short,
		Long: fmt.Sprintf(`%s and poll the runtime status broadcasts until they agree.

A command that is not confirmed within --poll-attempts checks is reported as
timed_out; the control plane accepted it and it may still converge.`, short),
		Args: cobra.ExactArgs(3), //nolint:mnd // org, space and app
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer s.Close()

			return runManageApplication(cmd.Context(), cmd.OutOrStdout(), s.client, command, args[0], args[1], args[2], viper.GetString("output"))
		},
	}
}

func runManageApplication(ctx context.Context, out io.Writer, ops capi.Operations, command capi.Command, org, space, app, format string) error {
	result, err := ops.ManageApplication(ctx, command, org, space, app)
	if result != nil {
		if writeErr := writeResult(out, format, result); writeErr != nil {
			return writeErr
		}
	}

	return err
}
