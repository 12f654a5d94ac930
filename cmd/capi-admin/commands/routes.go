package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// NewRoutesCommand creates the routes command group.
func NewRoutesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "routes",
		Aliases: []string{"route", "r"},
		Short:   "Manage routes",
		Long:    "Delete routes by host and domain",
	}

	cmd.AddCommand(newRoutesDeleteCommand())

	return cmd
}

func newRoutesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete HOST.DOMAIN",
		Short: "Delete a route",
		Long:  "Delete the route whose host and domain match HOST.DOMAIN (or the bare domain for a route without a host)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			return runDeleteRoute(cmd.Context(), cmd.OutOrStdout(), s.client, args[0], viper.GetString("output"))
		},
	}
}

func runDeleteRoute(ctx context.Context, out io.Writer, ops capi.Operations, route, format string) error {
	result, err := ops.ManageRoute(ctx, capi.CommandDelete, route)
	if err != nil {
		return err
	}

	return writeResult(out, format, result)
}
