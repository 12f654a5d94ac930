package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/capi-admin/pkg/capi"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var identity bool

	cmd := &cobra.Command{
		Use:   "list PATH",
		Short: "List a collection",
		Long: `Read every page of a collection and print the records.

PATH is relative to the control plane (for example v2/apps) or, with
--identity, to the identity service (for example Users).`,
		Example: `  capi-admin list v2/organizations
  capi-admin list Users --identity -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer s.Close()

			return runList(cmd.Context(), cmd.OutOrStdout(), s.client, args[0], identity, viper.GetString("output"))
		},
	}

	cmd.Flags().BoolVar(&identity, "identity", false, "read from the identity service instead of the control plane")

	return cmd
}

func runList(ctx context.Context, out io.Writer, client capi.ResourceClient, path string, identity bool, format string) error {
	list := client.List
	if identity {
		list = client.ListIdentity
	}

	records, err := list(ctx, path)
	if err != nil {
		return err
	}

	return writeRecords(out, format, records)
}
