// Package commands implements the capi-admin command line.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fivetwenty-io/capi-admin/internal/constants"
)

// NewRootCommand builds the command tree.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "capi-admin",
		Short: "Cloud Foundry administration console",
		Long: `An administration console for a Cloud Foundry v2 control plane.

It reads collections from the control plane and the identity service, and
starts, stops and restarts applications or deletes routes, waiting until the
runtime status broadcasts confirm each change.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.capi-admin/config.yml)")
	flags.StringP("api", "a", "", "control plane API endpoint URL")
	flags.StringP("username", "u", "", "account username")
	flags.StringP("password", "p", "", "account password (prompted when omitted)")
	flags.String("client-id", constants.DefaultClientID, "OAuth2 client used for the password grant")
	flags.StringP("output", "o", constants.FormatTable, "output format (table, json, yaml)")
	flags.BoolP("verbose", "v", false, "log HTTP requests and responses")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("skip-ssl-validation", false, "skip SSL certificate validation (requires CAPI_DEV_MODE)")
	flags.Int("retry-max", 0, "transport retries for read-only requests")
	flags.Duration("timeout", constants.DefaultHTTPTimeout, "per-request timeout")
	flags.Duration("poll-interval", constants.DefaultPollInterval, "delay between convergence checks")
	flags.Int("poll-attempts", constants.DefaultPollAttempts, "convergence checks per command")
	flags.String("nats", constants.DefaultNATSURL, "NATS server carrying runtime status broadcasts")
	flags.String("status-subject", constants.DefaultStatusSubject, "NATS subject of runtime status broadcasts")

	for _, name := range []string{
		"config", "api", "username", "password", "client-id", "output", "verbose", "log-level",
		"skip-ssl-validation", "retry-max", "timeout", "poll-interval", "poll-attempts", "nats", "status-subject",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}

	rootCmd.AddCommand(NewVersionCommand(version, commit, date))
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewAppsCommand())
	rootCmd.AddCommand(NewRoutesCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}

func initConfig() {
	cfgFile := viper.GetString("config")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			configDir := filepath.Join(home, constants.ConfigDirName)
			if err := os.MkdirAll(configDir, constants.ConfigDirPerm); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
			}

			viper.AddConfigPath(configDir)
		}

		viper.SetConfigType("yml")
		viper.SetConfigName(constants.ConfigFileName)
	}

	// CAPI_API, CAPI_POLL_INTERVAL, ...
	viper.SetEnvPrefix(constants.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}
