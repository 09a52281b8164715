package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/config"
	"github.com/tinkertanker/groupmaker/internal/credentials"
	"github.com/tinkertanker/groupmaker/internal/directory"
	"github.com/tinkertanker/groupmaker/internal/log"
)

var (
	envFile       string
	flagDomain    string
	flagLogLevel  string
	flagLogFormat string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "groupmaker",
	Short: "Create and manage Google Workspace Groups",
	Long: `groupmaker automates Google Workspace Group lifecycle operations
(create, list, rename, delete, membership management) using a service
account with domain-wide delegation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("domain") {
			cfg.Domain = flagDomain
			cfg.DomainSet = true
		}
		if cmd.Flags().Changed("log-level") {
			cfg.Log.Level = flagLogLevel
		}
		if cmd.Flags().Changed("log-format") {
			cfg.Log.Format = flagLogFormat
		}

		log.Setup(cfg.Log.Level, cfg.Log.Format)

		// The dashboard must come up on an unconfigured install so the
		// settings page can fix the config; it reports issues itself.
		if cmd.Name() != "dashboard" {
			if err := config.Validate(cfg); err != nil {
				return err
			}
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "config", "", "settings file path (default .env)")
	rootCmd.PersistentFlags().StringVar(&flagDomain, "domain", "", "Google Workspace domain for groups")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, or pretty")
}

// newDirectoryClient builds an Admin SDK client from the credentials the
// environment or the credentials file provides.
func newDirectoryClient(ctx context.Context) (*directory.Client, error) {
	credsJSON, err := credentials.FromEnvOrFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("credentials: %w", err)
	}
	delegate := cfg.Delegate()
	if delegate == "" {
		return nil, fmt.Errorf("DEFAULT_EMAIL or ADMIN_EMAIL must be configured for delegation")
	}
	return directory.NewClient(ctx, credsJSON, delegate)
}

// qualifyGroup turns a bare group name into an address in the configured
// domain; full addresses pass through unchanged.
func qualifyGroup(name string) string {
	if strings.Contains(name, "@") {
		return name
	}
	return fmt.Sprintf("%s@%s", name, cfg.Domain)
}
