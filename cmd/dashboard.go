package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tinkertanker/groupmaker/internal/credentials"
	"github.com/tinkertanker/groupmaker/internal/dashboard"
	"github.com/tinkertanker/groupmaker/internal/metrics"
	"github.com/tinkertanker/groupmaker/internal/runner"
	"github.com/tinkertanker/groupmaker/internal/webapi"
)

var dashboardPort int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the web dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Dashboard.Port = dashboardPort
		}

		cliPath := cfg.Dashboard.CLIPath
		if cliPath == "" {
			// The dashboard shells out to this same binary.
			exe, err := os.Executable()
			if err != nil {
				return fmt.Errorf("locate CLI binary: %w", err)
			}
			cliPath = exe
		}

		provider, err := credentials.NewSecretsManagerProvider()
		if err != nil {
			logrus.WithError(err).Debug("runtime secret store unavailable")
			provider = nil
		}
		resolver := credentials.NewResolver(provider)
		if cfg.CredentialsFile != "" {
			resolver.CredentialsFile = cfg.CredentialsFile
		}

		run := &runner.Runner{
			Path: cliPath,
			// Subprocesses must read the same settings file the dashboard
			// was started with.
			BaseArgs: []string{"--config", cfg.SettingsFile},
			Timeout:  time.Duration(cfg.CLITimeout) * time.Second,
			// Resolve fresh on every invocation so a credentials upload or
			// secret rotation takes effect without a restart.
			EnvFunc: func() []string {
				resolution := resolver.Resolve()
				if resolution.Credentials == nil {
					return nil
				}
				env, err := credentials.PrepareCLIEnv(resolution.Credentials)
				if err != nil {
					logrus.WithError(err).Warn("resolved credentials failed validation")
					return nil
				}
				entries := make([]string, 0, len(env))
				for key, value := range env {
					entries = append(entries, key+"="+value)
				}
				return entries
			},
		}

		var emitter *metrics.Emitter
		if cfg.Metrics.Enabled {
			emitter, err = metrics.NewEmitter(cmd.Context(), cfg.Metrics.Namespace, cfg.Metrics.Region)
			if err != nil {
				logrus.WithError(err).Warn("metrics emitter init failed, continuing without metrics")
				emitter = nil
			} else {
				logrus.WithField("namespace", cfg.Metrics.Namespace).Info("operation metrics enabled (CloudWatch)")
			}
		}

		server := dashboard.New(cfg, webapi.New(run), resolver, emitter)
		return server.Listen()
	},
}

func init() {
	dashboardCmd.Flags().IntVar(&dashboardPort, "port", 8501, "Port to serve the dashboard on")
	rootCmd.AddCommand(dashboardCmd)
}
