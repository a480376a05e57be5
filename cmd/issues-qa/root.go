package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ghqa/issues-qa/internal/config"
	"github.com/ghqa/issues-qa/internal/logger"
)

type rootOptions struct {
	configFile string

	cfg     *config.Configuration
	cleanup func()
}

// flagKeys maps persistent flags to the configuration keys they override.
var flagKeys = map[string]string{
	"api-url":    "github.api_url",
	"owner":      "github.owner",
	"repo":       "github.repo",
	"log-level":  "log_level",
	"log-format": "log_format",
	"workers":    "workers",
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "issues-qa",
		Short:         "Exercise the GitHub Issues REST API and web application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd.Flags())
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if opts.cleanup != nil {
				opts.cleanup()
			}
		},
	}

	opts.bindFlags(cmd.PersistentFlags())

	cmd.AddCommand(
		newIssueCommand(opts),
		newMockCommand(opts),
		newVersionCommand(),
	)
	return cmd
}

// bindFlags declares the persistent flags with the configuration defaults.
func (o *rootOptions) bindFlags(fs *pflag.FlagSet) {
	def := config.NewConfigurationWithDefaults()

	fs.StringVarP(&o.configFile, "config", "c", "", "Configuration file path (YAML)")
	fs.String("api-url", def.GitHub.APIURL, "REST API root")
	fs.String("owner", def.GitHub.Owner, "Repository owner")
	fs.String("repo", def.GitHub.Repo, "Repository name")
	fs.String("log-level", def.LogLevel, "Log level (debug, info, warn, error)")
	fs.String("log-format", def.LogFormat, "Log format (console, json)")
	fs.Int("workers", def.Workers, "Concurrent API calls for bulk commands")
}

// load builds the configuration; flags set on the command line win over
// the file and the environment.
func (o *rootOptions) load(fs *pflag.FlagSet) error {
	cfg, err := config.Load(o.configFile, config.WithFlags(fs, flagKeys))
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cleanup, err := logger.Install(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	zap.S().Debugw("configuration loaded", "config", cfg.DebugMap())

	o.cfg = cfg
	o.cleanup = cleanup
	return nil
}
