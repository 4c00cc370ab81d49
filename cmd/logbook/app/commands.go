package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/cmd/logbook/cmd/get"
	"github.com/agentstation/logbook/cmd/logbook/cmd/list"
	"github.com/agentstation/logbook/cmd/logbook/cmd/serve"
	"github.com/agentstation/logbook/cmd/logbook/cmd/stats"
	"github.com/agentstation/logbook/cmd/logbook/cmd/version"
	"github.com/agentstation/logbook/internal/server"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(get.NewCommand(a))
	rootCmd.AddCommand(stats.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a, a.serverDefaults()))

	rootCmd.AddCommand(version.NewCommand(a))
}

// serverDefaults layers the loaded configuration over server.DefaultConfig.
func (a *App) serverDefaults() server.Config {
	cfg := server.DefaultConfig()
	c := a.config

	if c.Host != "" {
		cfg.Host = c.Host
	}
	if c.Port != 0 {
		cfg.Port = c.Port
	}
	if c.PathPrefix != "" {
		cfg.PathPrefix = c.PathPrefix
	}
	if c.DefaultPerPage > 0 {
		cfg.Limits.DefaultPerPage = c.DefaultPerPage
	}
	if c.MaxPerPage > 0 {
		cfg.Limits.MaxPerPage = c.MaxPerPage
	}
	if c.APIKey != "" {
		cfg.APIKey = c.APIKey
	}
	if len(c.CORSOrigins) > 0 {
		cfg.CORSEnabled = true
		cfg.CORSOrigins = c.CORSOrigins
	}
	return cfg
}
