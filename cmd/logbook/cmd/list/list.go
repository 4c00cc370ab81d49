// Package list provides the command for listing log records.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/internal/cmd/cmdutil"
	"github.com/agentstation/logbook/internal/cmd/globals"
	"github.com/agentstation/logbook/internal/cmd/output"
	"github.com/agentstation/logbook/internal/server/filter"
)

// NewCommand creates the list command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *globals.QueryFlags

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "logs"},
		GroupID: "core",
		Short:   "List log records",
		Long: `List records from the log directory in timestamp order, oldest first.

Filters combine with AND. Level and component match case-insensitively;
start and end bound the timestamp inclusively.`,
		Example: `  logbook list
  logbook list --level error --component auth
  logbook list --start "2024-01-15 00:00:00" --end "2024-01-15 23:59:59"
  logbook list --page 2 --per-page 20 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := filter.ParseValues(flags.Values(), filter.DefaultLimits())
			if err != nil {
				return err
			}

			cat, _, err := cmdutil.LoadCatalog(cmd.Context(), app)
			if err != nil {
				return err
			}

			page := cat.Search(query.Query, query.Page, query.PerPage)
			cmdutil.Notef(cmd, "Found %d records", page.Total)

			return cmdutil.Render(cmd, app, page, func(wide bool) output.Data {
				return output.PageToTableData(page, wide)
			})
		},
	}

	flags = globals.AddQueryFlags(cmd)
	return cmd
}
