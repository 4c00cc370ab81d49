// Package stats provides the command for catalog statistics.
package stats

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/internal/cmd/cmdutil"
	"github.com/agentstation/logbook/internal/cmd/output"
)

// NewCommand creates the stats command.
func NewCommand(app application.Application) *cobra.Command {
	var showReport bool

	cmd := &cobra.Command{
		Use:     "stats",
		GroupID: "core",
		Short:   "Show record counts by level and component",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, report, err := cmdutil.LoadCatalog(cmd.Context(), app)
			if err != nil {
				return err
			}

			if showReport {
				return cmdutil.Render(cmd, app, report, func(bool) output.Data {
					return output.ReportToTableData(report)
				})
			}

			stats := cat.Stats()
			return cmdutil.Render(cmd, app, stats, func(bool) output.Data {
				return output.StatsToTableData(stats)
			})
		},
	}

	cmd.Flags().BoolVar(&showReport, "report", false, "Show the load report instead of record counts")
	return cmd
}
