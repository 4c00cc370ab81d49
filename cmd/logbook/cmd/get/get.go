// Package get provides the command for showing a single log record.
package get

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/internal/cmd/cmdutil"
	"github.com/agentstation/logbook/internal/cmd/output"
)

// NewCommand creates the get command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "get <id>",
		GroupID: "core",
		Short:   "Show a log record by id",
		Long: `Show a single record by its id, the 40-character fingerprint
reported by list and the HTTP API.`,
		Example: `  logbook get 3f786850e387550fdab836ed7e6dc881de23001b`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, _, err := cmdutil.LoadCatalog(cmd.Context(), app)
			if err != nil {
				return err
			}

			record, err := cat.Find(args[0])
			if err != nil {
				return err
			}

			return cmdutil.Render(cmd, app, record, func(bool) output.Data {
				return output.RecordToTableData(record)
			})
		},
	}
}
