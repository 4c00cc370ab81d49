// Package cmdutil holds helpers shared by the logbook subcommands.
package cmdutil

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/internal/cmd/globals"
	"github.com/agentstation/logbook/internal/cmd/output"
	"github.com/agentstation/logbook/pkg/catalog"
)

// LoadCatalog loads the application's catalog once and logs the summary.
// A missing log directory yields an empty catalog, not an error.
func LoadCatalog(ctx context.Context, app application.Application) (*catalog.Catalog, *catalog.LoadReport, error) {
	cat, err := app.Catalog()
	if err != nil {
		return nil, nil, err
	}

	report, err := cat.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	app.Logger().Debug().
		Str("root", report.Root).
		Int("records", report.Records).
		Int("files", report.FilesScanned).
		Int("malformed", report.MalformedLines).
		Dur("duration", report.Duration).
		Msg("Catalog loaded")

	if report.RootMissing {
		app.Logger().Warn().Str("root", report.Root).Msg("Log directory does not exist")
	}
	return cat, report, nil
}

// Format resolves the output format from the application configuration,
// falling back to terminal detection when none is set.
func Format(app application.Application) (output.Format, error) {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return "", err
	}
	return output.DetectFormat(string(format)), nil
}

// Render writes data to the command's stdout in the configured format.
// Table formats render tableData instead of data.
func Render(cmd *cobra.Command, app application.Application, data any, tableData func(wide bool) output.Data) error {
	format, err := Format(app)
	if err != nil {
		return err
	}
	return output.Write(cmd.OutOrStdout(), format, data, tableData)
}

// Notef prints an informational line to stderr unless --quiet is set.
func Notef(cmd *cobra.Command, format string, args ...any) {
	if globals.Parse(cmd).Quiet {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), format+"\n", args...)
}
