// Package version provides the version command.
package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/cmd/application"
	"github.com/agentstation/logbook/internal/cmd/cmdutil"
	"github.com/agentstation/logbook/internal/cmd/globals"
)

// Info is the machine-readable version output.
type Info struct {
	Version   string `json:"version"    yaml:"version"`
	Commit    string `json:"commit"     yaml:"commit"`
	Date      string `json:"date"       yaml:"date"`
	BuiltBy   string `json:"built_by"   yaml:"built_by"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// NewCommand creates the version command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := Info{
				Version:   app.Version(),
				Commit:    app.Commit(),
				Date:      app.Date(),
				BuiltBy:   app.BuiltBy(),
				GoVersion: runtime.Version(),
			}

			// Plain text unless a format was asked for.
			if app.OutputFormat() != "" {
				format, err := cmdutil.Format(app)
				if err != nil {
					return err
				}
				if !format.IsTable() {
					return cmdutil.Render(cmd, app, info, nil)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "logbook %s\n", info.Version)
			if globals.Parse(cmd).Verbose {
				fmt.Fprintf(out, "  commit:   %s\n", info.Commit)
				fmt.Fprintf(out, "  built:    %s\n", info.Date)
				fmt.Fprintf(out, "  built by: %s\n", info.BuiltBy)
				fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
			}
			return nil
		},
	}
}
