// Package globals provides shared flag structures and utilities for CLI commands.
package globals

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/logbook/internal/server/filter"
)

// Flags holds global common flags across all commands.
type Flags struct {
	Format  string
	Quiet   bool
	Verbose bool
	NoColor bool
}

// Parse extracts global flags from the root of the command hierarchy.
func Parse(cmd *cobra.Command) *Flags {
	root := cmd.Root()

	format, _ := root.PersistentFlags().GetString("format")
	quiet, _ := root.PersistentFlags().GetBool("quiet")
	verbose, _ := root.PersistentFlags().GetBool("verbose")
	noColor, _ := root.PersistentFlags().GetBool("no-color")

	return &Flags{
		Format:  format,
		Quiet:   quiet,
		Verbose: verbose,
		NoColor: noColor,
	}
}

// QueryFlags holds the record filter and pagination flags.
type QueryFlags struct {
	Level     string
	Component string
	Start     string
	End       string
	Page      int
	PerPage   int
}

// AddQueryFlags adds filter and pagination flags to cmd.
func AddQueryFlags(cmd *cobra.Command) *QueryFlags {
	flags := &QueryFlags{}

	cmd.Flags().StringVarP(&flags.Level, "level", "l", "",
		"Filter by level (case-insensitive)")
	cmd.Flags().StringVarP(&flags.Component, "component", "c", "",
		"Filter by component (case-insensitive)")
	cmd.Flags().StringVar(&flags.Start, "start", "",
		`Only records at or after this time ("YYYY-MM-DD HH:MM:SS")`)
	cmd.Flags().StringVar(&flags.End, "end", "",
		`Only records at or before this time ("YYYY-MM-DD HH:MM:SS")`)
	cmd.Flags().IntVarP(&flags.Page, "page", "p", 0,
		"Page number (1-based)")
	cmd.Flags().IntVar(&flags.PerPage, "per-page", 0,
		"Records per page")

	return flags
}

// Values returns the flags as query values using the HTTP API's parameter
// names. Unset flags are omitted so the API defaults apply.
func (f *QueryFlags) Values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set(filter.ParamLevel, f.Level)
	set(filter.ParamComponent, f.Component)
	set(filter.ParamStartTime, f.Start)
	set(filter.ParamEndTime, f.End)
	if f.Page != 0 {
		v.Set(filter.ParamPage, strconv.Itoa(f.Page))
	}
	if f.PerPage != 0 {
		v.Set(filter.ParamPerPage, strconv.Itoa(f.PerPage))
	}
	return v
}
