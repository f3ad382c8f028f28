package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"
)

// Formatter renders a command result to a writer
type Formatter interface {
	Format(w io.Writer, data interface{}) error
}

// FormatterFunc is a function implementing Formatter
type FormatterFunc func(w io.Writer, data interface{}) error

// Format renders the data
func (f FormatterFunc) Format(w io.Writer, data interface{}) error {
	return f(w, data)
}

var formatFlags = map[*cobra.Command]*string{}

// addFormatFlag registers the --format flag on a command. Every
// command accepts "yaml" on top of its own formatters.
func addFormatFlag(cmd *cobra.Command, defaultFormat string, formatters map[string]Formatter) {
	selected := cmd.Flags().String("format", defaultFormat, "output format")
	formatFlags[cmd] = selected
	printers[cmd] = formatters
}

var printers = map[*cobra.Command]map[string]Formatter{}

// printResult renders data with the formatter selected on the command,
// falling back to yaml.
func printResult(cmd *cobra.Command, data interface{}) error {
	format := "yaml"
	if sel, ok := formatFlags[cmd]; ok {
		format = *sel
	}
	if fs, ok := printers[cmd]; ok {
		if f, ok := fs[format]; ok {
			return f.Format(os.Stdout, data)
		}
	}
	return yaml.NewEncoder(os.Stdout).Encode(data)
}
