package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/stmtconv/internal/convert"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported formats and conversion routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printFormats(cmd.OutOrStdout())
			return nil
		},
	}
}

func printFormats(w io.Writer) {
	fmt.Fprintln(w, "Formats:")
	for _, f := range convert.Formats {
		note := ""
		if f == convert.MT940 {
			note = " (output only)"
		}
		fmt.Fprintf(w, "  %-8s %s%s\n", f, f.Codec(), note)
	}

	fmt.Fprintln(w, "Routes:")
	for _, from := range convert.Formats {
		for _, to := range convert.Formats {
			if route := convert.Route(from, to); route != nil {
				fmt.Fprintf(w, "  %s\n", convert.FormatRoute(route))
			}
		}
	}
}
