package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-opener/pkg/picker"
)

// NewPickersCmd creates the `fno pickers` command.
func NewPickersCmd(app **App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pickers",
		Short: "List the available pickers",
		Long:  "List the pickers that can disambiguate several matches. The configured one is marked with *.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configured := (*app).Settings.Picker

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "\tMODE\tDESCRIPTION")
			for _, p := range picker.Modes() {
				marker := ""
				if p.Mode() == configured {
					marker = "*"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", marker, p.Mode(), p.Description())
			}
			return w.Flush()
		},
	}
	return cmd
}
