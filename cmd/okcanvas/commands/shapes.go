package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/benoitkugler/okcanvas/canvaspath"
	"github.com/spf13/cobra"
)

func newShapesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shapes",
		Short: "list the supported shapes, with their default dimensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SHAPE\tWIDTH\tHEIGHT")
			for _, t := range canvaspath.Templates() {
				height := "-"
				if t.Height != 0 {
					height = fmt.Sprint(t.Height)
				}
				fmt.Fprintf(w, "%s\t%g\t%s\n", t.Kind, t.Width, height)
			}
			return w.Flush()
		},
	}
}
