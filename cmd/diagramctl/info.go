package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/ui"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "List the views of a diagram in paint order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "  %s %s\n", ui.Brand.Sprint(d.Name), ui.Subtle.Sprintf("(%s)", d.ID))
			fmt.Fprintf(out, "  Canvas:  %gx%g\n\n", d.Width, d.Height)

			var rows [][]string
			var walk func(ids []string, depth int)
			walk = func(ids []string, depth int) {
				for _, id := range ids {
					n := d.Node(id)
					if n == nil {
						continue
					}
					rows = append(rows, []string{
						strings.Repeat("  ", depth) + id,
						string(n.Kind),
						n.Category,
						n.Name,
						extentOf(d, n),
					})
					walk(n.Children, depth+1)
				}
			}
			walk(d.Root, 0)
			ui.Table(out, []string{"ID", "KIND", "CATEGORY", "NAME", "EXTENT"}, rows)
			return nil
		},
	}
}

func extentOf(d *document.Diagram, n *document.ViewNode) string {
	v := d.View(n.ID)
	if v == nil {
		return ""
	}
	r := v.BoundingBox()
	return fmt.Sprintf("%g,%g %gx%g", r.X1, r.Y1, r.Width(), r.Height())
}
