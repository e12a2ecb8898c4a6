package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inamate/diagrammer/internal/ui"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check that diagram files parse and hold a consistent view tree",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				d, err := readDiagram(path)
				if err != nil {
					failed++
					fmt.Fprintf(out, "  %s %s\n", ui.Bad.Sprint(ui.CrossMark), err)
					continue
				}
				fmt.Fprintf(out, "  %s %s %s\n", ui.Good.Sprint(ui.CheckMark), path,
					ui.Subtle.Sprintf("(%d views)", len(d.Views)))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}
