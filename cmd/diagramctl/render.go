package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/inamate/diagrammer/internal/export"
	"github.com/inamate/diagrammer/internal/style"
	"github.com/inamate/diagrammer/internal/ui"
)

func renderCmd() *cobra.Command {
	var (
		output    string
		styleFile string
		opts      export.Options
	)
	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a diagram to PNG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := readDiagram(args[0])
			if err != nil {
				return err
			}
			if styleFile != "" {
				if opts.Styles, err = style.Load(styleFile); err != nil {
					return err
				}
			}
			if output == "" {
				output = strings.TrimSuffix(args[0], ".json") + ".png"
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := export.WritePNG(f, d, opts); err != nil {
				f.Close()
				return fmt.Errorf("render %s: %w", args[0], err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %s wrote %s\n", ui.Good.Sprint(ui.CheckMark), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "PNG file to write (default: input name with .png)")
	cmd.Flags().StringVar(&styleFile, "styles", "", "TOML style sheet")
	cmd.Flags().Float64Var(&opts.Scale, "scale", 1, "pixels per diagram unit")
	cmd.Flags().Float64Var(&opts.Margin, "margin", 16, "margin in pixels")
	cmd.Flags().Float64Var(&opts.FontSize, "font-size", 12, "font size in diagram units")
	return cmd
}
