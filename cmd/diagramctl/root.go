package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/ui"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "diagramctl",
		Short: "Inspect, validate and render diagram documents",
		Long: ui.Brand.Sprint("diagramctl") + " works on diagram JSON files\n" +
			ui.Subtle.Sprint("Validate documents, list their views and render them to PNG"),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("diagramctl {{ .Version }}\n")

	root.AddCommand(
		validateCmd(),
		infoCmd(),
		renderCmd(),
		sampleCmd(),
		tokenCmd(),
	)
	return root
}

func readDiagram(path string) (*document.Diagram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}
