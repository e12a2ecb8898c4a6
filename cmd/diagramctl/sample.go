package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/typeid"
)

func sampleCmd() *cobra.Command {
	var (
		output string
		id     string
	)
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the built-in sample diagram as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				id = typeid.NewDiagramID()
			}
			data, err := document.NewSampleDiagram(id).JSON()
			if err != nil {
				return err
			}
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, data, "", "  "); err != nil {
				return err
			}
			pretty.WriteByte('\n')

			if output == "" {
				_, err = cmd.OutOrStdout().Write(pretty.Bytes())
				return err
			}
			if err := os.WriteFile(output, pretty.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write sample: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: stdout)")
	cmd.Flags().StringVar(&id, "id", "", "diagram id (default: a new dgm_ id)")
	return cmd
}
