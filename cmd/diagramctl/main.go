// Command diagramctl inspects, validates and renders diagram documents
// offline.
package main

import (
	"os"

	"github.com/inamate/diagrammer/internal/ui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		ui.Bad.Fprintf(os.Stderr, "diagramctl: %v\n", err)
		os.Exit(1)
	}
}
