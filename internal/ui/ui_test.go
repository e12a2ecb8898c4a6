package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestTable(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	Table(&buf, []string{"ID", "KIND"}, [][]string{{"a", "node"}, {"edge1", "edge"}})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	want := []string{
		"  ID     KIND",
		"  ─────  ────",
		"  a      node",
		"  edge1  edge",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %q", lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	buf.Reset()
	Table(&buf, []string{"ID"}, nil)
	if buf.Len() != 0 {
		t.Errorf("empty table wrote %q", buf.String())
	}
}
