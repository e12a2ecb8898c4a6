package typeid

import (
	"strings"
	"testing"
)

func TestNewCarriesPrefix(t *testing.T) {
	tests := []struct {
		name   string
		gen    func() string
		prefix string
	}{
		{"diagram", NewDiagramID, PrefixDiagram},
		{"view", NewViewID, PrefixView},
		{"op", NewOpID, PrefixOp},
		{"user", NewUserID, PrefixUser},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := tt.gen()
			if !strings.HasPrefix(id, tt.prefix+"_") {
				t.Fatalf("id %q lacks prefix %q", id, tt.prefix)
			}
			if err := Validate(id, tt.prefix); err != nil {
				t.Fatalf("Validate(%q): %v", id, err)
			}
		})
	}
}

func TestValidateRejects(t *testing.T) {
	if err := Validate(NewViewID(), PrefixOp); err == nil {
		t.Fatal("expected prefix mismatch error")
	}
	if err := Validate("not an id", PrefixView); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestIDsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewViewID()
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
