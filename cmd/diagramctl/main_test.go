package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/inamate/diagrammer/internal/auth"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestSampleValidateInfoRender(t *testing.T) {
	dir := t.TempDir()
	sample := filepath.Join(dir, "sample.json")

	if _, err := run(t, "sample", "--id", "dgm_test", "-o", sample); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "validate", sample)
	if err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
	if !strings.Contains(out, "(6 views)") {
		t.Errorf("validate output = %q", out)
	}

	out, err = run(t, "info", sample)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"dgm_test", "CATEGORY", "package", "sales"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output missing %q:\n%s", want, out)
		}
	}

	styles := filepath.Join(dir, "styles.toml")
	if err := os.WriteFile(styles, []byte("[category.note]\nfill = \"#ffeeaa\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "render", sample, "--styles", styles, "--scale", "0.5", "--margin", "0"); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(filepath.Join(dir, "sample.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 360 {
		t.Errorf("png size = %v", b)
	}
}

func TestValidateReportsBadFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"views":{"a":{"id":"a","kind":"blob"}},"root":["a"]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "validate", bad, filepath.Join(dir, "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "2 of 2") {
		t.Errorf("err = %v", err)
	}
	if strings.Count(out, "✗") != 2 {
		t.Errorf("output = %q", out)
	}
}

func TestToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-secret")
	out, err := run(t, "token", "--name", "Ada")
	if err != nil {
		t.Fatal(err)
	}
	u, err := auth.NewService("cli-secret").ValidateToken(strings.TrimSpace(out))
	if err != nil {
		t.Fatal(err)
	}
	if u.DisplayName != "Ada" {
		t.Errorf("name = %q", u.DisplayName)
	}
}
