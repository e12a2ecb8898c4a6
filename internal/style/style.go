// Package style maps view categories to the colours they are painted in.
// Sheets load from TOML:
//
//	selection = "#4285f4"
//
//	[default]
//	fill = "#ffffff"
//	stroke = "#333333"
//
//	[category.class]
//	fill = "#fffdf4"
package style

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Style is the paint of one category. Empty fields fall back to the
// sheet default.
type Style struct {
	Fill   string `toml:"fill"`
	Stroke string `toml:"stroke"`
}

// Sheet holds the paint for every category.
type Sheet struct {
	Selection  string           `toml:"selection"`
	Default    Style            `toml:"default"`
	Categories map[string]Style `toml:"category"`
}

// Default returns the built-in sheet.
func Default() *Sheet {
	return &Sheet{
		Selection: "#4285f4",
		Default:   Style{Fill: "#ffffff", Stroke: "#333333"},
		Categories: map[string]Style{
			"package": {Fill: "#f3f6fc", Stroke: "#5b6b8c"},
			"class":   {Fill: "#fffdf4", Stroke: "#333333"},
			"note":    {Fill: "#fff7c2", Stroke: "#a08c2c"},
		},
	}
}

// For returns the paint of category.
func (s *Sheet) For(category string) Style {
	st := s.Categories[category]
	if st.Fill == "" {
		st.Fill = s.Default.Fill
	}
	if st.Stroke == "" {
		st.Stroke = s.Default.Stroke
	}
	return st
}

// Decode reads a sheet layered over Default. Categories named in r replace
// the built-in entry of the same name.
func Decode(r io.Reader) (*Sheet, error) {
	s := Default()
	if _, err := toml.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("decode style sheet: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load reads a sheet from a TOML file.
func Load(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Validate checks that every colour parses.
func (s *Sheet) Validate() error {
	check := func(where, c string) error {
		if c == "" {
			return nil
		}
		if _, err := ParseColor(c); err != nil {
			return fmt.Errorf("%s: %w", where, err)
		}
		return nil
	}
	if err := check("selection", s.Selection); err != nil {
		return err
	}
	if err := check("default.fill", s.Default.Fill); err != nil {
		return err
	}
	if err := check("default.stroke", s.Default.Stroke); err != nil {
		return err
	}
	for name, st := range s.Categories {
		if err := check("category."+name+".fill", st.Fill); err != nil {
			return err
		}
		if err := check("category."+name+".stroke", st.Stroke); err != nil {
			return err
		}
	}
	return nil
}

// ParseColor reads #rgb, #rrggbb or #rrggbbaa.
func ParseColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid colour %q", s)
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
