package view

import (
	"errors"
	"fmt"
)

// Kind is the structural shape family. Manipulators are bound by Kind alone.
type Kind int

const (
	KindNode Kind = iota
	KindEdge
	KindParasitic
)

var kindNames = map[Kind]string{
	KindNode:      "node",
	KindEdge:      "edge",
	KindParasitic: "parasitic",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// SizableMode says which handles a shape exposes for resizing.
type SizableMode int

const (
	SizableNone SizableMode = iota
	SizableFree
	SizableRatio
	SizableHorizontal
	SizableVertical
)

// Corners reports whether corner handles apply.
func (m SizableMode) Corners() bool {
	return m == SizableFree || m == SizableRatio
}

// Horizontal reports whether the left and right mid handles apply.
func (m SizableMode) Horizontal() bool {
	return m == SizableFree || m == SizableHorizontal
}

// Vertical reports whether the top and bottom mid handles apply.
func (m SizableMode) Vertical() bool {
	return m == SizableFree || m == SizableVertical
}

// MovableMode restricts the axes a shape may be dragged along.
type MovableMode int

const (
	MovableNone MovableMode = iota
	MovableFree
	MovableHorizontal
	MovableVertical
)

// AlongX reports whether horizontal movement is allowed.
func (m MovableMode) AlongX() bool {
	return m == MovableFree || m == MovableHorizontal
}

// AlongY reports whether vertical movement is allowed.
func (m MovableMode) AlongY() bool {
	return m == MovableFree || m == MovableVertical
}

// LineStyle selects the editing rules of an edge.
type LineStyle int

const (
	LineRectilinear LineStyle = iota
	LineRoundRect
	LineDirect
	LineOblique
)

// Orthogonal reports whether the style keeps right angles.
func (s LineStyle) Orthogonal() bool {
	return s == LineRectilinear || s == LineRoundRect
}

// EdgePosition is where a parasitic view hangs on its host edge.
type EdgePosition int

const (
	EdgeMiddle EdgePosition = iota
	EdgeHead
	EdgeTail
)

var (
	sizableNames  = []string{"none", "free", "ratio", "horizontal", "vertical"}
	movableNames  = []string{"none", "free", "horizontal", "vertical"}
	lineNames     = []string{"rectilinear", "roundrect", "direct", "oblique"}
	positionNames = []string{"middle", "head", "tail"}
)

func (m SizableMode) String() string  { return nameOf(sizableNames, int(m)) }
func (m MovableMode) String() string  { return nameOf(movableNames, int(m)) }
func (s LineStyle) String() string    { return nameOf(lineNames, int(s)) }
func (p EdgePosition) String() string { return nameOf(positionNames, int(p)) }

func nameOf(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return "unknown"
	}
	return names[i]
}

// ErrUnknownMode is returned when a capability name is not recognised.
var ErrUnknownMode = errors.New("unknown capability mode")

func parse(names []string, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// ParseSizable parses a sizable mode name; "" means free.
func ParseSizable(s string) (SizableMode, error) {
	if s == "" {
		return SizableFree, nil
	}
	i, err := parse(sizableNames, s)
	return SizableMode(i), err
}

// ParseMovable parses a movable mode name; "" means free.
func ParseMovable(s string) (MovableMode, error) {
	if s == "" {
		return MovableFree, nil
	}
	i, err := parse(movableNames, s)
	return MovableMode(i), err
}

// ParseLineStyle parses a line style name; "" means rectilinear.
func ParseLineStyle(s string) (LineStyle, error) {
	if s == "" {
		return LineRectilinear, nil
	}
	i, err := parse(lineNames, s)
	return LineStyle(i), err
}

// ParseEdgePosition parses an edge position name; "" means middle.
func ParseEdgePosition(s string) (EdgePosition, error) {
	if s == "" {
		return EdgeMiddle, nil
	}
	i, err := parse(positionNames, s)
	return EdgePosition(i), err
}
