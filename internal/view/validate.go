package view

import (
	"errors"
	"fmt"
)

// ErrInvalidView wraps every capability violation found by Validate.
var ErrInvalidView = errors.New("invalid view")

// Validate checks that v's capabilities are consistent with its kind.
func Validate(v View) error {
	if v == nil {
		return fmt.Errorf("%w: nil view", ErrInvalidView)
	}
	w, h := v.MinSize()
	if w < 0 || h < 0 {
		return fmt.Errorf("%w: %s has negative minimum size %vx%v", ErrInvalidView, v.ID(), w, h)
	}
	switch v.Kind() {
	case KindNode:
	case KindEdge:
		e, ok := v.(Edge)
		if !ok {
			return fmt.Errorf("%w: %s is an edge without points", ErrInvalidView, v.ID())
		}
		n := len(e.Points())
		if n < 2 {
			return fmt.Errorf("%w: edge %s has %d points", ErrInvalidView, v.ID(), n)
		}
		if e.LineStyle() == LineDirect && n != 2 {
			return fmt.Errorf("%w: direct edge %s has %d points", ErrInvalidView, v.ID(), n)
		}
	case KindParasitic:
		p, ok := v.(Parasitic)
		if !ok || p.Host() == nil {
			return fmt.Errorf("%w: parasitic view %s has no host", ErrInvalidView, v.ID())
		}
	default:
		return fmt.Errorf("%w: %s has kind %d", ErrInvalidView, v.ID(), v.Kind())
	}
	return nil
}
