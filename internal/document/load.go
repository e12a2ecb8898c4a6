package document

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/diagrammer/internal/view"
)

// ErrInvalidDiagram wraps every structural problem found by Validate.
var ErrInvalidDiagram = errors.New("invalid diagram")

// Parse decodes and validates a diagram.
func Parse(data []byte) (*Diagram, error) {
	var d Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to decode diagram: %w", err)
	}
	if d.Views == nil {
		d.Views = map[string]*ViewNode{}
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// JSON encodes the diagram.
func (d *Diagram) JSON() ([]byte, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("failed to encode diagram: %w", err)
	}
	return data, nil
}

// Validate checks that the tree is consistent: every view listed exactly
// once under its parent, references resolve, and capabilities are sane.
func (d *Diagram) Validate() error {
	listed := map[string]int{}
	count := func(ids []string) {
		for _, id := range ids {
			listed[id]++
		}
	}
	count(d.Root)
	for _, n := range d.Views {
		count(n.Children)
	}

	for id, n := range d.Views {
		if n == nil || n.ID != id {
			return fmt.Errorf("%w: view key %q does not match its id", ErrInvalidDiagram, id)
		}
		if listed[id] != 1 {
			return fmt.Errorf("%w: view %s listed %d times", ErrInvalidDiagram, id, listed[id])
		}
		if n.Parent != "" {
			p, ok := d.Views[n.Parent]
			if !ok {
				return fmt.Errorf("%w: view %s has unknown parent %s", ErrInvalidDiagram, id, n.Parent)
			}
			if !containsID(p.Children, id) {
				return fmt.Errorf("%w: view %s missing from parent %s", ErrInvalidDiagram, id, n.Parent)
			}
		} else if !containsID(d.Root, id) {
			return fmt.Errorf("%w: top-level view %s missing from root", ErrInvalidDiagram, id)
		}
		if err := d.validateView(n); err != nil {
			return err
		}
	}
	for id := range listed {
		if _, ok := d.Views[id]; !ok {
			return fmt.Errorf("%w: unknown view %s listed", ErrInvalidDiagram, id)
		}
	}
	return nil
}

func (d *Diagram) validateView(n *ViewNode) error {
	switch n.Kind {
	case ViewKindNode, ViewKindEdge, ViewKindLabel:
	default:
		return fmt.Errorf("%w: view %s has kind %q", ErrInvalidDiagram, n.ID, n.Kind)
	}
	if _, err := view.ParseSizable(n.Sizable); err != nil {
		return fmt.Errorf("%w: view %s: %w", ErrInvalidDiagram, n.ID, err)
	}
	if _, err := view.ParseMovable(n.Movable); err != nil {
		return fmt.Errorf("%w: view %s: %w", ErrInvalidDiagram, n.ID, err)
	}
	if _, err := view.ParseLineStyle(n.LineStyle); err != nil {
		return fmt.Errorf("%w: view %s: %w", ErrInvalidDiagram, n.ID, err)
	}
	if _, err := view.ParseEdgePosition(n.Position); err != nil {
		return fmt.Errorf("%w: view %s: %w", ErrInvalidDiagram, n.ID, err)
	}
	for _, ref := range []string{n.Tail, n.Head, n.Host} {
		if ref == "" {
			continue
		}
		if _, ok := d.Views[ref]; !ok {
			return fmt.Errorf("%w: view %s references unknown view %s", ErrInvalidDiagram, n.ID, ref)
		}
	}
	if err := view.Validate(d.wrap(n)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDiagram, err)
	}
	return nil
}

func containsID(ids []string, id string) bool {
	for _, s := range ids {
		if s == id {
			return true
		}
	}
	return false
}
