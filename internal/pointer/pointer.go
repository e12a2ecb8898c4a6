// Package pointer defines the normalized pointer event handed from the
// editor to handlers and manipulators.
package pointer

import "github.com/inamate/diagrammer/internal/geom"

// Button identifies a mouse button, numbered as in DOM MouseEvent.button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

// Event is a pointer event in both coordinate spaces.
type Event struct {
	Device     geom.Point // canvas CSS pixels
	Model      geom.Point // Device reverse-transformed, not grid snapped
	Button     Button
	ClickCount int
	Shift      bool
	Ctrl       bool
	Alt        bool
	Meta       bool
}

// At builds a left-button event at model point p under transform t.
func At(t geom.Transform, p geom.Point) Event {
	return Event{Device: t.Forward(p), Model: p, Button: ButtonLeft, ClickCount: 1}
}

// WithShift returns a copy of e with the shift modifier set.
func (e Event) WithShift() Event {
	e.Shift = true
	return e
}

// WithClicks returns a copy of e with the given click count.
func (e Event) WithClicks(n int) Event {
	e.ClickCount = n
	return e
}
