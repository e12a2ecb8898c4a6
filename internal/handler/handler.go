// Package handler turns pointer gestures into selection changes and
// manipulator sessions. The editor forwards every pointer callback to the
// active handler.
package handler

import (
	"github.com/inamate/diagrammer/internal/hover"
	"github.com/inamate/diagrammer/internal/manip"
	"github.com/inamate/diagrammer/internal/pointer"
)

// Handler is one editing mode.
type Handler interface {
	PointerDown(env *manip.Env, e pointer.Event)
	PointerDrag(e pointer.Event)
	PointerUp(e pointer.Event)
	// Hover returns the cursor for a pointer move with no gesture running.
	Hover(env *manip.Env, e pointer.Event) hover.Cursor
	// Active reports whether a gesture is running.
	Active() bool
	// Cancel abandons the running gesture without emitting.
	Cancel()
}
