// Package manip owns the lifecycle of a single drag on one view: Begin on
// pointer-down, Drag on every move (redrawing the skeleton), End on
// pointer-up emitting at most one committed event.
package manip

import (
	"log/slog"

	"github.com/inamate/diagrammer/internal/containment"
	"github.com/inamate/diagrammer/internal/event"
	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/pointer"
	"github.com/inamate/diagrammer/internal/view"
)

// Env is the read-only state shared by everything taking part in one
// gesture. The editor snapshots it at pointer-down.
type Env struct {
	Transform   geom.Transform
	Region      geom.Rect // permitted region; empty means unbounded
	Tolerance   float64   // handle hit tolerance in device pixels
	MinDrag     float64   // device pixels before a press counts as a drag
	Canvas      overlay.Canvas
	Layer       view.Layer
	Sink        event.Sink
	Containment *containment.Proxy
	Logger      *slog.Logger
}

// Exceeds reports whether cur is far enough from start to be a drag.
func (env *Env) Exceeds(start, cur pointer.Event) bool {
	return cur.Device.Distance(start.Device) > env.MinDrag
}

func (env *Env) logger() *slog.Logger {
	if env.Logger == nil {
		return slog.Default()
	}
	return env.Logger
}

func (env *Env) modelTolerance() float64 {
	return env.Transform.ToModel(env.Tolerance)
}

// Manipulator is the per-kind drag algorithm.
type Manipulator interface {
	// Begin starts a drag of v at e and reports whether v can be dragged
	// from there.
	Begin(env *Env, v view.View, e pointer.Event) bool
	Drag(e pointer.Event)
	End(e pointer.Event)
	// Cancel erases feedback and abandons the drag without emitting.
	Cancel()
}

var byKind = map[view.Kind]func() Manipulator{
	view.KindNode:      func() Manipulator { return NewNode() },
	view.KindEdge:      func() Manipulator { return NewEdge() },
	view.KindParasitic: func() Manipulator { return NewParasitic() },
}

// For returns a fresh manipulator for kind, or nil for an unknown kind.
func For(kind view.Kind) Manipulator {
	if f, ok := byKind[kind]; ok {
		return f()
	}
	return nil
}

// Bind validates v, picks the manipulator for its kind and begins the drag.
// It returns nil when v is invalid or cannot be dragged from e.
func Bind(env *Env, v view.View, e pointer.Event) Manipulator {
	if err := view.Validate(v); err != nil {
		env.logger().Warn("refusing to manipulate view", "error", err)
		return nil
	}
	m := For(v.Kind())
	if m == nil || !m.Begin(env, v, e) {
		return nil
	}
	return m
}

func emitMove(env *Env, views []view.View, dx, dy float64, container view.View, changed bool) {
	if changed {
		env.Sink.Emit(event.ContainerViewChanged{Views: views, DX: dx, DY: dy, Container: container})
		return
	}
	env.Sink.Emit(event.ViewMoved{Views: views, DX: dx, DY: dy})
}
