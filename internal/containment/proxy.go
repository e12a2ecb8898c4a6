// Package containment tracks, during a node drag, which view under the
// pointer would become the new container of the dragged views, and keeps
// its highlight on the overlay.
package containment

import (
	"log/slog"

	"github.com/inamate/diagrammer/internal/geom"
	"github.com/inamate/diagrammer/internal/overlay"
	"github.com/inamate/diagrammer/internal/view"
)

// Proxy is a two-state machine: inactive between drags, active during a
// drag that may reparent its views.
type Proxy struct {
	layer  view.Layer
	canvas overlay.Canvas
	logger *slog.Logger

	active    bool
	dragged   []view.View
	original  view.View
	candidate view.View
}

// New creates an inactive proxy.
func New(layer view.Layer, canvas overlay.Canvas, logger *slog.Logger) *Proxy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Proxy{layer: layer, canvas: canvas, logger: logger}
}

// BeginHandling activates the proxy for a drag of views. It stays inactive
// and returns false unless every view shares the same container.
func (p *Proxy) BeginHandling(views []view.View) bool {
	if len(views) == 0 {
		return false
	}
	original := views[0].Container()
	for _, v := range views[1:] {
		if !view.Same(v.Container(), original) {
			return false
		}
	}
	p.active = true
	p.dragged = views
	p.original = original
	p.candidate = original
	return true
}

// Active reports whether a drag is being tracked.
func (p *Proxy) Active() bool {
	return p.active
}

// Original returns the shared container the drag started in.
func (p *Proxy) Original() view.View {
	return p.original
}

// Candidate returns the currently highlighted container; nil is the diagram.
func (p *Proxy) Candidate() view.View {
	return p.candidate
}

// Update re-evaluates the candidate under pt and redraws the highlight.
func (p *Proxy) Update(pt geom.Point) {
	if !p.active {
		return
	}
	next := p.original
	if target := p.layer.ViewAt(pt, p.dragged...); target == nil || p.accepts(target) {
		next = target
	}
	if !view.Same(next, p.candidate) {
		p.logger.Debug("container candidate changed", "from", idOf(p.candidate), "to", idOf(next))
	}
	p.canvas.Clear(overlay.LayerHighlight)
	p.candidate = next
	if next != nil {
		p.canvas.StrokeRect(overlay.LayerHighlight, next.BoundingBox())
	}
}

// accepts applies the structural and the semantic check for every
// dragged view.
func (p *Proxy) accepts(container view.View) bool {
	for _, v := range p.dragged {
		if !p.layer.CanContainKind(container, v) || !p.layer.CanContainView(container, v) {
			return false
		}
	}
	return true
}

// Finish erases the highlight and returns the container the drop lands in
// and whether it differs from the original one.
func (p *Proxy) Finish() (view.View, bool) {
	if !p.active {
		return nil, false
	}
	p.canvas.Clear(overlay.LayerHighlight)
	return p.candidate, !view.Same(p.candidate, p.original)
}

// EndHandling returns the proxy to the inactive state.
func (p *Proxy) EndHandling() {
	if p.active {
		p.canvas.Clear(overlay.LayerHighlight)
	}
	p.active = false
	p.dragged = nil
	p.original = nil
	p.candidate = nil
}

func idOf(v view.View) string {
	if v == nil {
		return ""
	}
	return v.ID()
}
