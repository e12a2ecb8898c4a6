package event

import (
	"log/slog"

	"github.com/inamate/diagrammer/internal/view"
)

// Sink receives committed events.
type Sink interface {
	Emit(ev Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev Event)

func (f SinkFunc) Emit(ev Event) { f(ev) }

// Discard drops every event.
var Discard Sink = SinkFunc(func(Event) {})

// Logged forwards to next and logs every mutation at debug level.
func Logged(next Sink, logger *slog.Logger) Sink {
	if logger == nil {
		return next
	}
	return SinkFunc(func(ev Event) {
		if Mutates(ev) {
			logger.Debug("edit committed", "type", ev.Type(), "views", subjects(ev))
		}
		next.Emit(ev)
	})
}

func subjects(ev Event) []string {
	switch e := ev.(type) {
	case ViewMoved:
		return view.IDs(e.Views)
	case ContainerViewChanged:
		return view.IDs(e.Views)
	case NodeResized:
		return []string{e.Node.ID()}
	case EdgeModified:
		return []string{e.Edge.ID()}
	case EdgeReconnected:
		return []string{e.Edge.ID()}
	case ParasiticViewMoved:
		return []string{e.View.ID()}
	}
	return nil
}

// Recorder keeps every event it receives.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Emit(ev Event) {
	r.Events = append(r.Events, ev)
}

// Last returns the most recent event, or nil.
func (r *Recorder) Last() Event {
	if len(r.Events) == 0 {
		return nil
	}
	return r.Events[len(r.Events)-1]
}

// OfType returns the recorded events of type t.
func (r *Recorder) OfType(t Type) []Event {
	var out []Event
	for _, ev := range r.Events {
		if ev.Type() == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset forgets recorded events.
func (r *Recorder) Reset() {
	r.Events = nil
}
