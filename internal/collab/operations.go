package collab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/inamate/diagrammer/internal/document"
	"github.com/inamate/diagrammer/internal/typeid"
)

var ErrDuplicateOp = errors.New("operation already applied")

// DocumentState holds the authoritative diagram for a room.
type DocumentState struct {
	mu        sync.RWMutex
	diagram   *document.Diagram
	serverSeq int64
	opLog     []document.Operation
	seen      map[string]bool
}

func NewDocumentState(d *document.Diagram) *DocumentState {
	return &DocumentState{
		diagram: d,
		seen:    make(map[string]bool),
	}
}

// ApplyOperation applies op and returns its server sequence. A rejected
// operation leaves the diagram and the sequence unchanged.
func (ds *DocumentState) ApplyOperation(op document.Operation) (int64, error) {
	if err := typeid.Validate(op.ID, typeid.PrefixOp); err != nil {
		return 0, err
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	if ds.seen[op.ID] {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateOp, op.ID)
	}
	if err := ds.diagram.Apply(op); err != nil {
		return 0, err
	}

	ds.serverSeq++
	ds.seen[op.ID] = true
	ds.opLog = append(ds.opLog, op)

	return ds.serverSeq, nil
}

// Snapshot returns a deep copy of the diagram with the sequence it reflects.
func (ds *DocumentState) Snapshot() (*document.Diagram, int64, error) {
	ds.mu.RLock()
	data, err := ds.diagram.JSON()
	seq := ds.serverSeq
	ds.mu.RUnlock()
	if err != nil {
		return nil, 0, err
	}

	d, err := document.Parse(data)
	if err != nil {
		return nil, 0, err
	}
	return d, seq, nil
}

// OperationsSince returns the logged operations after seq.
func (ds *DocumentState) OperationsSince(seq int64) []document.Operation {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	if seq < 0 {
		seq = 0
	}
	if seq >= int64(len(ds.opLog)) {
		return nil
	}
	out := make([]document.Operation, len(ds.opLog)-int(seq))
	copy(out, ds.opLog[seq:])
	return out
}

func (ds *DocumentState) ServerSeq() int64 {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return ds.serverSeq
}

// GetServerTimestamp returns the current server timestamp
func GetServerTimestamp() int64 {
	return time.Now().UnixMilli()
}
