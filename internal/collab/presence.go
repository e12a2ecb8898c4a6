package collab

import (
	"log/slog"
	"maps"
	"slices"
	"sync"
)

// PresenceManager tracks what each connection in a room last reported.
// Entries are keyed by client id so one user may edit from several tabs.
type PresenceManager struct {
	mu      sync.RWMutex
	entries map[string]PresencePayload
}

func NewPresenceManager() *PresenceManager {
	return &PresenceManager{entries: make(map[string]PresencePayload)}
}

// Join records a connection before it has reported a cursor.
func (pm *PresenceManager) Join(clientID, userID, displayName string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.entries[clientID] = PresencePayload{UserID: userID, DisplayName: displayName}
}

// Update stores the cursor and selection of a joined connection and returns
// the entry as peers should see it. Identity fields are never taken from
// the client.
func (pm *PresenceManager) Update(clientID string, p PresencePayload) (PresencePayload, bool) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	cur, ok := pm.entries[clientID]
	if !ok {
		return PresencePayload{}, false
	}
	cur.Selection = slices.Clone(p.Selection)
	cur.Cursor = nil
	if p.Cursor != nil {
		c := *p.Cursor
		cur.Cursor = &c
	}
	pm.entries[clientID] = cur
	return cur, true
}

func (pm *PresenceManager) Leave(clientID string) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	delete(pm.entries, clientID)
}

// Snapshot copies every entry.
func (pm *PresenceManager) Snapshot() map[string]PresencePayload {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	out := maps.Clone(pm.entries)
	for id, p := range out {
		p.Selection = slices.Clone(p.Selection)
		if p.Cursor != nil {
			c := *p.Cursor
			p.Cursor = &c
		}
		out[id] = p
	}
	return out
}

func (pm *PresenceManager) StateMessage() *Message {
	msg, err := newMessage(TypePresenceState, PresenceStatePayload{Presences: pm.Snapshot()})
	if err != nil {
		slog.Error("marshal presence state", "error", err)
		return nil
	}
	return msg
}
