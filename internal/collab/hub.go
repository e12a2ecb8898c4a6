package collab

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/inamate/diagrammer/internal/document"
)

// maxReplay bounds how many operations a doc.request replays before the
// hub sends a snapshot instead.
const maxReplay = 128

// Loader returns the starting diagram for a room.
type Loader func(diagramID string) (*document.Diagram, error)

type Room struct {
	diagramID string
	clients   map[string]*Client // clientID -> client
	presence  *PresenceManager
	state     *DocumentState

	// opMu keeps acks and broadcasts in server sequence order.
	opMu sync.Mutex
}

func NewRoom(diagramID string, state *DocumentState) *Room {
	return &Room{
		diagramID: diagramID,
		clients:   make(map[string]*Client),
		presence:  NewPresenceManager(),
		state:     state,
	}
}

// Hub routes messages between the editors of each diagram. Documents
// outlive their rooms, so a diagram keeps its edits when everyone leaves.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[string]*Room // diagramID -> room
	docs       map[string]*DocumentState
	load       Loader
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

func NewHub(load Loader) *Hub {
	return &Hub{
		rooms:      make(map[string]*Room),
		docs:       make(map[string]*DocumentState),
		load:       load,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run serves registrations until ctx ends, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case <-ctx.Done():
			h.closeAll()
			return
		}
	}
}

func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
		client.close()
	}
}

func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) document(diagramID string) (*DocumentState, error) {
	if ds, ok := h.docs[diagramID]; ok {
		return ds, nil
	}
	d, err := h.load(diagramID)
	if err != nil {
		return nil, fmt.Errorf("load diagram %s: %w", diagramID, err)
	}
	ds := NewDocumentState(d)
	h.docs[diagramID] = ds
	return ds, nil
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DiagramID]
	if !ok {
		ds, err := h.document(client.DiagramID)
		if err != nil {
			h.mu.Unlock()
			slog.Error("open room", "error", err, "diagram", client.DiagramID)
			client.Send(errorMessage("diagram unavailable"))
			client.close()
			return
		}
		room = NewRoom(client.DiagramID, ds)
		h.rooms[client.DiagramID] = room
	}
	h.mu.Unlock()

	if msg, err := newMessage(TypeWelcome, WelcomePayload{
		ClientID:    client.ClientID,
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	}); err == nil {
		client.Send(msg)
	}

	// Join the broadcast stream and take the snapshot under opMu so the
	// client sees every operation after its doc.sync and none before.
	room.opMu.Lock()
	h.mu.Lock()
	room.clients[client.ClientID] = client
	h.mu.Unlock()
	h.sendSnapshot(client, room)
	room.opMu.Unlock()

	if stateMsg := room.presence.StateMessage(); stateMsg != nil {
		client.Send(stateMsg)
	}
	room.presence.Join(client.ClientID, client.UserID, client.DisplayName)

	joinMsg, _ := newMessage(TypePresenceJoin, PresenceJoinPayload{
		ClientID:    client.ClientID,
		UserID:      client.UserID,
		DisplayName: client.DisplayName,
	})
	joinMsg.UserID, joinMsg.ClientID = client.UserID, client.ClientID
	h.broadcastToRoom(client.DiagramID, joinMsg, client.ClientID)

	slog.Info("client joined", "user", client.UserID, "diagram", client.DiagramID)
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	room, ok := h.rooms[client.DiagramID]
	if !ok || room.clients[client.ClientID] != client {
		h.mu.Unlock()
		return
	}

	delete(room.clients, client.ClientID)
	client.close()
	room.presence.Leave(client.ClientID)

	if len(room.clients) == 0 {
		delete(h.rooms, client.DiagramID)
	}
	h.mu.Unlock()

	leaveMsg, _ := newMessage(TypePresenceLeave, PresenceLeavePayload{
		ClientID: client.ClientID,
		UserID:   client.UserID,
	})
	leaveMsg.UserID, leaveMsg.ClientID = client.UserID, client.ClientID
	h.broadcastToRoom(client.DiagramID, leaveMsg, "")

	slog.Info("client left", "user", client.UserID, "diagram", client.DiagramID)
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, room := range h.rooms {
		for _, c := range room.clients {
			c.close()
		}
		delete(h.rooms, id)
	}
}

func (h *Hub) handleMessage(sender *Client, msg *Message) {
	switch msg.Type {
	case TypePresenceUpdate:
		h.handlePresenceUpdate(sender, msg)
	case TypeOpSubmit:
		h.handleOpSubmit(sender, msg)
	case TypeDocRequest:
		h.handleDocRequest(sender, msg)
	default:
		slog.Warn("unknown message type", "type", msg.Type, "user", sender.UserID)
		sender.Send(errorMessage("unknown message type " + msg.Type))
	}
}

func (h *Hub) room(diagramID string) *Room {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.rooms[diagramID]
}

func (h *Hub) handlePresenceUpdate(sender *Client, msg *Message) {
	var presence PresencePayload
	if err := json.Unmarshal(msg.Payload, &presence); err != nil {
		slog.Warn("invalid presence payload", "error", err)
		return
	}

	room := h.room(sender.DiagramID)
	if room == nil {
		return
	}
	stored, ok := room.presence.Update(sender.ClientID, presence)
	if !ok {
		return
	}

	outMsg, err := newMessage(TypePresenceUpdate, stored)
	if err != nil {
		return
	}
	outMsg.UserID, outMsg.ClientID = sender.UserID, sender.ClientID
	h.broadcastToRoom(sender.DiagramID, outMsg, sender.ClientID)
}

func (h *Hub) handleOpSubmit(sender *Client, msg *Message) {
	var submit OperationSubmitPayload
	if err := json.Unmarshal(msg.Payload, &submit); err != nil {
		slog.Warn("invalid operation payload", "error", err, "user", sender.UserID)
		sender.Send(nackMessage("", "invalid payload"))
		return
	}
	op := submit.Operation

	room := h.room(sender.DiagramID)
	if room == nil {
		sender.Send(nackMessage(op.ID, "not in a room"))
		return
	}

	room.opMu.Lock()
	defer room.opMu.Unlock()

	seq, err := room.state.ApplyOperation(op)
	if err != nil {
		slog.Warn("operation rejected", "error", err, "op", op.ID, "type", op.Type, "user", sender.UserID)
		sender.Send(nackMessage(op.ID, err.Error()))
		return
	}
	slog.Debug("operation applied", "op", op.ID, "type", op.Type, "seq", seq)

	ack, _ := newMessage(TypeOpAck, OperationAckPayload{
		OperationID:     op.ID,
		ServerSeq:       seq,
		ServerTimestamp: GetServerTimestamp(),
	})
	ack.Seq = seq
	sender.Send(ack)

	out, _ := newMessage(TypeOpBroadcast, OperationBroadcastPayload{
		Operation: op,
		UserID:    sender.UserID,
		ServerSeq: seq,
	})
	out.Seq = seq
	out.UserID = sender.UserID
	h.broadcastToRoom(sender.DiagramID, out, sender.ClientID)
}

// sendSnapshot sends the whole diagram. The caller holds room.opMu.
func (h *Hub) sendSnapshot(client *Client, room *Room) {
	d, seq, err := room.state.Snapshot()
	if err != nil {
		slog.Error("snapshot diagram", "error", err, "diagram", room.diagramID)
		client.Send(errorMessage("snapshot failed"))
		return
	}
	msg, err := newMessage(TypeDocSync, DocSyncPayload{Diagram: d, ServerSeq: seq})
	if err != nil {
		return
	}
	msg.Seq = seq
	client.Send(msg)
}

// handleDocRequest replays the operations a client missed, or sends a
// fresh snapshot when it is too far behind to catch up by replay.
func (h *Hub) handleDocRequest(sender *Client, msg *Message) {
	var req DocRequestPayload
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		req.ServerSeq = -1
	}

	room := h.room(sender.DiagramID)
	if room == nil {
		return
	}

	room.opMu.Lock()
	defer room.opMu.Unlock()

	head := room.state.ServerSeq()
	if req.ServerSeq < 0 || req.ServerSeq > head || head-req.ServerSeq > maxReplay {
		h.sendSnapshot(sender, room)
		return
	}
	for i, op := range room.state.OperationsSince(req.ServerSeq) {
		seq := req.ServerSeq + int64(i) + 1
		out, err := newMessage(TypeOpBroadcast, OperationBroadcastPayload{Operation: op, ServerSeq: seq})
		if err != nil {
			return
		}
		out.Seq = seq
		sender.Send(out)
	}
}

func (h *Hub) broadcastToRoom(diagramID string, msg *Message, excludeClientID string) {
	h.mu.RLock()
	room, ok := h.rooms[diagramID]
	if !ok {
		h.mu.RUnlock()
		return
	}

	clients := make([]*Client, 0, len(room.clients))
	for _, c := range room.clients {
		if c.ClientID != excludeClientID {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.Send(msg)
	}
}

func nackMessage(opID, reason string) *Message {
	msg, _ := newMessage(TypeOpNack, OperationNackPayload{OperationID: opID, Reason: reason})
	return msg
}

func errorMessage(text string) *Message {
	msg, _ := newMessage(TypeError, ErrorPayload{Message: text})
	return msg
}
