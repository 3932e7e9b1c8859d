package main

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	maxConnsPerIP = 5
	maxTotalConns = 1000
)

// Hub manages all connected clients, room subscriptions and broadcast
// fan-out. The simulation engine never talks to the network directly;
// the hub decides how and when snapshots reach clients.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client

	rooms    *Registry
	sessions *SessionDirectory
	sched    *Scheduler

	// Room subscribers: roomID -> clients receiving its broadcasts
	subMu sync.RWMutex
	subs  map[string]map[*Client]bool

	// Connection limiting (mutex-protected, accessed from HTTP handlers)
	connMu     sync.Mutex
	ipConns    map[string]int
	totalConns int
}

// NewHub creates a Hub with its registry, session directory and scheduler
func NewHub() *Hub {
	h := &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, 64),
		unregister: make(chan *Client, 64),
		rooms:      NewRegistry(),
		sessions:   NewSessionDirectory(),
		subs:       make(map[string]map[*Client]bool),
		ipConns:    make(map[string]int),
	}
	h.sched = NewScheduler(h.rooms, h.BroadcastTick, h.closeRoom)
	return h
}

func (h *Hub) CanAccept(ip string) bool {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	if h.totalConns >= maxTotalConns {
		return false
	}
	if h.ipConns[ip] >= maxConnsPerIP {
		return false
	}
	return true
}

func (h *Hub) TrackConnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]++
	h.totalConns++
}

func (h *Hub) TrackDisconnect(ip string) {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	h.ipConns[ip]--
	if h.ipConns[ip] <= 0 {
		delete(h.ipConns, ip)
	}
	h.totalConns--
}

// Run processes register/unregister events
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			// A dropped connection leaves its room like an explicit leave
			h.LeaveRoom(client)
		}
	}
}

// LeaveRoom removes a client's player from its room, destroying the room
// when it empties. Clients without a membership are a silent no-op.
func (h *Hub) LeaveRoom(c *Client) {
	m, ok := h.sessions.Get(c.sessionID)
	if !ok {
		return
	}
	h.sessions.Delete(c.sessionID)
	h.Unsubscribe(m.RoomID, c)

	room := h.rooms.Get(m.RoomID)
	if room == nil {
		return
	}
	if room.RemovePlayer(m.PlayerID) {
		h.rooms.Remove(m.RoomID)
		h.sched.StopRoom(m.RoomID)
		h.closeRoom(m.RoomID)
		return
	}
	h.BroadcastJSON(m.RoomID, Envelope{T: MsgRoomUpdate, Data: room.Snapshot()})
}

// Subscribe adds a client to a room's broadcast set
func (h *Hub) Subscribe(roomID string, c *Client) {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	if h.subs[roomID] == nil {
		h.subs[roomID] = make(map[*Client]bool)
	}
	h.subs[roomID][c] = true
}

// Unsubscribe removes a client from a room's broadcast set
func (h *Hub) Unsubscribe(roomID string, c *Client) {
	h.subMu.Lock()
	defer h.subMu.Unlock()
	if set, ok := h.subs[roomID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, roomID)
		}
	}
}

// subscribers returns a stable copy of a room's broadcast set
func (h *Hub) subscribers(roomID string) []*Client {
	h.subMu.RLock()
	defer h.subMu.RUnlock()
	set := h.subs[roomID]
	out := make([]*Client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// BroadcastJSON sends an envelope to every subscriber of a room,
// marshaling once
func (h *Hub) BroadcastJSON(roomID string, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	for _, c := range h.subscribers(roomID) {
		c.SendRaw(data)
	}
}

// BroadcastTick sends the room's current snapshot as a compact msgpack
// binary frame. This is the per-tick game-update path.
func (h *Hub) BroadcastTick(roomID string) {
	room := h.rooms.Get(roomID)
	if room == nil {
		return
	}
	data, err := msgpack.Marshal(room.Snapshot())
	if err != nil {
		log.Printf("msgpack marshal error: %v", err)
		return
	}
	for _, c := range h.subscribers(roomID) {
		c.SendBinary(data)
	}
}

// closeRoom notifies any remaining subscribers and drops the set
func (h *Hub) closeRoom(roomID string) {
	h.BroadcastJSON(roomID, Envelope{T: MsgRoomClosed, Data: RoomClosedMsg{RoomID: roomID}})
	h.subMu.Lock()
	delete(h.subs, roomID)
	h.subMu.Unlock()
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// TotalConns returns the tracked connection count
func (h *Hub) TotalConns() int {
	h.connMu.Lock()
	defer h.connMu.Unlock()
	return h.totalConns
}
