package main

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = (pongWait * 9) / 10
	maxMessageSize    = 4096
	sendBufSize       = 256
	maxMessagesPerSec = 50
	maxNameLen        = 16
)

// Client represents a WebSocket connection. Its session ID doubles as the
// player ID inside whichever room it joins.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	sessionID  string
	remoteAddr string
	msgCount   int
	msgResetAt time.Time
}

// NewClient creates a new Client with a fresh session ID
func NewClient(hub *Hub, conn *websocket.Conn, remoteAddr string) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, sendBufSize),
		sessionID:  GenerateID(8),
		remoteAddr: remoteAddr,
	}
}

// ReadPump reads messages from the WebSocket connection
func (c *Client) ReadPump() {
	defer func() {
		c.hub.TrackDisconnect(c.remoteAddr)
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("ws error: %v", err)
			}
			break
		}

		// Rate limiting
		now := time.Now()
		if now.After(c.msgResetAt) {
			c.msgCount = 0
			c.msgResetAt = now.Add(time.Second)
		}
		c.msgCount++
		if c.msgCount > maxMessagesPerSec {
			log.Printf("rate limit exceeded for %s, disconnecting", c.remoteAddr)
			break
		}

		c.handleMessage(message)
	}
}

// WritePump writes messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			// Check for binary marker (0xFF prefix from SendBinary)
			var err error
			if len(message) > 0 && message[0] == 0xFF {
				err = c.conn.WriteMessage(websocket.BinaryMessage, message[1:])
			} else {
				err = c.conn.WriteMessage(websocket.TextMessage, message)
			}
			if err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendJSON sends a JSON message to the client
func (c *Client) SendJSON(msg interface{}) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("marshal error: %v", err)
		return
	}
	c.SendRaw(data)
}

// SendRaw sends pre-marshaled bytes as a text message to the client
func (c *Client) SendRaw(data []byte) {
	defer func() { recover() }()
	select {
	case c.send <- data:
	default:
		// Client too slow, drop message
	}
}

// SendBinary sends pre-marshaled bytes as a binary WebSocket message.
// Prefixes with 0xFF marker byte so WritePump can distinguish from text.
func (c *Client) SendBinary(data []byte) {
	defer func() { recover() }()
	msg := make([]byte, len(data)+1)
	msg[0] = 0xFF
	copy(msg[1:], data)
	select {
	case c.send <- msg:
	default:
	}
}

// handleMessage routes incoming intents (single-pass decode via InEnvelope)
func (c *Client) handleMessage(raw []byte) {
	var env InEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("unmarshal error: %v", err)
		return
	}

	switch env.T {
	case MsgJoinRoom:
		c.handleJoin(env.D)
	case MsgPlayerMove:
		c.handleMove(env.D)
	case MsgThrowBall:
		c.handleThrow(env.D)
	case MsgStartGame:
		c.handleStart()
	case MsgPauseGame:
		c.handlePause()
	case MsgResumeGame:
		c.handleResume()
	case MsgLeaveRoom:
		c.hub.LeaveRoom(c)
	}
}

// room resolves the client's current room via the session directory.
// Intents from sessions with no membership are silent no-ops.
func (c *Client) room() (*Room, bool) {
	m, ok := c.hub.sessions.Get(c.sessionID)
	if !ok {
		return nil, false
	}
	room := c.hub.rooms.Get(m.RoomID)
	if room == nil {
		return nil, false
	}
	return room, true
}

func (c *Client) handleJoin(data json.RawMessage) {
	var msg JoinRoomMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	if msg.RoomID == "" {
		c.SendJSON(Envelope{T: MsgJoinResult, Data: JoinResultMsg{Success: false, Error: "room id required"}})
		return
	}
	// A session plays in one room at a time
	c.hub.LeaveRoom(c)

	name := msg.PlayerName
	if name == "" {
		name = "Player"
	}
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}

	room := c.hub.rooms.GetOrCreate(msg.RoomID)
	_, err := room.AddPlayer(c.sessionID, name)
	if err != nil {
		c.SendJSON(Envelope{T: MsgJoinResult, Data: JoinResultMsg{Success: false, Error: err.Error()}})
		return
	}
	c.hub.sessions.Set(c.sessionID, msg.RoomID, c.sessionID)
	c.hub.Subscribe(msg.RoomID, c)

	snap := room.Snapshot()
	c.SendJSON(Envelope{T: MsgJoinResult, Data: JoinResultMsg{Success: true, GameState: &snap}})
	c.hub.BroadcastJSON(msg.RoomID, Envelope{T: MsgRoomUpdate, Data: snap})
}

func (c *Client) handleMove(data json.RawMessage) {
	var msg MoveMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room, ok := c.room()
	if !ok {
		return
	}
	room.UpdatePlayerPosition(c.sessionID, msg.X, msg.Y, msg.VX, msg.VY)
	c.hub.BroadcastJSON(room.ID(), Envelope{T: MsgRoomUpdate, Data: room.Snapshot()})
}

func (c *Client) handleThrow(data json.RawMessage) {
	var msg ThrowMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}
	room, ok := c.room()
	if !ok {
		return
	}
	room.ThrowBall(msg.Direction, msg.Power)
	c.hub.BroadcastJSON(room.ID(), Envelope{T: MsgRoomUpdate, Data: room.Snapshot()})
}

func (c *Client) handleStart() {
	room, ok := c.room()
	if !ok {
		return
	}
	if err := room.StartGame(); err != nil {
		c.SendJSON(Envelope{T: MsgError, Data: ErrorMsg{Msg: err.Error()}})
		return
	}
	c.hub.sched.Start(room.ID())
	c.hub.BroadcastJSON(room.ID(), Envelope{T: MsgGameStarted, Data: room.Snapshot()})
}

func (c *Client) handlePause() {
	room, ok := c.room()
	if !ok {
		return
	}
	if room.Pause() {
		c.hub.BroadcastJSON(room.ID(), Envelope{T: MsgGamePaused, Data: room.Snapshot()})
	}
}

func (c *Client) handleResume() {
	room, ok := c.room()
	if !ok {
		return
	}
	if room.Resume() {
		c.hub.sched.Start(room.ID())
		c.hub.BroadcastJSON(room.ID(), Envelope{T: MsgGameResumed, Data: room.Snapshot()})
	}
}
