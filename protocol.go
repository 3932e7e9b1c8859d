package main

import (
	"encoding/json"
	"time"
)

// Client -> Server message types
const (
	MsgJoinRoom   = "join-room"
	MsgPlayerMove = "player-move"
	MsgThrowBall  = "throw-ball"
	MsgStartGame  = "start-game"
	MsgPauseGame  = "pause-game"
	MsgResumeGame = "resume-game"
	MsgLeaveRoom  = "leave-room"
)

// Server -> Client message types
const (
	MsgJoinResult  = "join-result"
	MsgRoomUpdate  = "room-update"
	MsgGameStarted = "game-started"
	MsgGamePaused  = "game-paused"
	MsgGameResumed = "game-resumed"
	MsgGameUpdate  = "game-update" // msgpack binary frames at tick rate
	MsgRoomClosed  = "room-closed"
	MsgError       = "error"
)

// Envelope wraps all outgoing messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// JoinRoomMsg is sent when a player wants to join a room
type JoinRoomMsg struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

// MoveMsg carries a client-reported position and velocity
type MoveMsg struct {
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	VX float64 `json:"vx"`
	VY float64 `json:"vy"`
}

// ThrowMsg carries a throw direction (radians) and power (0-100)
type ThrowMsg struct {
	Direction float64 `json:"direction"`
	Power     float64 `json:"power"`
}

// JoinResultMsg acknowledges a join attempt
type JoinResultMsg struct {
	Success   bool          `json:"success"`
	Error     string        `json:"error,omitempty"`
	GameState *RoomSnapshot `json:"gameState,omitempty"`
}

// PlayerState is the per-player part of a snapshot
type PlayerState struct {
	ID      string  `json:"id" msgpack:"id"`
	Name    string  `json:"name" msgpack:"n"`
	Team    string  `json:"team" msgpack:"t"`
	X       float64 `json:"x" msgpack:"x"`
	Y       float64 `json:"y" msgpack:"y"`
	VX      float64 `json:"vx" msgpack:"vx"`
	VY      float64 `json:"vy" msgpack:"vy"`
	HasBall bool    `json:"hasBall" msgpack:"hb"`
	Score   int     `json:"score" msgpack:"sc"`
	Active  bool    `json:"active" msgpack:"a"`
}

// BallState is the ball part of a snapshot
type BallState struct {
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	VX       float64 `json:"vx" msgpack:"vx"`
	VY       float64 `json:"vy" msgpack:"vy"`
	Owner    string  `json:"owner,omitempty" msgpack:"o"`
	InBasket bool    `json:"inBasket" msgpack:"ib"`
}

// ScoreState holds the two team counters
type ScoreState struct {
	Team1 int `json:"team1" msgpack:"t1"`
	Team2 int `json:"team2" msgpack:"t2"`
}

// RoomSnapshot is the full serializable state of a room. Players are
// listed in join order so snapshots are stable across broadcasts.
type RoomSnapshot struct {
	RoomID        string        `json:"roomId" msgpack:"rid"`
	Players       []PlayerState `json:"players" msgpack:"p"`
	Ball          BallState     `json:"ball" msgpack:"b"`
	Score         ScoreState    `json:"score" msgpack:"s"`
	Phase         string        `json:"phase" msgpack:"ph"`
	GameStartTime *time.Time    `json:"gameStartTime" msgpack:"gst"`
}

// RoomSummary is one row of the room listing
type RoomSummary struct {
	ID          string     `json:"id"`
	PlayerCount int        `json:"playerCount"`
	MaxPlayers  int        `json:"maxPlayers"`
	Phase       string     `json:"phase"`
	Score       ScoreState `json:"score"`
}

// RoomClosedMsg tells subscribers their room is gone
type RoomClosedMsg struct {
	RoomID string `json:"roomId"`
}

// ErrorMsg sends an error to a single client
type ErrorMsg struct {
	Msg string `json:"msg"`
}
