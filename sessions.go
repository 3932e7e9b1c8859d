package main

import "sync"

// Membership records which room a connected session is playing in. The
// player ID equals the session ID.
type Membership struct {
	RoomID   string
	PlayerID string
}

// SessionDirectory maps session IDs to their room membership so inbound
// intents can be routed without carrying the room ID on every message.
type SessionDirectory struct {
	mu       sync.RWMutex
	sessions map[string]Membership
}

// NewSessionDirectory creates an empty SessionDirectory
func NewSessionDirectory() *SessionDirectory {
	return &SessionDirectory{
		sessions: make(map[string]Membership),
	}
}

// Set records a session's membership, replacing any previous one
func (d *SessionDirectory) Set(sessionID, roomID, playerID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sessions[sessionID] = Membership{RoomID: roomID, PlayerID: playerID}
}

// Get returns the membership for a session, if any
func (d *SessionDirectory) Get(sessionID string) (Membership, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	m, ok := d.sessions[sessionID]
	return m, ok
}

// Delete forgets a session; unknown sessions are a no-op
func (d *SessionDirectory) Delete(sessionID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sessions, sessionID)
}

// Count returns the number of tracked sessions
func (d *SessionDirectory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sessions)
}
