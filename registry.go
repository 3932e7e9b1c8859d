package main

import "sync"

// Registry is the process-wide mapping from room ID to Room. Rooms are
// created on first reference and live until their player set empties
// (explicit removal or the scheduler's sweep).
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// GetOrCreate returns the room with the given ID, creating it if needed
func (reg *Registry) GetOrCreate(id string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if room, ok := reg.rooms[id]; ok {
		return room
	}
	room := NewRoom(id)
	reg.rooms[id] = room
	return room
}

// Get returns a room by ID, or nil
func (reg *Registry) Get(id string) *Room {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return reg.rooms[id]
}

// Remove deletes a room; removing an absent room is a no-op
func (reg *Registry) Remove(id string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, id)
}

// List returns a discovery snapshot of all rooms
func (reg *Registry) List() []RoomSummary {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	list := make([]RoomSummary, 0, len(reg.rooms))
	for _, room := range reg.rooms {
		list = append(list, room.Summary())
	}
	return list
}

// Empty returns the IDs of rooms with no players, for the sweep
func (reg *Registry) Empty() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	var ids []string
	for id, room := range reg.rooms {
		if room.PlayerCount() == 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// Count returns the number of live rooms
func (reg *Registry) Count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}
