package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry()

	room := reg.GetOrCreate("court-1")
	require.NotNil(t, room)
	assert.Equal(t, "court-1", room.ID())
	assert.Equal(t, PhaseWaiting, room.Phase())

	// Second reference returns the same instance
	assert.Same(t, room, reg.GetOrCreate("court-1"))
	assert.Equal(t, 1, reg.Count())
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry()
	room := reg.GetOrCreate("court-1")
	room.AddPlayer("s1", "Alice")
	reg.GetOrCreate("court-2")

	list := reg.List()
	require.Len(t, list, 2)

	byID := make(map[string]RoomSummary)
	for _, s := range list {
		byID[s.ID] = s
	}
	assert.Equal(t, 1, byID["court-1"].PlayerCount)
	assert.Equal(t, MaxPlayers, byID["court-1"].MaxPlayers)
	assert.Equal(t, PhaseWaiting, byID["court-1"].Phase)
	assert.Equal(t, 0, byID["court-2"].PlayerCount)
}

func TestRegistryRemoveIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.GetOrCreate("court-1")

	reg.Remove("court-1")
	assert.Nil(t, reg.Get("court-1"))
	assert.Empty(t, reg.List())

	// Removing again is a no-op
	reg.Remove("court-1")
	reg.Remove("never-existed")
}

func TestRegistryEmpty(t *testing.T) {
	reg := NewRegistry()
	reg.GetOrCreate("empty-1")
	occupied := reg.GetOrCreate("occupied")
	occupied.AddPlayer("s1", "Alice")

	assert.ElementsMatch(t, []string{"empty-1"}, reg.Empty())
}
