package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionDirectory(t *testing.T) {
	d := NewSessionDirectory()

	_, ok := d.Get("s1")
	assert.False(t, ok)

	d.Set("s1", "court-1", "s1")
	m, ok := d.Get("s1")
	assert.True(t, ok)
	assert.Equal(t, "court-1", m.RoomID)
	assert.Equal(t, "s1", m.PlayerID)
	assert.Equal(t, 1, d.Count())

	// Re-joining replaces the membership
	d.Set("s1", "court-2", "s1")
	m, _ = d.Get("s1")
	assert.Equal(t, "court-2", m.RoomID)
	assert.Equal(t, 1, d.Count())

	d.Delete("s1")
	_, ok = d.Get("s1")
	assert.False(t, ok)

	// Deleting an unknown session is a no-op
	d.Delete("ghost")
}
