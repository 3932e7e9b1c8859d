package main

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playingRoom(t *testing.T, reg *Registry, id string) *Room {
	t.Helper()
	room := reg.GetOrCreate(id)
	_, err := room.AddPlayer("s1", "Alice")
	require.NoError(t, err)
	_, err = room.AddPlayer("s2", "Bob")
	require.NoError(t, err)
	require.NoError(t, room.StartGame())
	return room
}

func TestSchedulerTicksAndIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	playingRoom(t, reg, "court-1")

	var ticks int64
	sched := NewScheduler(reg, func(string) { atomic.AddInt64(&ticks, 1) }, nil)
	defer sched.Stop()

	sched.Start("court-1")
	sched.Start("court-1") // no second timer
	assert.True(t, sched.Running("court-1"))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&ticks) >= 3
	}, time.Second, 5*time.Millisecond, "expected physics ticks to fire")
}

func TestSchedulerCancelsWhenNotPlaying(t *testing.T) {
	reg := NewRegistry()
	room := playingRoom(t, reg, "court-1")

	sched := NewScheduler(reg, func(string) {}, nil)
	defer sched.Stop()

	sched.Start("court-1")
	room.Pause()

	assert.Eventually(t, func() bool {
		return !sched.Running("court-1")
	}, time.Second, 5*time.Millisecond, "timer should cancel itself once the room pauses")
}

func TestSchedulerCancelsWhenRoomGone(t *testing.T) {
	reg := NewRegistry()
	playingRoom(t, reg, "court-1")

	sched := NewScheduler(reg, func(string) {}, nil)
	defer sched.Stop()

	sched.Start("court-1")
	reg.Remove("court-1")

	assert.Eventually(t, func() bool {
		return !sched.Running("court-1")
	}, time.Second, 5*time.Millisecond, "timer should cancel itself once the room is gone")
}

func TestSweepRemovesEmptyRooms(t *testing.T) {
	reg := NewRegistry()
	reg.GetOrCreate("empty-1")
	occupied := reg.GetOrCreate("occupied")
	_, err := occupied.AddPlayer("s1", "Alice")
	require.NoError(t, err)

	var removed []string
	sched := NewScheduler(reg, func(string) {}, func(id string) { removed = append(removed, id) })
	defer sched.Stop()

	sched.Sweep()

	assert.Nil(t, reg.Get("empty-1"))
	assert.NotNil(t, reg.Get("occupied"))
	assert.Equal(t, []string{"empty-1"}, removed)
	assert.False(t, sched.Running("empty-1"))
}
