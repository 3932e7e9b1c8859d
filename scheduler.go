package main

import (
	"sync"
	"time"
)

const (
	TickRate     = 60 // physics ticks per second
	TickDuration = time.Second / TickRate
	SweepPeriod  = time.Minute
)

// BroadcastFunc delivers a room's tick snapshot to its subscribers
type BroadcastFunc func(roomID string)

// Scheduler runs one timer per playing room, invoking the physics step at
// TickRate and broadcasting the result. A timer cancels itself once its
// room disappears or leaves the playing phase; cancellation is checked at
// the top of each tick, not an interrupt. A low-frequency sweep removes
// rooms whose player set has emptied.
type Scheduler struct {
	mu        sync.Mutex
	registry  *Registry
	broadcast BroadcastFunc
	onRemove  func(roomID string)
	timers    map[string]chan struct{}
	stop      chan struct{}
	wg        sync.WaitGroup
}

// NewScheduler creates a Scheduler. onRemove is called after the sweep
// removes an empty room, so the transport can close out subscribers.
func NewScheduler(registry *Registry, broadcast BroadcastFunc, onRemove func(roomID string)) *Scheduler {
	return &Scheduler{
		registry:  registry,
		broadcast: broadcast,
		onRemove:  onRemove,
		timers:    make(map[string]chan struct{}),
		stop:      make(chan struct{}),
	}
}

// Start launches the tick timer for a room. At most one timer runs per
// room ID; starting an already-ticking room is a no-op.
func (s *Scheduler) Start(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[roomID]; ok {
		return
	}
	stop := make(chan struct{})
	s.timers[roomID] = stop
	s.wg.Add(1)
	go s.run(roomID, stop)
}

// StopRoom cancels a room's timer, if one is running
func (s *Scheduler) StopRoom(roomID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if stop, ok := s.timers[roomID]; ok {
		close(stop)
		delete(s.timers, roomID)
	}
}

// Running reports whether a room currently has a timer
func (s *Scheduler) Running(roomID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[roomID]
	return ok
}

// run is one room's timer loop
func (s *Scheduler) run(roomID string, stop chan struct{}) {
	defer s.wg.Done()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			room := s.registry.Get(roomID)
			if room == nil || room.Phase() != PhasePlaying {
				s.release(roomID, stop)
				return
			}
			room.Step(time.Now())
			s.broadcast(roomID)
		case <-stop:
			return
		case <-s.stop:
			return
		}
	}
}

// release drops the timer handle unless a newer timer replaced it
func (s *Scheduler) release(roomID string, stop chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.timers[roomID]; ok && cur == stop {
		delete(s.timers, roomID)
	}
}

// Run is the sweep loop: once a minute, rooms with zero players are
// removed along with any lingering timer. This is a safety net; the
// explicit leave path already removes emptied rooms.
func (s *Scheduler) Run() {
	ticker := time.NewTicker(SweepPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep()
		case <-s.stop:
			return
		}
	}
}

// Sweep removes all empty rooms immediately
func (s *Scheduler) Sweep() {
	for _, id := range s.registry.Empty() {
		s.registry.Remove(id)
		s.StopRoom(id)
		if s.onRemove != nil {
			s.onRemove(id)
		}
	}
}

// Stop shuts down the sweep and all room timers
func (s *Scheduler) Stop() {
	close(s.stop)
	s.wg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stop := range s.timers {
		close(stop)
		delete(s.timers, id)
	}
}
