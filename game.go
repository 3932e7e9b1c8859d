package main

import (
	"errors"
	"math"
	"sync"
	"time"
)

// Room phases
const (
	PhaseWaiting = "waiting"
	PhasePlaying = "playing"
	PhasePaused  = "paused"
	PhaseEnded   = "ended"
)

const MinPlayersToStart = 2

var (
	ErrRoomFull         = errors.New("room is full")
	ErrNotEnoughPlayers = errors.New("not enough players to start")
)

// Room owns one game's authoritative state (players, ball, score, phase)
// and all physics, collision and scoring logic. Every method serializes on
// the room mutex, so client intents and scheduled physics steps never
// interleave within a room.
type Room struct {
	mu         sync.Mutex
	id         string
	players    map[string]*Player
	order      []string // join order: drives team assignment, snapshots, pickup tie-break
	ball       *Ball
	score      ScoreState
	phase      string
	lastUpdate time.Time
	gameStart  time.Time
}

// NewRoom creates an empty room in the waiting phase
func NewRoom(id string) *Room {
	return &Room{
		id:         id,
		players:    make(map[string]*Player),
		ball:       NewBall(),
		phase:      PhaseWaiting,
		lastUpdate: time.Now(),
	}
}

// ID returns the room identifier
func (r *Room) ID() string {
	return r.id
}

// AddPlayer joins a player to the room. The first TeamSize joiners play
// for team1, the rest for team2; the spawn slot follows from the join
// index. Joining never changes the room phase.
func (r *Room) AddPlayer(id, name string) (*Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) >= MaxPlayers {
		return nil, ErrRoomFull
	}

	player := NewPlayer(id, name, len(r.order))
	r.players[id] = player
	r.order = append(r.order, id)
	return player, nil
}

// RemovePlayer removes a player and reports whether the room is now empty.
// If the player carried the ball, ownership is cleared and the ball stays
// where it was instead of resetting to center.
func (r *Room) RemovePlayer(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; !ok {
		return len(r.players) == 0
	}

	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.ball.Owner == id {
		r.ball.Owner = ""
	}
	return len(r.players) == 0
}

// StartGame transitions waiting -> playing. The physics clock reference is
// stamped here so the first tick's dt is near zero instead of the room's
// idle duration.
func (r *Room) StartGame() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.players) < MinPlayersToStart {
		return ErrNotEnoughPlayers
	}
	if r.phase != PhaseWaiting {
		return nil
	}
	now := time.Now()
	r.phase = PhasePlaying
	r.gameStart = now
	r.lastUpdate = now
	return nil
}

// Pause flips playing -> paused. Returns whether the phase changed.
func (r *Room) Pause() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlaying {
		return false
	}
	r.phase = PhasePaused
	return true
}

// Resume flips paused -> playing. Calling it from any other phase is a
// no-op. The physics clock is re-stamped so the paused interval does not
// leak into the next tick's dt.
func (r *Room) Resume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePaused {
		return false
	}
	r.phase = PhasePlaying
	r.lastUpdate = time.Now()
	return true
}

// End moves the room to the terminal ended phase. Nothing in the engine
// reaches it on its own; it exists for an explicit external command.
func (r *Room) End() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = PhaseEnded
}

// UpdatePlayerPosition applies a client-reported move. Unknown players are
// a silent no-op.
func (r *Room) UpdatePlayerPosition(id string, x, y, vx, vy float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return
	}
	p.MoveTo(x, y, vx, vy)
}

// ThrowBall releases an owned ball. Power is clamped to [0,100] and
// normalized; the velocity vector is (cos d, sin d) * power. The previous
// owner stays recorded so a basket can be credited.
func (r *Room) ThrowBall(direction, power float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b := r.ball
	if b.Owner == "" {
		return
	}
	if p, ok := r.players[b.Owner]; ok {
		b.X = p.X + CarryOffsetX
		b.Y = p.Y + CarryOffsetY
		p.HasBall = false
	}
	n := Clamp(power, 0, 100) / 100
	b.VX = math.Cos(direction) * n
	b.VY = math.Sin(direction) * n
	b.LastOwner = b.Owner
	b.Owner = ""
}

// Step advances ball physics by the wall-clock time since the previous
// step (variable-timestep integration). No-op unless the room is playing.
func (r *Room) Step(now time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != PhasePlaying {
		return
	}
	dt := now.Sub(r.lastUpdate).Seconds()
	r.lastUpdate = now

	b := r.ball
	if b.Owner != "" {
		// Carried ball rides on its owner, no integration
		if p, ok := r.players[b.Owner]; ok {
			b.X = p.X + CarryOffsetX
			b.Y = p.Y + CarryOffsetY
		}
		return
	}

	b.InBasket = false

	// Integrate position with pre-step velocity, then apply gravity and
	// damping for the next step
	b.X += b.VX * dt * BallSpeed
	b.Y += b.VY * dt * BallSpeed
	b.VY += Gravity * dt
	b.VX *= Damping
	b.VY *= Damping

	// Walls: clamp and reflect. Only the floor eats energy.
	if b.X-BallRadius < 0 {
		b.X = BallRadius
		b.VX = -b.VX
	}
	if b.X+BallRadius > FieldWidth {
		b.X = FieldWidth - BallRadius
		b.VX = -b.VX
	}
	if b.Y-BallRadius < 0 {
		b.Y = BallRadius
		b.VY = -b.VY
	}
	if b.Y+BallRadius > FieldHeight {
		b.Y = FieldHeight - BallRadius
		b.VY = -b.VY * FloorBounce
	}

	if Distance(b.X, b.Y, BasketLeftX, BasketY) < BasketRadius ||
		Distance(b.X, b.Y, BasketRightX, BasketY) < BasketRadius {
		b.InBasket = true
		// Only owner-originated shots score; a ball that drifted in with
		// no recorded owner still resets
		if shooter, ok := r.players[b.LastOwner]; ok {
			shooter.Score += 2
			if shooter.Team == Team1 {
				r.score.Team1 += 2
			} else {
				r.score.Team2 += 2
			}
		}
		b.Reset()
		for _, p := range r.players {
			p.HasBall = false
		}
	}

	// Pickup: first player in join order within range takes possession,
	// at most one per step
	if b.Owner == "" {
		for _, id := range r.order {
			p := r.players[id]
			if Distance(p.X, p.Y, b.X, b.Y) < PickupRadius {
				b.Owner = id
				b.LastOwner = id
				p.HasBall = true
				break
			}
		}
	}
}

// Phase returns the current phase
func (r *Room) Phase() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// PlayerCount returns the number of players
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Snapshot returns the full serializable room state, players in join order
func (r *Room) Snapshot() RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]PlayerState, 0, len(r.order))
	for _, id := range r.order {
		players = append(players, r.players[id].ToState())
	}
	snap := RoomSnapshot{
		RoomID:  r.id,
		Players: players,
		Ball:    r.ball.ToState(),
		Score:   r.score,
		Phase:   r.phase,
	}
	if !r.gameStart.IsZero() {
		t := r.gameStart
		snap.GameStartTime = &t
	}
	return snap
}

// Summary returns the discovery listing row for this room
func (r *Room) Summary() RoomSummary {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomSummary{
		ID:          r.id,
		PlayerCount: len(r.players),
		MaxPlayers:  MaxPlayers,
		Phase:       r.phase,
		Score:       r.score,
	}
}
