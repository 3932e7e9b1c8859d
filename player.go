package main

const (
	PlayerRadius   = 20.0 // footprint used when clamping to the court
	MaxPlayers     = 6
	TeamSize       = 3
	SpawnX         = 100.0
	SpawnSlotPitch = 80.0
)

// Team names. The first TeamSize joiners of a room play for team1, the
// rest for team2; assignment is purely a function of join order.
const (
	Team1 = "team1"
	Team2 = "team2"
)

// Player represents one room member. Its ID is the session ID of the
// connection that joined.
type Player struct {
	ID      string
	Name    string
	Team    string
	X, Y    float64
	VX, VY  float64
	HasBall bool
	Score   int
	Active  bool
}

// NewPlayer creates a player on the spawn slot for the given join index
func NewPlayer(id, name string, joinIndex int) *Player {
	team := Team1
	x := SpawnX
	if joinIndex >= TeamSize {
		team = Team2
		x = FieldWidth - SpawnX
	}
	return &Player{
		ID:     id,
		Name:   name,
		Team:   team,
		X:      x,
		Y:      FieldHeight/2 + float64(joinIndex%TeamSize)*SpawnSlotPitch - SpawnSlotPitch,
		Active: true,
	}
}

// MoveTo clamps the position into the court minus the player's footprint.
// Velocity is stored verbatim; it is display state for other clients and
// never integrated server-side.
func (p *Player) MoveTo(x, y, vx, vy float64) {
	p.X = Clamp(x, PlayerRadius, FieldWidth-PlayerRadius)
	p.Y = Clamp(y, PlayerRadius, FieldHeight-PlayerRadius)
	p.VX = vx
	p.VY = vy
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:      p.ID,
		Name:    p.Name,
		Team:    p.Team,
		X:       p.X,
		Y:       p.Y,
		VX:      p.VX,
		VY:      p.VY,
		HasBall: p.HasBall,
		Score:   p.Score,
		Active:  p.Active,
	}
}
