package main

const (
	FieldWidth  = 800.0
	FieldHeight = 600.0

	BallRadius = 10.0
	BallSpeed  = 400.0 // pixels/s at full throw power

	// Gravity is expressed in the ball's normalized velocity units (a
	// full-power throw is 1.0) per second, so it stays proportionate to
	// throw speeds
	Gravity      = 0.6
	Damping      = 0.98 // velocity multiplier per step
	FloorBounce  = 0.7  // restitution on the bottom wall only
	BasketRadius = 30.0 // scoring distance from a basket point
	PickupRadius = 35.0 // possession distance from a free ball

	// Carried ball rides at the owner's position plus this offset
	CarryOffsetX = 20.0
	CarryOffsetY = 0.0
)

// Basket points at each end of the court
const (
	BasketLeftX  = 40.0
	BasketRightX = FieldWidth - 40.0
	BasketY      = FieldHeight / 2
)

// Ball is the single ball of a room. While Owner is set the ball is
// rigidly attached to that player and not independently simulated.
type Ball struct {
	X, Y      float64
	VX, VY    float64
	Owner     string // player ID, "" = free
	LastOwner string // most recent owner, credited on a basket
	InBasket  bool
}

// NewBall returns a free ball at center field
func NewBall() *Ball {
	return &Ball{X: FieldWidth / 2, Y: FieldHeight / 2}
}

// Reset returns the ball to center field, owner-less and motionless.
// InBasket is left alone so the scoring snapshot can still carry it; the
// next physics step clears it.
func (b *Ball) Reset() {
	b.X = FieldWidth / 2
	b.Y = FieldHeight / 2
	b.VX = 0
	b.VY = 0
	b.Owner = ""
	b.LastOwner = ""
}

// ToState converts to protocol state
func (b *Ball) ToState() BallState {
	return BallState{
		X:        b.X,
		Y:        b.Y,
		VX:       b.VX,
		VY:       b.VY,
		Owner:    b.Owner,
		InBasket: b.InBasket,
	}
}
