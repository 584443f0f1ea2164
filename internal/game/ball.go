package game

import "math"

// Ball is a single ball's physics state. Position is kept inside the
// table rectangle, inset by the ball radius, after every step.
type Ball struct {
	Position Vec2   `json:"position"`
	Velocity Vec2   `json:"velocity"`
	Spawn    Vec2   `json:"-"`
	Color    string `json:"color"` // hex, for the render surface
}

// NewBall creates a ball at rest; its spawn point is its starting position.
func NewBall(pos Vec2, color string) *Ball {
	return &Ball{Position: pos, Spawn: pos, Color: color}
}

// Reset returns the ball to its spawn point at rest.
func (b *Ball) Reset() {
	b.Position = b.Spawn
	b.Velocity = Vec2{}
}

// IsMoving reports whether either velocity component is nonzero.
func (b *Ball) IsMoving() bool {
	return b.Velocity.X != 0 || b.Velocity.Y != 0
}

// Move advances the ball one step: integrate, decelerate, snap
// sub-threshold velocity to zero, bounce off rails, then clamp.
// The clamp runs every step; the bounce is the primary mechanism and
// the clamp only keeps the position legal.
func (b *Ball) Move() {
	b.Position.X += b.Velocity.X
	b.Position.Y += b.Velocity.Y

	b.Velocity.X *= Deceleration
	b.Velocity.Y *= Deceleration

	if math.Abs(b.Velocity.X) < RestThreshold {
		b.Velocity.X = 0
	}
	if math.Abs(b.Velocity.Y) < RestThreshold {
		b.Velocity.Y = 0
	}

	if b.Position.X-BallRadius < 0 || b.Position.X+BallRadius > TableWidth {
		b.Velocity.X = -b.Velocity.X
	}
	if b.Position.Y-BallRadius < 0 || b.Position.Y+BallRadius > TableHeight {
		b.Velocity.Y = -b.Velocity.Y
	}

	b.Position.X = clamp(b.Position.X, BallRadius, TableWidth-BallRadius)
	b.Position.Y = clamp(b.Position.Y, BallRadius, TableHeight-BallRadius)
}

// ApplyForce adds an instantaneous impulse along angle (radians).
func (b *Ball) ApplyForce(angle, power float64) {
	b.Velocity.X += power * math.Cos(angle)
	b.Velocity.Y += power * math.Sin(angle)
}

// CheckCollision reports whether the two balls overlap or touch.
func (b *Ball) CheckCollision(other *Ball) bool {
	return b.Position.DistanceTo(other.Position) <= 2*BallRadius
}

// ResolveCollision performs an equal-mass elastic exchange along the
// line of centers and pushes the pair apart by half the overlap each.
// Pairs that are separating (or coincident within epsilon) are left
// untouched.
func (b *Ball) ResolveCollision(other *Ball) {
	delta := other.Position.Minus(b.Position)
	dist := delta.Magnitude()

	if dist < DistEpsilon {
		return
	}

	n := delta.Times(1.0 / dist)

	relVel := b.Velocity.Minus(other.Velocity)
	dot := relVel.Dot(n)

	if dot <= 0 {
		return // already separating
	}

	impulse := n.Times(dot)
	b.Velocity = b.Velocity.Minus(impulse)
	other.Velocity = other.Velocity.Plus(impulse)

	overlap := (2*BallRadius - dist) / 2.0
	correction := n.Times(overlap)
	b.Position = b.Position.Minus(correction)
	other.Position = other.Position.Plus(correction)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
