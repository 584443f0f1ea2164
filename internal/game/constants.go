package game

// Physics and table constants for the 9-ball simulation.
// The table is measured in simulation units; clients render 1 unit = 1 pixel.

const (
	TableWidth  = 800.0
	TableHeight = 400.0

	BallRadius   = 10.0
	PocketRadius = 15.0

	// Pocket centers sit this far in from the rails.
	PocketInset = 20.0

	// Deceleration is multiplicative, applied every step. Velocity
	// components below RestThreshold snap to exactly zero so balls
	// reach true rest instead of creeping forever.
	Deceleration  = 0.98
	RestThreshold = 0.1

	// Collision resolution is skipped below this center separation.
	DistEpsilon = 1e-4

	FramesPerSecond = 60

	CueLength    = 100.0
	PowerStep    = 1.0
	MinPower     = 5.0
	MaxPower     = FramesPerSecond / 3.0
	DefaultPower = 15.0

	// Guideline segment lengths past the predicted contact.
	CaromSegmentLength = 200.0
	RailReflectLength  = 100.0

	PocketScore    = 1 // per object ball captured
	ScratchPenalty = 5 // deducted when the cue ball drops

	NumObjectBalls = 9
)
