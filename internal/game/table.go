package game

// Pocket is a fixed circular capture zone. A ball whose center comes
// within Radius of the pocket center (inclusive) is captured.
type Pocket struct {
	Position Vec2    `json:"position"`
	Radius   float64 `json:"radius"`
}

// Simulation owns the table state: the cue ball, the shrinking
// collection of object balls, the pockets and the score. All mutation
// happens through Update and Shoot from a single goroutine.
type Simulation struct {
	CueBall *Ball
	Balls   []*Ball
	Pockets []Pocket
	Cue     *Cue
	Score   int

	// Running totals for the session record.
	BallsPocketed int
	Scratches     int
	RacksCleared  int
}

// NewSimulation builds a table with the canonical 9-ball rack and the
// six standard pockets.
func NewSimulation() *Simulation {
	s := &Simulation{
		CueBall: NewBall(NewVec2(100, 200), "#ffffff"),
		Cue:     NewCue(),
		Pockets: standardPockets(),
	}
	s.Rack()
	return s
}

func standardPockets() []Pocket {
	const inset = PocketInset
	centers := []Vec2{
		{X: inset, Y: inset},
		{X: TableWidth - inset, Y: inset},
		{X: inset, Y: TableHeight - inset},
		{X: TableWidth - inset, Y: TableHeight - inset},
		{X: TableWidth / 2, Y: inset},
		{X: TableWidth / 2, Y: TableHeight - inset},
	}
	pockets := make([]Pocket, len(centers))
	for i, c := range centers {
		pockets[i] = Pocket{Position: c, Radius: PocketRadius}
	}
	return pockets
}

// Rack seeds the object-ball collection with the canonical diamond
// layout. The cue ball is untouched.
func (s *Simulation) Rack() {
	s.Balls = []*Ball{
		NewBall(NewVec2(400, 200), "#ffff00"),
		NewBall(NewVec2(420, 190), "#0000ff"),
		NewBall(NewVec2(420, 210), "#ff0000"),
		NewBall(NewVec2(440, 180), "#ffa500"),
		NewBall(NewVec2(440, 200), "#008000"),
		NewBall(NewVec2(440, 220), "#800080"),
		NewBall(NewVec2(460, 210), "#ff1493"),
		NewBall(NewVec2(460, 190), "#008080"),
		NewBall(NewVec2(480, 200), "#800000"),
	}
}

// Shoot applies one impulse to the cue ball at the cue's current angle
// and power. Refused while the cue ball is still moving.
func (s *Simulation) Shoot() bool {
	if s.CueBall.IsMoving() {
		return false
	}
	s.CueBall.ApplyForce(s.Cue.Angle, s.Cue.Power)
	return true
}

// Update advances the table one step: motion, scratch handling, aim
// recompute from the pointer sample, pairwise collision resolution,
// pocket capture, and a full re-rack once the table is cleared.
func (s *Simulation) Update(pointerX, pointerY float64) {
	s.CueBall.Move()
	for _, ball := range s.Balls {
		ball.Move()
	}

	// Scratch: the cue ball is never removed, only reset and penalized.
	if s.inPocket(s.CueBall.Position) {
		s.Score -= ScratchPenalty
		s.Scratches++
		s.CueBall.Reset()
	}

	s.Cue.Update(s.CueBall.Position, pointerX, pointerY)

	s.checkCollisions()
	s.checkPockets()

	if len(s.Balls) == 0 {
		s.RacksCleared++
		s.Rack()
	}
}

// checkCollisions resolves the cue ball against every object ball, then
// every distinct object-ball pair. Resolution is immediate: a ball's
// state may change before a later pair in the same scan uses it. That
// ordering is part of the observable physics and must not change.
func (s *Simulation) checkCollisions() {
	for _, ball := range s.Balls {
		if s.CueBall.CheckCollision(ball) {
			s.CueBall.ResolveCollision(ball)
		}
	}

	for i := 0; i < len(s.Balls); i++ {
		for j := i + 1; j < len(s.Balls); j++ {
			if s.Balls[i].CheckCollision(s.Balls[j]) {
				s.Balls[i].ResolveCollision(s.Balls[j])
			}
		}
	}
}

// checkPockets removes captured object balls and scores them.
func (s *Simulation) checkPockets() {
	kept := s.Balls[:0]
	for _, ball := range s.Balls {
		if s.inPocket(ball.Position) {
			s.Score += PocketScore
			s.BallsPocketed++
			continue
		}
		kept = append(kept, ball)
	}
	s.Balls = kept
}

func (s *Simulation) inPocket(pos Vec2) bool {
	for _, p := range s.Pockets {
		if pos.DistanceTo(p.Position) <= p.Radius {
			return true
		}
	}
	return false
}

// AnyMoving reports whether any ball on the table is still in motion.
func (s *Simulation) AnyMoving() bool {
	if s.CueBall.IsMoving() {
		return true
	}
	for _, ball := range s.Balls {
		if ball.IsMoving() {
			return true
		}
	}
	return false
}
