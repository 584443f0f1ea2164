package game

import "testing"

func TestNewSimulationLayout(t *testing.T) {
	s := NewSimulation()

	if got := len(s.Balls); got != NumObjectBalls {
		t.Fatalf("rack has %d balls, want %d", got, NumObjectBalls)
	}
	if s.Balls[0].Position != NewVec2(400, 200) {
		t.Errorf("apex ball at (%v, %v), want (400, 200)", s.Balls[0].Position.X, s.Balls[0].Position.Y)
	}
	if got := len(s.Pockets); got != 6 {
		t.Errorf("table has %d pockets, want 6", got)
	}
	if s.CueBall.Position != NewVec2(100, 200) {
		t.Errorf("cue ball at (%v, %v), want (100, 200)", s.CueBall.Position.X, s.CueBall.Position.Y)
	}
}

func TestShootOnlyWhenCueBallAtRest(t *testing.T) {
	s := NewSimulation()

	if !s.Shoot() {
		t.Fatal("shot refused with cue ball at rest")
	}
	if !s.CueBall.IsMoving() {
		t.Fatal("shot did not set the cue ball in motion")
	}
	if s.Shoot() {
		t.Error("shot accepted while cue ball still moving")
	}
}

func TestPocketCaptureInclusiveBoundary(t *testing.T) {
	s := NewSimulation()
	pocket := s.Pockets[0]

	// Single object ball resting exactly on the capture boundary.
	s.Balls = []*Ball{NewBall(pocket.Position.Plus(NewVec2(pocket.Radius, 0)), "#ff0000")}

	s.Update(400, 200)

	if len(s.Balls) != NumObjectBalls {
		// The capture empties the table, so the rack reseeds in the
		// same step.
		t.Fatalf("table has %d balls after capture+reseed, want %d", len(s.Balls), NumObjectBalls)
	}
	if s.Score != PocketScore {
		t.Errorf("score = %d, want %d", s.Score, PocketScore)
	}
	if s.BallsPocketed != 1 {
		t.Errorf("balls pocketed = %d, want 1", s.BallsPocketed)
	}
	if s.RacksCleared != 1 {
		t.Errorf("racks cleared = %d, want 1", s.RacksCleared)
	}
}

func TestBallJustOutsidePocketSurvives(t *testing.T) {
	s := NewSimulation()
	pocket := s.Pockets[0]

	s.Balls = []*Ball{NewBall(pocket.Position.Plus(NewVec2(pocket.Radius+0.01, 0)), "#ff0000")}

	s.Update(400, 200)

	if len(s.Balls) != 1 || s.Score != 0 {
		t.Errorf("ball outside capture radius was pocketed (balls=%d score=%d)", len(s.Balls), s.Score)
	}
}

func TestScratchPenalizesAndResetsCueBall(t *testing.T) {
	s := NewSimulation()
	pocket := s.Pockets[0]
	s.CueBall.Position = pocket.Position
	s.CueBall.Velocity = NewVec2(3, 0)

	s.Update(400, 200)

	if s.Score != -ScratchPenalty {
		t.Errorf("score = %d, want %d", s.Score, -ScratchPenalty)
	}
	if s.CueBall.Position != NewVec2(100, 200) {
		t.Errorf("cue ball at (%v, %v) after scratch, want spawn (100, 200)",
			s.CueBall.Position.X, s.CueBall.Position.Y)
	}
	if s.CueBall.IsMoving() {
		t.Error("cue ball still moving after scratch reset")
	}
	if s.Scratches != 1 {
		t.Errorf("scratches = %d, want 1", s.Scratches)
	}
}

func TestEmptyTableReseedsKeepingCueBall(t *testing.T) {
	s := NewSimulation()
	s.Balls = nil
	s.CueBall.Position = NewVec2(150, 220)

	s.Update(400, 200)

	if len(s.Balls) != NumObjectBalls {
		t.Fatalf("table has %d balls after reseed, want %d", len(s.Balls), NumObjectBalls)
	}
	if s.Balls[0].Position != NewVec2(400, 200) {
		t.Error("reseeded rack not at canonical positions")
	}
	if s.CueBall.Position != NewVec2(150, 220) {
		t.Error("reseed moved the cue ball")
	}
}

func TestUpdateTransfersMomentumHeadOn(t *testing.T) {
	s := NewSimulation()
	s.Balls = []*Ball{NewBall(NewVec2(400, 200), "#ffff00")}
	s.CueBall.Position = NewVec2(370, 200)
	s.CueBall.Velocity = NewVec2(20, 0)

	s.Update(400, 200)

	// After Move the cue ball sits at 390 with velocity 19.6; the
	// head-on resolution hands the full normal component to the object
	// ball and pushes the pair apart.
	if !almostEqual(s.CueBall.Velocity.X, 0) {
		t.Errorf("cue ball velocity X = %v, want 0 after full transfer", s.CueBall.Velocity.X)
	}
	if !almostEqual(s.Balls[0].Velocity.X, 19.6) {
		t.Errorf("object ball velocity X = %v, want 19.6", s.Balls[0].Velocity.X)
	}
	if dist := s.CueBall.Position.DistanceTo(s.Balls[0].Position); dist < 2*BallRadius-1e-9 {
		t.Errorf("pair still overlapping after update: dist = %v", dist)
	}
}

func TestUpdateRecomputesAimEveryStep(t *testing.T) {
	s := NewSimulation()

	s.Update(s.CueBall.Position.X, s.CueBall.Position.Y+100) // pointer below
	firstAngle := s.Cue.Angle

	s.Update(s.CueBall.Position.X+100, s.CueBall.Position.Y) // pointer right
	if s.Cue.Angle == firstAngle {
		t.Error("cue angle did not follow the pointer")
	}
	if !almostEqual(s.Cue.Angle, 0) {
		t.Errorf("cue angle = %v, want 0 for pointer straight right", s.Cue.Angle)
	}
}

func TestAnyMoving(t *testing.T) {
	s := NewSimulation()
	if s.AnyMoving() {
		t.Error("fresh table reported motion")
	}
	s.Balls[3].Velocity = NewVec2(0, 2)
	if !s.AnyMoving() {
		t.Error("motion not detected on object ball")
	}
}
