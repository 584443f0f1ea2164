package game

import (
	"math"
	"testing"
)

func TestCueUpdateComputesAngleAndTip(t *testing.T) {
	c := NewCue()
	ballPos := NewVec2(100, 200)

	c.Update(ballPos, 300, 200) // pointer straight to the right

	if !almostEqual(c.Angle, 0) {
		t.Errorf("angle = %v, want 0", c.Angle)
	}
	if !almostEqual(c.Tip.X, 200) || !almostEqual(c.Tip.Y, 200) {
		t.Errorf("tip = (%v, %v), want (200, 200)", c.Tip.X, c.Tip.Y)
	}

	c.Update(ballPos, 100, 400) // pointer straight down
	if !almostEqual(c.Angle, math.Pi/2) {
		t.Errorf("angle = %v, want pi/2", c.Angle)
	}
}

func TestAdjustPowerClamps(t *testing.T) {
	c := NewCue()

	for i := 0; i < 50; i++ {
		c.AdjustPower(PowerStep)
	}
	if c.Power != MaxPower {
		t.Errorf("power = %v, want clamped to %v", c.Power, MaxPower)
	}

	for i := 0; i < 50; i++ {
		c.AdjustPower(-PowerStep)
	}
	if c.Power != MinPower {
		t.Errorf("power = %v, want clamped to %v", c.Power, MinPower)
	}
}

func TestGuidelineHiddenByDefault(t *testing.T) {
	c := NewCue()
	ballPos := NewVec2(100, 200)
	c.Update(ballPos, 300, 200)

	if segs := c.Guideline(ballPos, nil); segs != nil {
		t.Errorf("guideline returned %d segments while hidden", len(segs))
	}

	c.ToggleGuideline()
	if segs := c.Guideline(ballPos, nil); segs == nil {
		t.Error("guideline returned nothing while visible")
	}
}

func TestGuidelinePredictsNearestBallHit(t *testing.T) {
	c := NewCue()
	c.ToggleGuideline()
	ballPos := NewVec2(100, 200)
	c.Update(ballPos, 300, 200) // aiming right, dead center

	near := NewBall(NewVec2(300, 200), "#ffff00")
	far := NewBall(NewVec2(500, 200), "#0000ff")

	segs := c.Guideline(ballPos, []*Ball{far, near})

	// Aim line, path to contact, cue carom, struck-ball departure.
	if len(segs) != 4 {
		t.Fatalf("got %d segments, want 4", len(segs))
	}

	// First contact along the ray is at 290; the overlap nudge pulls it
	// back to 285.
	contact := segs[1].To
	if !almostEqual(contact.X, 285) || !almostEqual(contact.Y, 200) {
		t.Errorf("contact point = (%v, %v), want (285, 200)", contact.X, contact.Y)
	}

	// The struck-ball segment starts at the near ball, not the far one.
	if segs[3].From != near.Position {
		t.Errorf("departure starts at (%v, %v), want the near ball", segs[3].From.X, segs[3].From.Y)
	}
	if segs[3].To.X <= near.Position.X {
		t.Errorf("struck ball predicted to depart left (to X=%v), want right", segs[3].To.X)
	}

	// Head-on hit: the cue ball's carom reflects straight back.
	if segs[2].To.X >= contact.X {
		t.Errorf("carom end X = %v, want left of contact %v", segs[2].To.X, contact.X)
	}
}

func TestGuidelineSkipsBallsBehindCue(t *testing.T) {
	c := NewCue()
	c.ToggleGuideline()
	ballPos := NewVec2(400, 200)
	c.Update(ballPos, 600, 200) // aiming right

	behind := NewBall(NewVec2(200, 200), "#ff0000")

	segs := c.Guideline(ballPos, []*Ball{behind})

	// No ball ahead: aim line plus rail bounce and reflection.
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3 (rail prediction)", len(segs))
	}
}

func TestGuidelineRailBounce(t *testing.T) {
	c := NewCue()
	c.ToggleGuideline()
	ballPos := NewVec2(100, 200)
	c.Update(ballPos, 100, 100) // aiming straight up

	segs := c.Guideline(ballPos, nil)

	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}

	// Bounce on the top rail, inset by the ball radius.
	bounce := segs[1].To
	if !almostEqual(bounce.Y, BallRadius) {
		t.Errorf("bounce Y = %v, want %v", bounce.Y, BallRadius)
	}

	// Reflection heads back down the table.
	reflect := segs[2].To
	if !almostEqual(reflect.Y, BallRadius+RailReflectLength) {
		t.Errorf("reflection end Y = %v, want %v", reflect.Y, BallRadius+RailReflectLength)
	}
}
