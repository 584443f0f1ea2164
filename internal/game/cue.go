package game

import "math"

// Guide colors used by the render surface.
const (
	colorAim    = "#ffff00" // aim line and path to first contact
	colorCarom  = "#00ff00" // cue ball's predicted post-impact path
	colorObject = "#0000ff" // struck ball's predicted departure
	colorRail   = "#ff0000" // reflection after a rail bounce
)

// Segment is a line-segment draw primitive.
type Segment struct {
	From  Vec2   `json:"from"`
	To    Vec2   `json:"to"`
	Color string `json:"color"`
}

// Cue is the aiming stick. It has no persistent position of its own:
// angle and tip are recomputed every frame from the cue ball and the
// current pointer sample. Only power and the guideline toggle persist.
type Cue struct {
	Angle         float64 `json:"angle"`
	Power         float64 `json:"power"`
	Tip           Vec2    `json:"tip"`
	ShowGuideline bool    `json:"show_guideline"`
}

func NewCue() *Cue {
	return &Cue{Power: DefaultPower}
}

// Update recomputes the aim angle from the ball toward the pointer and
// places the visual tip at the stick length along it.
func (c *Cue) Update(ballPos Vec2, targetX, targetY float64) {
	c.Angle = math.Atan2(targetY-ballPos.Y, targetX-ballPos.X)
	c.Tip = Vec2{
		X: ballPos.X + math.Cos(c.Angle)*CueLength,
		Y: ballPos.Y + math.Sin(c.Angle)*CueLength,
	}
}

// ToggleGuideline flips the guideline overlay.
func (c *Cue) ToggleGuideline() {
	c.ShowGuideline = !c.ShowGuideline
}

// AdjustPower nudges power by delta, clamped to [MinPower, MaxPower].
func (c *Cue) AdjustPower(delta float64) {
	c.Power = clamp(c.Power+delta, MinPower, MaxPower)
}

// StickSegment is the cue stick drawn from the ball to the tip.
func (c *Cue) StickSegment(ballPos Vec2) Segment {
	return Segment{From: ballPos, To: c.Tip, Color: colorAim}
}

// Guideline traces the cue ball's predicted path: the first object ball
// the aim ray would strike (nearest ray/circle intersection), the cue
// ball's reflected carom and the struck ball's departure — or, when no
// ball is in the way, the nearest rail bounce and its reflection. Pure
// geometry; simulation state is never mutated.
func (c *Cue) Guideline(ballPos Vec2, balls []*Ball) []Segment {
	if !c.ShowGuideline {
		return nil
	}

	segments := []Segment{{From: ballPos, To: c.Tip, Color: colorAim}}

	dir := c.Tip.Minus(ballPos)
	if length := dir.Magnitude(); length != 0 {
		dir = dir.Times(1.0 / length)
	}

	nearest := math.MaxFloat64
	var target *Ball
	var contact, carom, departure Vec2

	for _, ball := range balls {
		rel := ball.Position.Minus(ballPos)
		projection := rel.Dot(dir)
		projected := ballPos.Plus(dir.Times(projection))
		perpDist := projected.DistanceTo(ball.Position)

		if perpDist > BallRadius || projection <= 0 {
			continue
		}

		// Near root of the ray/circle intersection.
		chord := math.Sqrt(BallRadius*BallRadius - perpDist*perpDist)
		contactDist := projection - chord

		if contactDist >= nearest {
			continue // first-found wins on ties
		}

		nearest = contactDist
		target = ball
		contact = ballPos.Plus(dir.Times(contactDist))

		// Nudge the contact point back so the predicted balls don't overlap.
		if d := target.Position.DistanceTo(contact); d < 2*BallRadius {
			overlap := (2*BallRadius - d) / 2.0
			contact = contact.Minus(dir.Times(overlap))
		}

		n := target.Position.Minus(contact).Times(1.0 / (2 * BallRadius))

		carom = contact.Plus(dir.Reflect(n).Times(CaromSegmentLength))
		departure = target.Position.Plus(n.Times(dir.Dot(n) * CaromSegmentLength))
	}

	if target != nil {
		segments = append(segments,
			Segment{From: ballPos, To: contact, Color: colorAim},
			Segment{From: contact, To: carom, Color: colorCarom},
			Segment{From: target.Position, To: departure, Color: colorObject},
		)
		return segments
	}

	// No ball in the way: find the nearest rail along the ray.
	tMin := math.MaxFloat64
	tTop, tBottom, tLeft, tRight := math.MaxFloat64, math.MaxFloat64, math.MaxFloat64, math.MaxFloat64

	if dir.Y != 0 {
		tTop = (BallRadius - ballPos.Y) / dir.Y
		tBottom = (TableHeight - BallRadius - ballPos.Y) / dir.Y
	}
	if dir.X != 0 {
		tLeft = (BallRadius - ballPos.X) / dir.X
		tRight = (TableWidth - BallRadius - ballPos.X) / dir.X
	}

	for _, t := range []float64{tTop, tBottom, tLeft, tRight} {
		if t > 0 && t < tMin {
			tMin = t
		}
	}

	if tMin < math.MaxFloat64 {
		bounce := ballPos.Plus(dir.Times(tMin))
		segments = append(segments, Segment{From: ballPos, To: bounce, Color: colorCarom})

		if tMin == tTop || tMin == tBottom {
			dir.Y = -dir.Y
		}
		if tMin == tLeft || tMin == tRight {
			dir.X = -dir.X
		}

		reflect := bounce.Plus(dir.Times(RailReflectLength))
		segments = append(segments, Segment{From: bounce, To: reflect, Color: colorRail})
	}

	return segments
}
