package game

import "fmt"

// Circle is a filled-circle draw primitive.
type Circle struct {
	Center Vec2    `json:"center"`
	Radius float64 `json:"radius"`
	Color  string  `json:"color"`
}

// Label is a text draw primitive.
type Label struct {
	Text     string `json:"text"`
	Position Vec2   `json:"position"`
	Color    string `json:"color"`
}

// Frame is one rendered step of the simulation, expressed entirely as
// draw primitives plus the HUD numbers. The render surface consumes it
// verbatim; it holds no physics state.
type Frame struct {
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Background string    `json:"background"`
	Circles    []Circle  `json:"circles"`
	Segments   []Segment `json:"segments"`
	Labels     []Label   `json:"labels"`
	Score      int       `json:"score"`
	Power      float64   `json:"power"`
}

// Frame builds the draw list for the current state: pockets, balls, the
// cue stick, the guideline overlay and the HUD text.
func (s *Simulation) Frame() *Frame {
	f := &Frame{
		Width:      TableWidth,
		Height:     TableHeight,
		Background: "#006400",
		Score:      s.Score,
		Power:      s.Cue.Power,
	}

	for _, p := range s.Pockets {
		f.Circles = append(f.Circles, Circle{Center: p.Position, Radius: p.Radius, Color: "#000000"})
	}

	f.Circles = append(f.Circles, Circle{Center: s.CueBall.Position, Radius: BallRadius, Color: s.CueBall.Color})
	for _, ball := range s.Balls {
		f.Circles = append(f.Circles, Circle{Center: ball.Position, Radius: BallRadius, Color: ball.Color})
	}

	f.Segments = append(f.Segments, s.Cue.StickSegment(s.CueBall.Position))
	f.Segments = append(f.Segments, s.Cue.Guideline(s.CueBall.Position, s.Balls)...)

	f.Labels = append(f.Labels,
		Label{Text: fmt.Sprintf("Score: %d", s.Score), Position: NewVec2(40, 20), Color: "#ffffff"},
		Label{Text: fmt.Sprintf("Power: %d", int(s.Cue.Power)), Position: NewVec2(TableWidth-150, 20), Color: "#ffffff"},
		Label{Text: "[G] to toggle guideline", Position: NewVec2(100, TableHeight-35), Color: "#ffffff"},
	)

	return f
}
