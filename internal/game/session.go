package game

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Input event kinds delivered by the input surface.
const (
	InputAim       = "aim"
	InputShoot     = "shoot"
	InputGuideline = "toggle_guideline"
	InputPowerUp   = "power_up"
	InputPowerDown = "power_down"
	InputQuit      = "quit"
)

// InputEvent is a discrete input sample. X and Y carry the pointer
// position for aim events.
type InputEvent struct {
	Kind string  `json:"kind"`
	X    float64 `json:"x,omitempty"`
	Y    float64 `json:"y,omitempty"`
}

// Session runs one simulation on a fixed-rate loop. The loop goroutine
// is the only writer of the simulation state; inputs arrive on a
// buffered channel and are drained once per tick, frames fan out to
// subscribers as marshaled JSON.
type Session struct {
	ID         string
	Token      string
	PlayerName string
	CreatedAt  time.Time

	sim     *Simulation
	pointer Vec2

	inputs chan InputEvent
	done   chan struct{}
	once   sync.Once

	subMu       sync.RWMutex
	subscribers map[chan []byte]struct{}

	lastFrame    atomic.Value // []byte, most recent marshaled frame
	lastActivity int64        // unix nano, touched on every input
	frameCount   uint64
}

// NewSession creates a session with a freshly racked table.
func NewSession(id, token, playerName string) *Session {
	s := &Session{
		ID:          id,
		Token:       token,
		PlayerName:  playerName,
		CreatedAt:   time.Now(),
		sim:         NewSimulation(),
		inputs:      make(chan InputEvent, 64),
		done:        make(chan struct{}),
		subscribers: make(map[chan []byte]struct{}),
	}
	s.touch()
	return s
}

// Subscribe registers a frame receiver. The channel is closed when the
// session ends.
func (s *Session) Subscribe() chan []byte {
	ch := make(chan []byte, 8)
	s.subMu.Lock()
	s.subscribers[ch] = struct{}{}
	s.subMu.Unlock()
	return ch
}

// Unsubscribe removes a frame receiver.
func (s *Session) Unsubscribe(ch chan []byte) {
	s.subMu.Lock()
	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
	s.subMu.Unlock()
}

// HandleInput queues an input event. Events are dropped rather than
// blocking the surface when the buffer is full.
func (s *Session) HandleInput(ev InputEvent) {
	select {
	case s.inputs <- ev:
	default:
		log.Printf("[SESSION] %s input buffer full, dropping %s", s.ID, ev.Kind)
	}
}

// Close stops the session loop. Safe to call more than once.
func (s *Session) Close() {
	s.once.Do(func() { close(s.done) })
}

// Done exposes the session's termination signal.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// LastFrame returns the most recent marshaled frame, or nil before the
// first tick.
func (s *Session) LastFrame() []byte {
	if v := s.lastFrame.Load(); v != nil {
		return v.([]byte)
	}
	return nil
}

// IdleSince reports how long ago the session last saw input.
func (s *Session) IdleSince() time.Duration {
	return time.Since(time.Unix(0, atomic.LoadInt64(&s.lastActivity)))
}

func (s *Session) touch() {
	atomic.StoreInt64(&s.lastActivity, time.Now().UnixNano())
}

// Run drives the frame loop until the session is closed or the context
// is canceled. Per tick: drain inputs, advance the simulation one step
// with the latest pointer sample, publish the frame.
func (s *Session) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / FramesPerSecond)
	defer ticker.Stop()

	log.Printf("[SESSION] %s started (player=%s)", s.ID, s.PlayerName)

	for {
		select {
		case <-ctx.Done():
			s.finish()
			return
		case <-s.done:
			s.finish()
			return
		case <-ticker.C:
			s.drainInputs()
			s.sim.Update(s.pointer.X, s.pointer.Y)
			s.publishFrame()
			s.frameCount++

			// Snapshot to Redis once a second.
			if s.frameCount%FramesPerSecond == 0 && Manager != nil {
				Manager.saveSessionToRedis(s)
			}
		}
	}
}

func (s *Session) drainInputs() {
	for {
		select {
		case ev := <-s.inputs:
			s.applyInput(ev)
		default:
			return
		}
	}
}

func (s *Session) applyInput(ev InputEvent) {
	s.touch()
	switch ev.Kind {
	case InputAim:
		s.pointer = NewVec2(ev.X, ev.Y)
	case InputShoot:
		if s.sim.Shoot() {
			log.Printf("[SESSION] %s shot taken (angle=%.2f power=%.0f)", s.ID, s.sim.Cue.Angle, s.sim.Cue.Power)
		}
	case InputGuideline:
		s.sim.Cue.ToggleGuideline()
	case InputPowerUp:
		s.sim.Cue.AdjustPower(PowerStep)
	case InputPowerDown:
		s.sim.Cue.AdjustPower(-PowerStep)
	case InputQuit:
		s.Close()
	default:
		log.Printf("[SESSION] %s unknown input kind %q", s.ID, ev.Kind)
	}
}

func (s *Session) publishFrame() {
	data, err := json.Marshal(s.sim.Frame())
	if err != nil {
		log.Printf("[SESSION] %s frame marshal error: %v", s.ID, err)
		return
	}
	s.lastFrame.Store(data)

	s.subMu.RLock()
	for ch := range s.subscribers {
		select {
		case ch <- data:
		default:
			// Slow consumer; skip this frame for it.
		}
	}
	s.subMu.RUnlock()
}

// finish runs on the loop goroutine after the last tick, so reading the
// simulation directly is safe here.
func (s *Session) finish() {
	s.subMu.Lock()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
	s.subMu.Unlock()

	log.Printf("[SESSION] %s finished (score=%d pocketed=%d scratches=%d)",
		s.ID, s.sim.Score, s.sim.BallsPocketed, s.sim.Scratches)

	if Manager != nil {
		Manager.FinishSession(s)
	}
}
