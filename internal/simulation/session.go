package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	SessionMap = cmap.New[*Session]()
)

// Session is a simulated process driven by a control loop, one tick at a time.
// All access to the loop goes through the session lock, which makes it safe
// to retarget or inspect a session while it is running.
type Session struct {
	id       string
	loop     control_loop.ControlLoop
	params   Parameters
	process  Process
	target   float64
	override bool
	last     Sample

	mu sync.Mutex
}

type SessionState struct {
	Id     string     `json:"id"`
	Tick   int        `json:"tick"`
	Target float64    `json:"target"`
	Actual float64    `json:"actual"`
	Output float64    `json:"output"`
	Error  float64    `json:"error"`
	Gains  *pid.Gains `json:"gains,omitempty"`
	Terms  *pid.Terms `json:"terms,omitempty"`
}

func NewSession(id string, loop control_loop.ControlLoop, params Parameters) *Session {
	return &Session{
		id:      id,
		loop:    loop,
		params:  params,
		process: Process{Actual: params.InitialActual},
		target:  params.InitialTarget,
		last:    Sample{Tick: -1, Target: params.InitialTarget, Actual: params.InitialActual, Error: params.InitialTarget - params.InitialActual},
	}
}

func (s *Session) GetId() string {
	return s.id
}

// Step advances the session by a single tick.
func (s *Session) Step() Sample {
	s.mu.Lock()
	defer s.mu.Unlock()

	tick := s.last.Tick + 1
	if !s.override {
		s.target = s.params.Schedule.TargetAt(tick, s.params.InitialTarget)
	}

	output := s.loop.Loop(s.target, s.process.Actual)
	s.process.Apply(output)

	s.last = Sample{
		Tick:   tick,
		Target: s.target,
		Actual: s.process.Actual,
		Output: output,
		Error:  s.target - s.process.Actual,
	}
	return s.last
}

// SetTarget overrides the target of the session, the schedule is ignored from then on.
func (s *Session) SetTarget(target float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = target
	s.override = true
}

// Reset restores the initial process state and clears the controller state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.process = Process{Actual: s.params.InitialActual}
	s.target = s.params.InitialTarget
	s.override = false
	s.last = Sample{Tick: -1, Target: s.target, Actual: s.process.Actual, Error: s.target - s.process.Actual}
	if pidLoop, ok := s.loop.(*control_loop.PidControlLoop); ok {
		pidLoop.Controller().Reset()
	}
}

func (s *Session) Snapshot() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := SessionState{
		Id:     s.id,
		Tick:   s.last.Tick,
		Target: s.target,
		Actual: s.process.Actual,
		Output: s.last.Output,
		Error:  s.target - s.process.Actual,
	}
	if pidLoop, ok := s.loop.(*control_loop.PidControlLoop); ok {
		gains := pidLoop.Controller().Gains()
		terms := pidLoop.Controller().LastTerms()
		state.Gains = &gains
		state.Terms = &terms
	}
	return state
}

// Run steps the session at the given tick rate until ctx is done.
func (s *Session) Run(ctx context.Context, tickRate time.Duration) error {
	ui.Info("Starting control loop '%s' with a tick rate of %s", s.id, tickRate)

	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sample := s.Step()
			ui.Debug("Loop %s: tick: %d, target: %.2f, actual: %.2f, output: %.2f",
				s.id, sample.Tick, sample.Target, sample.Actual, sample.Output)
		}
	}
}
