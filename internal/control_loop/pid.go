package control_loop

import (
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/ui"
)

type PidControlLoopDefaults struct {
	P float64
	I float64
	D float64
}

var (
	DefaultPidConfig = PidControlLoopDefaults{
		P: 0.25,
		I: 0.01,
		D: 0.4,
	}
)

// PidControlLoop is a pid.Controller based control loop implementation.
type PidControlLoop struct {
	controller *pid.Controller
}

// NewPidControlLoop creates a PidControlLoop, which uses the given controller to approach the target.
func NewPidControlLoop(controller *pid.Controller) *PidControlLoop {
	return &PidControlLoop{
		controller: controller,
	}
}

// NewDefaultPidControlLoop creates a PidControlLoop using DefaultPidConfig.
func NewDefaultPidControlLoop() *PidControlLoop {
	return NewPidControlLoop(pid.New(DefaultPidConfig.P, DefaultPidConfig.I, DefaultPidConfig.D))
}

func (l *PidControlLoop) Loop(target float64, measured float64) float64 {
	result := l.controller.Compute(measured, target)
	terms := l.controller.LastTerms()
	ui.Debug("PidControlLoop: target: %.4f, measured: %.4f, result: %.4f (P: %.4f, I: %.4f, D: %.4f, F: %.4f)",
		target, measured, result, terms.P, terms.I, terms.D, terms.F)
	return result
}

// Controller returns the underlying controller, e.g. to retune it between ticks.
func (l *PidControlLoop) Controller() *pid.Controller {
	return l.controller
}
