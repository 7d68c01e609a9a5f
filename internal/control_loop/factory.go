package control_loop

import (
	"fmt"

	"github.com/markusressel/pid2go/internal/configuration"
	"github.com/markusressel/pid2go/internal/pid"
)

// NewControlLoop creates the control loop described by the given loop configuration.
func NewControlLoop(config configuration.LoopConfig) (ControlLoop, error) {
	if config.PID != nil {
		return NewPidControlLoop(newController(config.PID)), nil
	}

	if config.Direct != nil {
		return NewDirectControlLoop(config.Direct.MaxChangePerCycle), nil
	}

	return nil, fmt.Errorf("no matching loop type for loop: %s", config.ID)
}

func newController(config *configuration.PidLoopConfig) *pid.Controller {
	controller := pid.NewWithFeedForward(config.P, config.I, config.D, config.F)

	controller.SetIntegralLimit(config.IntegralLimit)
	if config.OutputLimit != 0 {
		controller.SetOutputLimit(config.OutputLimit)
	} else {
		controller.SetOutputLimits(config.OutputMin, config.OutputMax)
	}
	controller.SetSetpointRange(config.SetpointRange)
	controller.SetOutputRampRate(config.OutputRampRate)
	controller.SetOutputFilter(config.OutputFilter)
	controller.SetReversed(config.Reversed)

	return controller
}
