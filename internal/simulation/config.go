package simulation

import (
	"github.com/markusressel/pid2go/internal/configuration"
)

// ParametersFromConfig creates the simulation parameters of a configured loop.
func ParametersFromConfig(loopConfig configuration.LoopConfig, ticks int) Parameters {
	schedule := Schedule{}
	for tick, target := range loopConfig.Schedule {
		schedule[tick] = target
	}

	return Parameters{
		Ticks:         ticks,
		InitialActual: loopConfig.InitialActual,
		InitialTarget: loopConfig.InitialTarget,
		Schedule:      schedule,
	}
}
