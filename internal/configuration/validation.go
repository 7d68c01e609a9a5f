package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/pid2go/internal/ui"
	"golang.org/x/exp/slices"
)

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	if len(config.DbPath) <= 0 {
		return errors.New("dbPath must not be empty")
	}
	if config.TickRate <= 0 {
		return fmt.Errorf("tickRate must be positive, got %s", config.TickRate)
	}

	err := validateLoops(config)
	if err != nil {
		return err
	}

	err = validateSimulation(config.Simulation)
	if err != nil {
		return err
	}

	if config.Api.Enabled {
		if err := validatePort("api", config.Api.Port); err != nil {
			return err
		}
	}
	if config.Statistics.Enabled {
		if err := validatePort("statistics", config.Statistics.Port); err != nil {
			return err
		}
		if config.Api.Enabled && config.Api.Port == config.Statistics.Port {
			return fmt.Errorf("api and statistics cannot share port %d", config.Api.Port)
		}
	}

	return nil
}

func validateLoops(config *Configuration) error {
	var loopIds []string

	for _, loopConfig := range config.Loops {
		if len(loopConfig.ID) <= 0 {
			return errors.New("loop: missing id")
		}
		if slices.Contains(loopIds, loopConfig.ID) {
			return fmt.Errorf("duplicate loop id detected: %s", loopConfig.ID)
		}
		loopIds = append(loopIds, loopConfig.ID)

		subConfigs := 0
		if loopConfig.PID != nil {
			subConfigs++
		}
		if loopConfig.Direct != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("loop %s: only one loop type can be used per loop definition block", loopConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("loop %s: sub-configuration for loop is missing, use one of: %s", loopConfig.ID, strings.Join(supportedLoopTypes(), " | "))
		}

		if loopConfig.TickRate < 0 {
			return fmt.Errorf("loop %s: tickRate must not be negative", loopConfig.ID)
		}

		for tick := range loopConfig.Schedule {
			if tick < 0 {
				return fmt.Errorf("loop %s: schedule contains negative tick %d", loopConfig.ID, tick)
			}
		}

		if loopConfig.PID != nil {
			if err := validatePidLoop(loopConfig.ID, loopConfig.PID); err != nil {
				return err
			}
		}

		if loopConfig.Direct != nil && loopConfig.Direct.MaxChangePerCycle < 0 {
			return fmt.Errorf("loop %s: maxChangePerCycle must not be negative", loopConfig.ID)
		}
	}

	return nil
}

func supportedLoopTypes() []string {
	return []string{"pid", "direct"}
}

func validatePidLoop(id string, config *PidLoopConfig) error {
	if config.P == 0 && config.I == 0 && config.D == 0 && config.F == 0 {
		return fmt.Errorf("loop %s: all PID constants are zero", id)
	}
	if config.IntegralLimit < 0 {
		return fmt.Errorf("loop %s: integralLimit must not be negative", id)
	}
	if config.OutputLimit < 0 {
		return fmt.Errorf("loop %s: outputLimit must not be negative", id)
	}
	if config.OutputLimit != 0 && (config.OutputMin != 0 || config.OutputMax != 0) {
		return fmt.Errorf("loop %s: outputLimit cannot be combined with outputMin/outputMax", id)
	}
	if config.OutputMax < config.OutputMin {
		return fmt.Errorf("loop %s: outputMax (%v) must not be smaller than outputMin (%v)", id, config.OutputMax, config.OutputMin)
	}
	if config.SetpointRange < 0 {
		return fmt.Errorf("loop %s: setpointRange must not be negative", id)
	}
	if config.OutputRampRate < 0 {
		return fmt.Errorf("loop %s: outputRampRate must not be negative", id)
	}
	if config.OutputFilter < 0 || config.OutputFilter >= 1 {
		return fmt.Errorf("loop %s: outputFilter must be in [0, 1), got %v", id, config.OutputFilter)
	}
	if config.IntegralLimit != 0 && config.I == 0 {
		ui.Warning("Loop %s: integralLimit has no effect while I is zero", id)
	}
	return nil
}

func validateSimulation(config SimulationConfig) error {
	if config.Ticks <= 0 {
		return fmt.Errorf("simulation: ticks must be positive, got %d", config.Ticks)
	}
	if config.Tolerance < 0 {
		return fmt.Errorf("simulation: tolerance must not be negative")
	}
	if config.Window <= 0 {
		return fmt.Errorf("simulation: window must be positive, got %d", config.Window)
	}
	return nil
}

func validatePort(name string, port int) error {
	if port <= 0 || port >= 65535 {
		return fmt.Errorf("%s: invalid port %d", name, port)
	}
	return nil
}
