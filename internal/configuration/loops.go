package configuration

import "time"

const (
	DefaultLoopId = "default"
)

type LoopConfig struct {
	ID string `json:"id"`
	// overrides Configuration.TickRate for this loop
	TickRate time.Duration `json:"tickRate,omitempty"`

	InitialActual float64        `json:"initialActual"`
	InitialTarget float64        `json:"initialTarget"`
	Schedule      ScheduleConfig `json:"schedule,omitempty"`

	PID    *PidLoopConfig    `json:"pid,omitempty"`
	Direct *DirectLoopConfig `json:"direct,omitempty"`
}

type PidLoopConfig struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
	F float64 `json:"f"`

	IntegralLimit float64 `json:"integralLimit,omitempty"`

	// symmetric output limit, mutually exclusive with OutputMin/OutputMax
	OutputLimit float64 `json:"outputLimit,omitempty"`
	OutputMin   float64 `json:"outputMin,omitempty"`
	OutputMax   float64 `json:"outputMax,omitempty"`

	SetpointRange  float64 `json:"setpointRange,omitempty"`
	OutputRampRate float64 `json:"outputRampRate,omitempty"`
	OutputFilter   float64 `json:"outputFilter,omitempty"`
	Reversed       bool    `json:"reversed,omitempty"`
}

type DirectLoopConfig struct {
	MaxChangePerCycle float64 `json:"maxChangePerCycle"`
}

// ScheduleConfig maps a tick to the target that becomes active at that tick.
type ScheduleConfig map[int]float64

// DefaultLoopConfig is the loop used when no loop is configured.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		ID:            DefaultLoopId,
		InitialActual: 0,
		InitialTarget: 100,
		Schedule: ScheduleConfig{
			60: 50,
		},
		PID: &PidLoopConfig{
			P:             0.25,
			I:             0.01,
			D:             0.4,
			OutputLimit:   10,
			SetpointRange: 40,
		},
	}
}

// GetTickRate returns the tick rate of this loop, falling back to defaultRate.
func (c LoopConfig) GetTickRate(defaultRate time.Duration) time.Duration {
	if c.TickRate > 0 {
		return c.TickRate
	}
	return defaultRate
}
