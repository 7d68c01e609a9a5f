package simulation

import (
	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/util"
)

// Process is a minimal process model: every output is added to the actual value.
type Process struct {
	Actual float64 `json:"actual"`
}

// Apply feeds output into the process.
func (p *Process) Apply(output float64) {
	p.Actual += output
}

// Schedule maps a tick to the target that becomes active at that tick.
type Schedule map[int]float64

// TargetAt returns the target active at the given tick, which is the value of the
// greatest key <= tick, or initial if there is none.
func (s Schedule) TargetAt(tick int, initial float64) float64 {
	target := initial
	for _, key := range util.SortedKeys(s) {
		if key > tick {
			break
		}
		target = s[key]
	}
	return target
}

type Parameters struct {
	Ticks         int      `json:"ticks" yaml:"ticks"`
	InitialActual float64  `json:"initialActual" yaml:"initialActual"`
	InitialTarget float64  `json:"initialTarget" yaml:"initialTarget"`
	Schedule      Schedule `json:"schedule" yaml:"schedule"`
}

// DefaultParameters reproduces the classic demonstration: the process starts at 0,
// is driven towards 100 and retargeted to 50 at tick 60.
func DefaultParameters() Parameters {
	return Parameters{
		Ticks:         100,
		InitialActual: 0,
		InitialTarget: 100,
		Schedule: Schedule{
			60: 50,
		},
	}
}

type Sample struct {
	Tick   int     `json:"tick" yaml:"tick"`
	Target float64 `json:"target" yaml:"target"`
	Actual float64 `json:"actual" yaml:"actual"`
	Output float64 `json:"output" yaml:"output"`
	Error  float64 `json:"error" yaml:"error"`
}

type Trajectory []Sample

// Run drives a simulated process with the given loop for params.Ticks ticks.
// Each sample holds the state after the output of that tick has been applied.
func Run(loop control_loop.ControlLoop, params Parameters) Trajectory {
	process := Process{Actual: params.InitialActual}
	trajectory := make(Trajectory, 0, params.Ticks)

	for tick := 0; tick < params.Ticks; tick++ {
		target := params.Schedule.TargetAt(tick, params.InitialTarget)
		output := loop.Loop(target, process.Actual)
		process.Apply(output)

		trajectory = append(trajectory, Sample{
			Tick:   tick,
			Target: target,
			Actual: process.Actual,
			Output: output,
			Error:  target - process.Actual,
		})
	}

	return trajectory
}

func (t Trajectory) Actuals() []float64 {
	result := make([]float64, 0, len(t))
	for _, sample := range t {
		result = append(result, sample.Actual)
	}
	return result
}

func (t Trajectory) Targets() []float64 {
	result := make([]float64, 0, len(t))
	for _, sample := range t {
		result = append(result, sample.Target)
	}
	return result
}

func (t Trajectory) Outputs() []float64 {
	result := make([]float64, 0, len(t))
	for _, sample := range t {
		result = append(result, sample.Output)
	}
	return result
}
