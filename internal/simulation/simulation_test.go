package simulation

import (
	"math"
	"testing"

	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
)

// helper function to create the controller of the classic demonstration
func createDemoLoop() *control_loop.PidControlLoop {
	controller := pid.New(0.25, 0.01, 0.4)
	controller.SetOutputLimits(-10, 10)
	return control_loop.NewPidControlLoop(controller)
}

func TestProcess_Apply(t *testing.T) {
	// GIVEN
	process := Process{Actual: 5}

	// WHEN
	process.Apply(3)
	process.Apply(-1)

	// THEN
	assert.Equal(t, 7.0, process.Actual)
}

func TestSchedule_TargetAt(t *testing.T) {
	// GIVEN
	schedule := Schedule{
		10: 5,
		20: 7,
	}

	expectedInputOutput := map[int]float64{
		0:  1,
		9:  1,
		10: 5,
		15: 5,
		20: 7,
		99: 7,
	}

	for tick, expected := range expectedInputOutput {
		// WHEN
		result := schedule.TargetAt(tick, 1)

		// THEN
		assert.Equal(t, expected, result, "tick: %d", tick)
	}
}

func TestSchedule_Empty(t *testing.T) {
	assert.Equal(t, 42.0, Schedule(nil).TargetAt(10, 42))
}

func TestRun_DirectLoop(t *testing.T) {
	// GIVEN
	loop := control_loop.NewDirectControlLoop(4)
	params := Parameters{
		Ticks:         5,
		InitialActual: 0,
		InitialTarget: 10,
	}

	// WHEN
	trajectory := Run(loop, params)

	// THEN
	assert.Len(t, trajectory, 5)
	assert.Equal(t, []float64{4, 8, 10, 10, 10}, trajectory.Actuals())
	assert.Equal(t, []float64{4, 4, 2, 0, 0}, trajectory.Outputs())
	assert.Equal(t, Sample{Tick: 2, Target: 10, Actual: 10, Output: 2, Error: 0}, trajectory[2])
}

func TestRun_DemoScenario(t *testing.T) {
	// GIVEN
	loop := createDemoLoop()
	params := DefaultParameters()

	// WHEN
	trajectory := Run(loop, params)

	// THEN
	assert.Len(t, trajectory, 100)
	for _, sample := range trajectory {
		assert.GreaterOrEqual(t, sample.Output, -10.0, "tick: %d", sample.Tick)
		assert.LessOrEqual(t, sample.Output, 10.0, "tick: %d", sample.Tick)
	}
	assert.Equal(t, 100.0, trajectory[59].Target)
	assert.Equal(t, 50.0, trajectory[60].Target)

	// the process has approached each target when it changes
	assert.Less(t, math.Abs(trajectory[59].Error), 2.5)
	assert.Less(t, math.Abs(trajectory[99].Error), 5.0)

	for _, segment := range segments(trajectory) {
		// no sustained oscillation around the target
		signChanges := 0
		for i := 1; i < len(segment); i++ {
			if math.Signbit(segment[i].Error) != math.Signbit(segment[i-1].Error) {
				signChanges++
			}
		}
		assert.LessOrEqual(t, signChanges, 1, "segment starting at tick %d", segment[0].Tick)

		// and the error keeps shrinking towards the end of the segment
		tail := segment[len(segment)-15:]
		for i := 1; i < len(tail); i++ {
			assert.Less(t, math.Abs(tail[i].Error), math.Abs(tail[i-1].Error), "tick: %d", tail[i].Tick)
		}
	}
}

func TestRun_DemoScenarioWithSetpointRange(t *testing.T) {
	// GIVEN
	loop := createDemoLoop()
	loop.Controller().SetSetpointRange(40)

	// WHEN
	trajectory := Run(loop, DefaultParameters())

	// THEN
	assert.Equal(t, 10.0, trajectory[0].Output)
	assert.InDelta(t, 6.4, trajectory[1].Output, 1e-9)
	for _, sample := range trajectory {
		assert.LessOrEqual(t, math.Abs(sample.Output), 10.0, "tick: %d", sample.Tick)
	}
	assert.Less(t, math.Abs(trajectory[99].Error), 5.0)
}

func TestTrajectory_Targets(t *testing.T) {
	// GIVEN
	trajectory := Run(createDemoLoop(), Parameters{
		Ticks:         4,
		InitialTarget: 1,
		Schedule:      Schedule{2: 3},
	})

	// WHEN
	targets := trajectory.Targets()

	// THEN
	assert.Equal(t, []float64{1, 1, 3, 3}, targets)
}
