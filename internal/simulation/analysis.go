package simulation

import (
	"math"

	"github.com/markusressel/pid2go/internal/util"
)

type Report struct {
	// largest absolute output of any tick
	MaxAbsOutput float64 `json:"maxAbsOutput" yaml:"maxAbsOutput"`
	// error after the last tick
	FinalError float64 `json:"finalError" yaml:"finalError"`
	// largest distance the actual value went past its target
	Overshoot float64 `json:"overshoot" yaml:"overshoot"`
	// mean absolute error within the last window
	MeanAbsError float64 `json:"meanAbsError" yaml:"meanAbsError"`
	// whether all errors within the last window were within tolerance
	Converged bool `json:"converged" yaml:"converged"`
	// first tick after the last target change from which the error stayed
	// within tolerance, -1 if it never settled
	SettledAtTick int `json:"settledAtTick" yaml:"settledAtTick"`
}

// Analyze evaluates a trajectory. tolerance is the maximum absolute error that is
// considered "on target", window the number of trailing ticks used to decide
// convergence.
func Analyze(trajectory Trajectory, tolerance float64, window int) Report {
	report := Report{SettledAtTick: -1}
	if len(trajectory) <= 0 {
		return report
	}
	if window <= 0 {
		window = 1
	}

	errorWindow := util.CreateRollingWindow(window)
	for _, sample := range trajectory {
		report.MaxAbsOutput = math.Max(report.MaxAbsOutput, math.Abs(sample.Output))
		errorWindow.Append(math.Abs(sample.Error))
	}
	report.FinalError = trajectory[len(trajectory)-1].Error
	report.Converged = len(trajectory) >= window && util.GetWindowMax(errorWindow) <= tolerance

	var trailingErrors []float64
	for _, sample := range trajectory[max(0, len(trajectory)-window):] {
		trailingErrors = append(trailingErrors, math.Abs(sample.Error))
	}
	report.MeanAbsError = util.Avg(trailingErrors)

	parts := segments(trajectory)
	for _, segment := range parts {
		report.Overshoot = math.Max(report.Overshoot, overshoot(segment))
	}

	lastSegment := parts[len(parts)-1]
	for i := len(lastSegment) - 1; i >= 0; i-- {
		if math.Abs(lastSegment[i].Error) > tolerance {
			break
		}
		report.SettledAtTick = lastSegment[i].Tick
	}

	return report
}

// segments splits a trajectory at every target change
func segments(trajectory Trajectory) []Trajectory {
	var result []Trajectory
	start := 0
	for i := 1; i < len(trajectory); i++ {
		if trajectory[i].Target != trajectory[i-1].Target {
			result = append(result, trajectory[start:i])
			start = i
		}
	}
	return append(result, trajectory[start:])
}

func overshoot(segment Trajectory) float64 {
	first := segment[0]
	// direction of approach, based on where the process was before the first output
	startedBelow := first.Actual-first.Output < first.Target

	result := 0.0
	for _, sample := range segment {
		var past float64
		if startedBelow {
			past = sample.Actual - sample.Target
		} else {
			past = sample.Target - sample.Actual
		}
		result = math.Max(result, past)
	}
	return result
}
