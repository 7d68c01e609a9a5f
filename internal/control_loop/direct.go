package control_loop

import (
	"github.com/markusressel/pid2go/internal/util"
)

// DirectControlLoop is a very simple control that directly returns the
// difference between target and measured value. It can also be used to gracefully
// approach the target by utilizing the "maxChangePerCycle" property.
type DirectControlLoop struct {
	// limits the maximum allowed change per cycle, 0 means unlimited
	maxChangePerCycle float64
}

// NewDirectControlLoop creates a DirectControlLoop.
// maxChangePerCycle can be used to limit the maximum allowed change per cycle,
// a value <= 0 disables the limit.
func NewDirectControlLoop(maxChangePerCycle float64) *DirectControlLoop {
	if maxChangePerCycle < 0 {
		maxChangePerCycle = 0
	}
	return &DirectControlLoop{
		maxChangePerCycle: maxChangePerCycle,
	}
}

func (l *DirectControlLoop) Loop(target float64, measured float64) float64 {
	err := target - measured
	if l.maxChangePerCycle == 0 {
		return err
	}

	// we can be above or below the target value,
	// so we subtract or add at most the max change,
	// capped to having reached the target
	if err > 0 {
		return util.Coerce(l.maxChangePerCycle, 0, err)
	} else {
		return util.Coerce(-l.maxChangePerCycle, err, 0)
	}
}
