package simulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/markusressel/pid2go/internal/pid"
)

// Record is a finished simulation run, as stored in persistence.
type Record struct {
	Id         string     `json:"id" yaml:"id"`
	LoopId     string     `json:"loopId" yaml:"loopId"`
	CreatedAt  time.Time  `json:"createdAt" yaml:"createdAt"`
	Gains      *pid.Gains `json:"gains,omitempty" yaml:"gains,omitempty"`
	Parameters Parameters `json:"parameters" yaml:"parameters"`
	Trajectory Trajectory `json:"trajectory" yaml:"trajectory"`
	Report     Report     `json:"report" yaml:"report"`
}

func NewRecord(loopId string, gains *pid.Gains, params Parameters, trajectory Trajectory, report Report) Record {
	return Record{
		Id:         uuid.NewString(),
		LoopId:     loopId,
		CreatedAt:  time.Now(),
		Gains:      gains,
		Parameters: params,
		Trajectory: trajectory,
		Report:     report,
	}
}
