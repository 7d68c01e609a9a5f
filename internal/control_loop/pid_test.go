package control_loop

import (
	"testing"

	"github.com/markusressel/pid2go/internal/pid"
	"github.com/stretchr/testify/assert"
)

func TestPidControlLoop_Proportional(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(pid.New(0.5, 0, 0))

	// WHEN
	result := loop.Loop(10, 4)

	// THEN
	assert.Equal(t, 3.0, result)
	assert.Equal(t, 10.0, loop.Controller().Setpoint())
}

func TestPidControlLoop_Retune(t *testing.T) {
	// GIVEN
	loop := NewPidControlLoop(pid.New(0.5, 0, 0))
	loop.Loop(10, 4)

	// WHEN
	loop.Controller().SetP(1)
	result := loop.Loop(10, 4)

	// THEN
	assert.Equal(t, 6.0, result)
}

func TestNewDefaultPidControlLoop(t *testing.T) {
	// WHEN
	loop := NewDefaultPidControlLoop()

	// THEN
	gains := loop.Controller().Gains()
	assert.Equal(t, DefaultPidConfig.P, gains.P)
	assert.Equal(t, DefaultPidConfig.I, gains.I)
	assert.Equal(t, DefaultPidConfig.D, gains.D)
}
