package simulation

import (
	"context"
	"testing"
	"time"

	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/stretchr/testify/assert"
)

func createDirectSession() *Session {
	return NewSession("direct", control_loop.NewDirectControlLoop(0), Parameters{
		InitialActual: 0,
		InitialTarget: 10,
		Schedule:      Schedule{2: 20},
	})
}

func TestSession_Step(t *testing.T) {
	// GIVEN
	session := createDirectSession()

	for loopIdx, expected := range []Sample{
		{Tick: 0, Target: 10, Actual: 10, Output: 10, Error: 0},
		{Tick: 1, Target: 10, Actual: 10, Output: 0, Error: 0},
		{Tick: 2, Target: 20, Actual: 20, Output: 10, Error: 0},
	} {
		// WHEN
		sample := session.Step()

		// THEN
		assert.Equal(t, expected, sample, "loop: %d", loopIdx)
	}
}

func TestSession_SetTarget(t *testing.T) {
	// GIVEN
	session := createDirectSession()
	session.Step()

	// WHEN
	session.SetTarget(5)
	session.Step()
	sample := session.Step()

	// THEN
	// the schedule entry at tick 2 is ignored after an override
	assert.Equal(t, 5.0, sample.Target)
	assert.Equal(t, 5.0, sample.Actual)
}

func TestSession_Reset(t *testing.T) {
	// GIVEN
	session := NewSession("pid", createDemoLoop(), DefaultParameters())
	session.Step()
	session.Step()
	session.SetTarget(30)

	// WHEN
	session.Reset()

	// THEN
	state := session.Snapshot()
	assert.Equal(t, -1, state.Tick)
	assert.Equal(t, 0.0, state.Actual)
	assert.Equal(t, 100.0, state.Target)
	assert.Equal(t, 0.0, state.Output)
	assert.NotNil(t, state.Terms)
	assert.Equal(t, 0.0, state.Terms.P)
}

func TestSession_Snapshot(t *testing.T) {
	// GIVEN
	session := NewSession("pid", createDemoLoop(), DefaultParameters())

	// WHEN
	session.Step()
	state := session.Snapshot()

	// THEN
	assert.Equal(t, "pid", state.Id)
	assert.Equal(t, 0, state.Tick)
	assert.Equal(t, 10.0, state.Output)
	assert.Equal(t, 10.0, state.Actual)
	assert.Equal(t, 90.0, state.Error)
	assert.NotNil(t, state.Gains)
	assert.Equal(t, 0.25, state.Gains.P)
}

func TestSession_SnapshotWithoutPid(t *testing.T) {
	// GIVEN
	session := createDirectSession()

	// WHEN
	state := session.Snapshot()

	// THEN
	assert.Nil(t, state.Gains)
	assert.Nil(t, state.Terms)
}

func TestSession_Run(t *testing.T) {
	// GIVEN
	session := createDirectSession()
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	// WHEN
	err := session.Run(ctx, 5*time.Millisecond)

	// THEN
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, session.Snapshot().Tick, 1)
}

func TestSessionMap(t *testing.T) {
	// GIVEN
	session := createDirectSession()

	// WHEN
	SessionMap.Set(session.GetId(), session)
	defer SessionMap.Remove(session.GetId())

	// THEN
	result, exists := SessionMap.Get("direct")
	assert.True(t, exists)
	assert.Same(t, session, result)
}
