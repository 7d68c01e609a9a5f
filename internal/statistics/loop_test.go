package statistics

import (
	"strings"
	"testing"

	"github.com/markusressel/pid2go/internal/control_loop"
	"github.com/markusressel/pid2go/internal/pid"
	"github.com/markusressel/pid2go/internal/simulation"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// helper function to create a session registry with a single stepped session
func createSessions(id string, loop control_loop.ControlLoop) cmap.ConcurrentMap[string, *simulation.Session] {
	sessions := cmap.New[*simulation.Session]()
	session := simulation.NewSession(id, loop, simulation.Parameters{
		Ticks:         10,
		InitialActual: 0,
		InitialTarget: 10,
	})
	session.Step()
	sessions.Set(id, session)
	return sessions
}

func TestLoopCollector_PidLoop(t *testing.T) {
	// GIVEN
	sessions := createSessions("heater", control_loop.NewPidControlLoop(pid.New(0.5, 0, 0)))
	collector := NewLoopCollector(sessions)

	expected := `
# HELP pid2go_loop_actual Current measured value of the loop
# TYPE pid2go_loop_actual gauge
pid2go_loop_actual{id="heater"} 5
# HELP pid2go_loop_error Current difference between target and measured value
# TYPE pid2go_loop_error gauge
pid2go_loop_error{id="heater"} 5
# HELP pid2go_loop_output Output computed in the last tick of the loop
# TYPE pid2go_loop_output gauge
pid2go_loop_output{id="heater"} 5
# HELP pid2go_loop_p_term Proportional contribution to the last output
# TYPE pid2go_loop_p_term gauge
pid2go_loop_p_term{id="heater"} 5
# HELP pid2go_loop_setpoint Current target of the loop
# TYPE pid2go_loop_setpoint gauge
pid2go_loop_setpoint{id="heater"} 10
`

	// WHEN
	err := testutil.CollectAndCompare(collector, strings.NewReader(expected),
		"pid2go_loop_actual",
		"pid2go_loop_error",
		"pid2go_loop_output",
		"pid2go_loop_p_term",
		"pid2go_loop_setpoint",
	)

	// THEN
	assert.NoError(t, err)
	// 4 state gauges + 4 terms
	assert.Equal(t, 8, testutil.CollectAndCount(collector))
}

func TestLoopCollector_DirectLoopHasNoTerms(t *testing.T) {
	// GIVEN
	sessions := createSessions("direct", control_loop.NewDirectControlLoop(2))
	collector := NewLoopCollector(sessions)

	// WHEN
	count := testutil.CollectAndCount(collector, "pid2go_loop_p_term")

	// THEN
	assert.Equal(t, 0, count)
	assert.Equal(t, 4, testutil.CollectAndCount(collector))
}

func TestLoopCollector_Empty(t *testing.T) {
	// GIVEN
	collector := NewLoopCollector(cmap.New[*simulation.Session]())

	// WHEN
	count := testutil.CollectAndCount(collector)

	// THEN
	assert.Equal(t, 0, count)
}
