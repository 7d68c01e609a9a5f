package configuration

import (
	"bytes"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helper function to load the given yaml content into CurrentConfig
func loadYaml(t *testing.T, content string) error {
	viper.Reset()
	t.Cleanup(viper.Reset)
	CurrentConfig = Configuration{}

	setDefaultValues()
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(bytes.NewBufferString(content)))
	return LoadConfig()
}

func TestLoadConfig(t *testing.T) {
	// GIVEN
	content := `
dbPath: /tmp/test.db
tickRate: 250ms
loops:
  - id: heater
    initialTarget: 60
    schedule:
      10: 80
      20: 40.5
    pid:
      p: 0.5
      i: 0.1
      outputLimit: 5
  - id: ramp
    tickRate: 1s
    direct:
      maxChangePerCycle: 2
`

	// WHEN
	err := loadYaml(t, content)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.db", CurrentConfig.DbPath)
	assert.Equal(t, 250*time.Millisecond, CurrentConfig.TickRate)
	assert.Len(t, CurrentConfig.Loops, 2)

	heater := CurrentConfig.Loops[0]
	assert.Equal(t, "heater", heater.ID)
	assert.Equal(t, 60.0, heater.InitialTarget)
	assert.Equal(t, ScheduleConfig{10: 80, 20: 40.5}, heater.Schedule)
	require.NotNil(t, heater.PID)
	assert.Equal(t, 0.5, heater.PID.P)
	assert.Equal(t, 0.1, heater.PID.I)
	assert.Equal(t, 5.0, heater.PID.OutputLimit)
	assert.Nil(t, heater.Direct)
	assert.Equal(t, 250*time.Millisecond, heater.GetTickRate(CurrentConfig.TickRate))

	ramp := CurrentConfig.Loops[1]
	require.NotNil(t, ramp.Direct)
	assert.Equal(t, 2.0, ramp.Direct.MaxChangePerCycle)
	assert.Equal(t, 1*time.Second, ramp.GetTickRate(CurrentConfig.TickRate))

	assert.NoError(t, Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	// WHEN
	err := loadYaml(t, "")

	// THEN
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, CurrentConfig.TickRate)
	assert.Equal(t, 100, CurrentConfig.Simulation.Ticks)
	assert.Equal(t, 10, CurrentConfig.Simulation.Window)
	assert.Equal(t, 9001, CurrentConfig.Api.Port)
	assert.False(t, CurrentConfig.Statistics.Enabled)
	assert.Equal(t, []LoopConfig{DefaultLoopConfig()}, CurrentConfig.Loops)
	assert.NoError(t, Validate())
}

func TestLoadConfig_InvalidSchedule(t *testing.T) {
	// GIVEN
	content := `
loops:
  - id: heater
    schedule:
      ten: 80
    pid:
      p: 1
`

	// WHEN
	err := loadYaml(t, content)

	// THEN
	assert.Error(t, err)
}

func TestFindLoopConfig(t *testing.T) {
	// GIVEN
	CurrentConfig = Configuration{
		Loops: []LoopConfig{DefaultLoopConfig()},
	}

	// WHEN
	result, err := FindLoopConfig(DefaultLoopId)

	// THEN
	require.NoError(t, err)
	assert.Equal(t, DefaultLoopId, result.ID)

	// WHEN
	_, err = FindLoopConfig("missing")

	// THEN
	assert.EqualError(t, err, "no loop with id found: missing, options: [default]")
}

func TestParseScheduleMap(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected ScheduleConfig
	}{
		{
			name:     "interface keys",
			input:    map[interface{}]interface{}{60: 50, "70": "25.5"},
			expected: ScheduleConfig{60: 50, 70: 25.5},
		},
		{
			name:     "string keys",
			input:    map[string]interface{}{"0": 100, "60": 50.0},
			expected: ScheduleConfig{0: 100, 60: 50},
		},
		{
			name:     "typed map",
			input:    map[int]float64{5: 1},
			expected: ScheduleConfig{5: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN
			result, err := parseScheduleMap(tt.input)

			// THEN
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestParseScheduleMap_Unsupported(t *testing.T) {
	// WHEN
	_, err := parseScheduleMap([]int{1, 2})

	// THEN
	assert.EqualError(t, err, "unsupported schedule type []int")
}
