package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	// GIVEN
	expectedInputOutput := map[float64]float64{
		-20.0: -10.0,
		-10.0: -10.0,
		0.0:   0.0,
		9.5:   9.5,
		10.0:  10.0,
		11.0:  10.0,
	}

	for input, output := range expectedInputOutput {
		// WHEN
		result := Coerce(input, -10, 10)

		// THEN
		assert.Equal(t, output, result, "input: %v", input)
	}
}

func TestCoerce_Int(t *testing.T) {
	// WHEN
	result := Coerce(300, 0, 255)

	// THEN
	assert.Equal(t, 255, result)
}

func TestInRange(t *testing.T) {
	assert.True(t, InRange(0.0, -1.0, 1.0))
	assert.True(t, InRange(0.999, -1.0, 1.0))

	// bounds are exclusive
	assert.False(t, InRange(1.0, -1.0, 1.0))
	assert.False(t, InRange(-1.0, -1.0, 1.0))
	assert.False(t, InRange(5.0, -1.0, 1.0))
}

func TestAvg(t *testing.T) {
	// GIVEN
	values := []float64{1, 2, 3, 6}

	// WHEN
	result := Avg(values)

	// THEN
	assert.Equal(t, 3.0, result)
}

func TestAvg_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Avg(nil))
}

