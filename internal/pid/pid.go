package pid

import (
	"math"

	"github.com/markusressel/pid2go/internal/util"
)

// Controller is a PID-F controller with integral anti-windup and output clamping.
// It is meant to be called once per control tick by a loop owning both the
// actuator and the sensor.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	// Proportional gain
	p float64
	// Integral gain
	i float64
	// Derivative gain
	d float64
	// Feed-forward gain
	f float64

	// maximum output contributed by the I term, 0 disables it
	maxIOutput float64
	// maximum accumulated error, kept at maxIOutput / i
	maxError float64
	// integral accumulator, i.e. the running sum of the error
	errorSum float64

	// output limits, equal values disable clamping
	outMin float64
	outMax float64

	// last commanded target
	setpoint float64
	// last measured value, used for derivative-on-measurement
	lastMeasured float64

	// maximum distance between the effective setpoint and the measured value, 0 disables it
	setpointRange float64
	// maximum output change per computation, 0 disables it
	outputRampRate float64
	// low pass filter strength in [0, 1), 0 disables it
	outputFilter float64
	// inverts the sign of all terms
	reversed bool

	// output of the previous computation
	lastOutput float64
	// term contributions of the previous computation
	lastTerms Terms
}

// Gains is a snapshot of the term coefficients of a Controller.
type Gains struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
	F float64 `json:"f"`
}

// Terms holds the individual contributions that made up an output value.
type Terms struct {
	P float64 `json:"p"`
	I float64 `json:"i"`
	D float64 `json:"d"`
	F float64 `json:"f"`
}

// New creates a Controller with the given proportional, integral and derivative gains.
func New(p, i, d float64) *Controller {
	return &Controller{
		p: p,
		i: i,
		d: d,
	}
}

// NewWithFeedForward creates a Controller with an additional feed-forward gain.
func NewWithFeedForward(p, i, d, f float64) *Controller {
	return &Controller{
		p: p,
		i: i,
		d: d,
		f: f,
	}
}

func (c *Controller) SetP(p float64) {
	c.p = p
}

// SetI changes the integral gain.
// The accumulated error is scaled by old/new so the output contributed by the
// I term stays the same across the change.
func (c *Controller) SetI(i float64) {
	if c.i != 0 && i != 0 {
		c.errorSum = c.errorSum * c.i / i
	}
	if c.maxIOutput != 0 && i != 0 {
		c.maxError = c.maxIOutput / i
	}
	c.i = i
}

func (c *Controller) SetD(d float64) {
	c.d = d
}

func (c *Controller) SetF(f float64) {
	c.f = f
}

// SetGains replaces the P, I and D gains. The I gain is changed using SetI.
func (c *Controller) SetGains(p, i, d float64) {
	c.SetP(p)
	c.SetI(i)
	c.SetD(d)
}

// SetGainsWithFeedForward replaces all four gains. The I gain is changed using SetI.
func (c *Controller) SetGainsWithFeedForward(p, i, d, f float64) {
	c.SetGains(p, i, d)
	c.SetF(f)
}

// SetIntegralLimit sets the maximum output contributed by the I term.
// A limit of 0 disables integral limiting.
func (c *Controller) SetIntegralLimit(limit float64) {
	c.maxIOutput = limit
	if c.i != 0 {
		c.maxError = c.maxIOutput / c.i
	}
}

// SetOutputLimits sets the range the output is clamped to.
// The call is ignored if max < min. Equal values disable clamping.
func (c *Controller) SetOutputLimits(min, max float64) {
	if max < min {
		return
	}
	c.outMin = min
	c.outMax = max
}

// SetOutputLimit clamps the output to [-limit, limit].
func (c *Controller) SetOutputLimit(limit float64) {
	c.SetOutputLimits(-limit, limit)
}

// SetSetpoint sets the target used by the next computation.
func (c *Controller) SetSetpoint(setpoint float64) {
	c.setpoint = setpoint
}

// SetSetpointRange limits the setpoint used for a computation to the measured
// value +/- r. The stored setpoint itself is not modified. 0 disables it.
func (c *Controller) SetSetpointRange(r float64) {
	if r < 0 {
		return
	}
	c.setpointRange = r
}

// SetOutputRampRate limits how much the output may change between two
// consecutive computations. 0 disables it.
func (c *Controller) SetOutputRampRate(rate float64) {
	if rate < 0 {
		return
	}
	c.outputRampRate = rate
}

// SetOutputFilter applies a first order low pass filter to the output.
// strength must be in [0, 1), higher values smooth more. 0 disables it.
func (c *Controller) SetOutputFilter(strength float64) {
	if strength < 0 || strength >= 1 {
		return
	}
	c.outputFilter = strength
}

// SetReversed inverts the direction of the controller, e.g. for cooling
// processes where a higher output lowers the measured value.
func (c *Controller) SetReversed(reversed bool) {
	c.reversed = reversed
}

// Reset clears all runtime state. Gains and limits are kept.
func (c *Controller) Reset() {
	c.errorSum = 0
	c.lastMeasured = 0
	c.lastOutput = 0
	c.lastTerms = Terms{}
}

func (c *Controller) Gains() Gains {
	return Gains{P: c.p, I: c.i, D: c.d, F: c.f}
}

func (c *Controller) Setpoint() float64 {
	return c.setpoint
}

// OutputLimits returns the output clamp range and whether clamping is active.
func (c *Controller) OutputLimits() (min, max float64, active bool) {
	return c.outMin, c.outMax, c.outMin != c.outMax
}

// IntegralTerm returns the unclamped output currently contributed by the
// accumulated error.
func (c *Controller) IntegralTerm() float64 {
	return c.i * c.errorSum
}

// LastTerms returns the term contributions of the previous computation.
func (c *Controller) LastTerms() Terms {
	return c.lastTerms
}

// LastOutput returns the result of the previous computation.
func (c *Controller) LastOutput() float64 {
	return c.lastOutput
}

// Compute calculates the output needed to drive actual towards setpoint.
// setpoint is stored and reused by ComputeActual and ComputeLast.
func (c *Controller) Compute(actual, setpoint float64) float64 {
	c.SetSetpoint(setpoint)

	if c.setpointRange != 0 {
		setpoint = util.Coerce(setpoint, actual-c.setpointRange, actual+c.setpointRange)
	}

	err := setpoint - actual

	terms := Terms{
		P: c.p * err,
		// on measurement, this avoids spikes when the setpoint changes
		D: -c.d * (actual - c.lastMeasured),
		F: c.f * setpoint,
		I: c.i * c.errorSum,
	}
	c.lastMeasured = actual

	if c.maxIOutput != 0 {
		limit := math.Abs(c.maxIOutput)
		terms.I = util.Coerce(terms.I, -limit, limit)
	}

	if c.reversed {
		terms = Terms{P: -terms.P, I: -terms.I, D: -terms.D, F: -terms.F}
	}

	output := terms.F + terms.P + terms.D + terms.I

	switch {
	case c.isSaturated(output):
		// restart from the current error, so the I term resumes smoothly
		// once the P term has shrunk enough to leave saturation
		c.errorSum = err
	case c.maxIOutput != 0:
		// maxError is negative for negative gains
		limit := math.Abs(c.maxError)
		c.errorSum = util.Coerce(c.errorSum+err, -limit, limit)
	default:
		c.errorSum += err
	}

	if c.outMin != c.outMax {
		output = util.Coerce(output, c.outMin, c.outMax)
	}
	if c.outputRampRate != 0 {
		output = util.Coerce(output, c.lastOutput-c.outputRampRate, c.lastOutput+c.outputRampRate)
	}
	if c.outputFilter != 0 {
		output = c.lastOutput*c.outputFilter + output*(1-c.outputFilter)
	}

	c.lastOutput = output
	c.lastTerms = terms

	return output
}

// ComputeActual calculates the output using the last stored setpoint.
func (c *Controller) ComputeActual(actual float64) float64 {
	return c.Compute(actual, c.setpoint)
}

// ComputeLast calculates the output using the last stored setpoint and measured value.
func (c *Controller) ComputeLast() float64 {
	return c.Compute(c.lastMeasured, c.setpoint)
}

func (c *Controller) isSaturated(output float64) bool {
	if c.outMin != c.outMax && !util.InRange(output, c.outMin, c.outMax) {
		return true
	}
	if c.outputRampRate != 0 && !util.InRange(output, c.lastOutput-c.outputRampRate, c.lastOutput+c.outputRampRate) {
		return true
	}
	return false
}
