package control_loop

// ControlLoop computes the value to apply to a process in order to move
// its measured value towards target. It is called once per tick.
type ControlLoop interface {
	// Loop advances the control loop
	Loop(target float64, measured float64) float64
}
