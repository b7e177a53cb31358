package robot

import "math"

// ExpoCurve shapes a joystick axis for driver control. Inputs inside the
// deadband map to 0, the smallest input outside it maps to MinOutput, and
// full deflection maps to full power. Curve > 1 gives finer control near
// center; Curve == 1 is linear.
type ExpoCurve struct {
	Deadband  float64 `json:"deadband"`
	MinOutput float64 `json:"min_output"`
	Curve     float64 `json:"curve"`
}

// Apply maps a stick value in [-127, 127] to a motor power in [-127, 127].
func (c ExpoCurve) Apply(in float64) float64 {
	const full = MaxPower

	in = math.Max(-full, math.Min(full, in))
	if math.Abs(in) <= c.Deadband {
		return 0
	}

	curve := c.Curve
	if curve <= 0 {
		curve = 1
	}
	sign := 1.0
	if in < 0 {
		sign = -1
	}

	g := math.Abs(in) - c.Deadband
	gFull := full - c.Deadband
	if gFull <= 0 {
		return 0
	}

	i := math.Pow(curve, g-full) * g
	iFull := math.Pow(curve, gFull-full) * gFull

	return sign * ((full-c.MinOutput)/full*i*full/iFull + c.MinOutput)
}

// Arcade mixes throttle and steer into left and right side powers. Both
// inputs go through their curves first, and the outputs are scaled down
// together when either side would exceed full power.
func Arcade(throttle, steer int, throttleCurve, steerCurve ExpoCurve) (left, right int) {
	t := throttleCurve.Apply(float64(throttle))
	s := steerCurve.Apply(float64(steer))

	l, r := t+s, t-s
	if peak := math.Max(math.Abs(l), math.Abs(r)); peak > MaxPower {
		l = l / peak * MaxPower
		r = r / peak * MaxPower
	}
	return int(math.Round(l)), int(math.Round(r))
}
