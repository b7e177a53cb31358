// Package input reads controller buttons and sticks and turns held buttons
// into single press events.
package input

// Button identifies a digital controller button.
type Button int

const (
	ButtonL1 Button = iota
	ButtonL2
	ButtonR1
	ButtonR2
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonX
	ButtonB
	ButtonY
	ButtonA
)

var buttonNames = map[Button]string{
	ButtonL1:    "L1",
	ButtonL2:    "L2",
	ButtonR1:    "R1",
	ButtonR2:    "R2",
	ButtonUp:    "Up",
	ButtonDown:  "Down",
	ButtonLeft:  "Left",
	ButtonRight: "Right",
	ButtonX:     "X",
	ButtonB:     "B",
	ButtonY:     "Y",
	ButtonA:     "A",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return "Unknown"
}

// ParseButton maps a button name such as "L1" or "Right" to a Button.
func ParseButton(name string) (Button, bool) {
	for b, n := range buttonNames {
		if n == name {
			return b, true
		}
	}
	return 0, false
}

// Axis identifies an analog stick axis.
type Axis int

const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
)

// AxisMax is the magnitude of a fully deflected stick.
const AxisMax = 127

// Gamepad is a polled controller.
type Gamepad interface {
	// Digital reports whether a button is currently held.
	Digital(b Button) bool
	// Analog returns a stick position in [-AxisMax, AxisMax].
	Analog(a Axis) int
}

// Edge detects the moment a held signal starts.
type Edge struct {
	held bool
}

// Rising returns true only when pressed changes from false to true.
func (e *Edge) Rising(pressed bool) bool {
	fire := pressed && !e.held
	e.held = pressed
	return fire
}

// Reset forgets the previous state.
func (e *Edge) Reset() {
	e.held = false
}
