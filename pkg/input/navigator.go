package input

// Stepper is the part of the routine selector a Navigator drives.
type Stepper interface {
	Next() int
	Prev() int
}

// Bindings assigns buttons to selector moves.
type Bindings struct {
	Prev    Button
	Next    Button
	Confirm Button
}

// DefaultBindings matches the legend drawn under the routine list.
var DefaultBindings = Bindings{
	Prev:    ButtonLeft,
	Next:    ButtonRight,
	Confirm: ButtonA,
}

// Navigator moves a selector once per button press.
type Navigator struct {
	target   Stepper
	pad      Gamepad
	bindings Bindings

	prev, next, confirm Edge
}

// NewNavigator creates a navigator reading pad and moving target.
func NewNavigator(target Stepper, pad Gamepad, b Bindings) *Navigator {
	return &Navigator{target: target, pad: pad, bindings: b}
}

// Poll samples the pad once. It moves the selection at most once per physical
// press and reports whether the confirm button was just pressed.
func (n *Navigator) Poll() (confirmed bool) {
	if n.prev.Rising(n.pad.Digital(n.bindings.Prev)) {
		n.target.Prev()
	}
	if n.next.Rising(n.pad.Digital(n.bindings.Next)) {
		n.target.Next()
	}
	return n.confirm.Rising(n.pad.Digital(n.bindings.Confirm))
}

// Reset forgets held buttons, so a button already down counts as a new press.
func (n *Navigator) Reset() {
	n.prev.Reset()
	n.next.Reset()
	n.confirm.Reset()
}
