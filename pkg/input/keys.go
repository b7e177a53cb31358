package input

import (
	"sync"
	"time"
)

// Terminals send one event on key down, then repeat after an initial delay
// (250-600 ms on common systems) at a faster rate.
const (
	// DefaultDelay is how long the first event of a press holds its button,
	// long enough to bridge the initial repeat delay.
	DefaultDelay = 600 * time.Millisecond
	// DefaultHold is how long a repeat event keeps its button held.
	DefaultHold = 150 * time.Millisecond
)

// Keys is a Gamepad driven by discrete key events, such as terminal key
// presses. A new press is held for Delay, and repeated events while held
// extend it by Hold, so holding a key reads as one long press.
// Safe for concurrent use.
type Keys struct {
	Delay time.Duration
	Hold  time.Duration

	mu      sync.Mutex
	now     func() time.Time
	buttons map[Button]time.Time
	axes    map[Axis]axisHold
}

type axisHold struct {
	value int
	until time.Time
}

// NewKeys creates a key-driven gamepad with DefaultDelay and DefaultHold.
func NewKeys() *Keys {
	return &Keys{
		Delay:   DefaultDelay,
		Hold:    DefaultHold,
		now:     time.Now,
		buttons: make(map[Button]time.Time),
		axes:    make(map[Axis]axisHold),
	}
}

// Press holds b, for Delay on a new press or Hold on a repeat.
func (k *Keys) Press(b Button) {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	until, held := k.buttons[b]
	k.buttons[b] = k.extend(now, until, held && now.Before(until))
}

// Release lets go of b immediately.
func (k *Keys) Release(b Button) {
	k.mu.Lock()
	delete(k.buttons, b)
	k.mu.Unlock()
}

// Push deflects an axis to value, held like Press. Pushing a different
// value counts as a new press.
func (k *Keys) Push(a Axis, value int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	value = clampAxis(value)
	now := k.now()
	h, held := k.axes[a]
	held = held && h.value == value && now.Before(h.until)
	k.axes[a] = axisHold{value: value, until: k.extend(now, h.until, held)}
}

// extend returns the new hold deadline. A repeat never shortens the hold.
func (k *Keys) extend(now, until time.Time, repeat bool) time.Time {
	if !repeat {
		return now.Add(k.Delay)
	}
	next := now.Add(k.Hold)
	if next.Before(until) {
		return until
	}
	return next
}

// Digital implements Gamepad.
func (k *Keys) Digital(b Button) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	until, ok := k.buttons[b]
	return ok && k.now().Before(until)
}

// Analog implements Gamepad.
func (k *Keys) Analog(a Axis) int {
	k.mu.Lock()
	defer k.mu.Unlock()
	h, ok := k.axes[a]
	if !ok || !k.now().Before(h.until) {
		return 0
	}
	return h.value
}

func clampAxis(v int) int {
	if v > AxisMax {
		return AxisMax
	}
	if v < -AxisMax {
		return -AxisMax
	}
	return v
}
