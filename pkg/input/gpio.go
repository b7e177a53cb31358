package input

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// GPIOPad reads selector buttons wired to Raspberry Pi GPIO pins. Buttons
// pull the pin to ground, so a low level means pressed.
type GPIOPad struct {
	pins map[Button]rpio.Pin
}

// OpenGPIO maps the GPIO memory and configures each pin as a pulled-up input.
func OpenGPIO(pins map[Button]int) (*GPIOPad, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	pad := &GPIOPad{pins: make(map[Button]rpio.Pin, len(pins))}
	for b, n := range pins {
		pin := rpio.Pin(n)
		pin.Input()
		pin.PullUp()
		pad.pins[b] = pin
	}
	return pad, nil
}

// Close unmaps the GPIO memory.
func (p *GPIOPad) Close() error {
	return rpio.Close()
}

// Digital implements Gamepad.
func (p *GPIOPad) Digital(b Button) bool {
	pin, ok := p.pins[b]
	if !ok {
		return false
	}
	return pin.Read() == rpio.Low
}

// Analog implements Gamepad. GPIO buttons have no sticks.
func (p *GPIOPad) Analog(Axis) int {
	return 0
}
