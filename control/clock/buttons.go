package clock

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
)

// Buttons reads the two adjustment buttons.  They short their pin to ground when pressed, so the
// pins are pulled up and read low while a button is down.
type Buttons struct {
	Up, Down gpio.PinIn
}

// NewButtons configures the pins as pulled-up inputs.
func NewButtons(up, down gpio.PinIn) (*Buttons, error) {
	if err := up.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure up button %v: %w", up, err)
	}
	if err := down.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("configure down button %v: %w", down, err)
	}
	return &Buttons{Up: up, Down: down}, nil
}

// Pressed implements Inputs.  The raw pin state is returned; debouncing is the loop's job.
func (b *Buttons) Pressed() (bool, bool) {
	return b.Up.Read() == gpio.Low, b.Down.Read() == gpio.Low
}
