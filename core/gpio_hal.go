package core

import "errors"

// GPIOPin identifies a hardware GPIO pin number
type GPIOPin uint32

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output
	// Returns error if pin is invalid or already in use
	ConfigureOutput(pin GPIOPin) error

	// SetPin sets the pin to high (true) or low (false)
	SetPin(pin GPIOPin, value bool) error

	// GetPin reads the current pin state
	GetPin(pin GPIOPin) (bool, error)
}

// Lights holds the three output pins driven by the sequencer
type Lights struct {
	Red    GPIOPin
	Orange GPIOPin
	Green  GPIOPin
}

// ErrPinConflict is returned when two lights share a pin
var ErrPinConflict = errors.New("lights must use distinct pins")

// validate checks that every light has its own pin
func (l Lights) validate() error {
	if l.Red == l.Orange || l.Red == l.Green || l.Orange == l.Green {
		return ErrPinConflict
	}
	return nil
}

// ConfigureLights configures the three light pins as outputs and drives them low,
// checking each one reads back low.
// Called once by target-specific init code before the sequencer starts.
func ConfigureLights(d GPIODriver, l Lights) error {
	if d == nil {
		return ErrNoGPIO
	}
	if err := l.validate(); err != nil {
		return err
	}

	for _, pin := range [...]GPIOPin{l.Red, l.Orange, l.Green} {
		if err := d.ConfigureOutput(pin); err != nil {
			return err
		}
		if err := drive(d, pin, false); err != nil {
			return err
		}
	}
	return nil
}
