//go:build rp2040 || rp2350

package main

import (
	"errors"
	"machine"

	"trafficlight/core"
)

// maxGPIO is the highest user GPIO on the RP2040 (GPIO0-GPIO29)
const maxGPIO = 29

var (
	errInvalidPin    = errors.New("invalid GPIO pin")
	errNotConfigured = errors.New("pin not configured as output")
)

// RPGPIODriver implements the GPIODriver interface for RP2040/RP2350
type RPGPIODriver struct {
	// Track configured pins to prevent writes to unconfigured pins
	configuredPins map[core.GPIOPin]machine.Pin
}

// NewRPGPIODriver creates a new RP2040 GPIO driver
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{
		configuredPins: make(map[core.GPIOPin]machine.Pin),
	}
}

// ConfigureOutput configures a pin as a push-pull digital output
func (d *RPGPIODriver) ConfigureOutput(pin core.GPIOPin) error {
	if pin > maxGPIO {
		return errInvalidPin
	}
	if _, exists := d.configuredPins[pin]; exists {
		// Already configured, this is OK
		return nil
	}

	// Pins map directly to GPIO numbers
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinOutput})

	d.configuredPins[pin] = machinePin
	return nil
}

// SetPin sets the pin to high (true) or low (false).
// Writing a pin that platform init never configured is a fault.
func (d *RPGPIODriver) SetPin(pin core.GPIOPin, value bool) error {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return errNotConfigured
	}

	machinePin.Set(value)
	return nil
}

// GetPin reads back the pad level, which follows the output driver
// unless the line is shorted
func (d *RPGPIODriver) GetPin(pin core.GPIOPin) (bool, error) {
	machinePin, exists := d.configuredPins[pin]
	if !exists {
		return false, errNotConfigured
	}

	return machinePin.Get(), nil
}
