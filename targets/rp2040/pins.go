//go:build rp2040 || rp2350

package main

import "trafficlight/core"

// Light wiring
const (
	greenPin  core.GPIOPin = 5 // GPIO5
	orangePin core.GPIOPin = 6 // GPIO6
	redPin    core.GPIOPin = 7 // GPIO7
)

var lights = core.Lights{
	Red:    redPin,
	Orange: orangePin,
	Green:  greenPin,
}
