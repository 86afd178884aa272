//go:build rp2040 || rp2350

package main

import (
	"machine"
	"time"

	"trafficlight/core"
)

func main() {
	// CRITICAL: Disable watchdog on boot so it cannot interrupt the cycle
	// and to clear any state left by a fault reset
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	// Log sink
	InitUSB()

	gpioDriver := NewRPGPIODriver()
	if err := core.ConfigureLights(gpioDriver, lights); err != nil {
		fatal("fatal: light init: " + err.Error())
	}

	seq, err := core.NewSequencer(core.Platform{
		GPIO:   gpioDriver,
		Lights: lights,
		Delay:  DelayMS,
		Log:    USBWriteLine,
		Clock:  GetHardwareTime,
		Fault: func(*core.OutputFault) {
			// The sequencer already logged the fault and history
			resetMCU()
		},
	})
	if err != nil {
		fatal("fatal: sequencer init: " + err.Error())
	}

	seq.Run()
}

// fatal logs a reason and resets the MCU
func fatal(reason string) {
	USBWriteLine(reason)
	resetMCU()
}

// resetMCU triggers a watchdog reset and never returns.
// Watchdog reset is more reliable on RP2040 than ARM SYSRESETREQ.
func resetMCU() {
	// Give USB a moment to flush the last log lines
	time.Sleep(10 * time.Millisecond)

	_ = machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1})
	_ = machine.Watchdog.Start()

	// Wait for reset (should happen in ~1ms)
	for {
		time.Sleep(1 * time.Millisecond)
	}
}
