//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"time"
	"unsafe"

	"trafficlight/core"
)

// Both chips run the timer at 1MHz; only the peripheral base differs
// (see timer_rp2040.go / timer_rp2350.go)
const timerTIMERAWL = timerBase + 0x28 // Raw timer low word, no latching

var timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))

// GetHardwareTime reads the low 32 bits of the microsecond hardware timer
func GetHardwareTime() uint32 {
	return timerRAWL.Get()
}

// DelayMS blocks for ms milliseconds.
// The sequencer is the only task, so a plain sleep is enough.
func DelayMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

var (
	_ core.ClockFunc = GetHardwareTime
	_ core.DelayFunc = DelayMS
)
