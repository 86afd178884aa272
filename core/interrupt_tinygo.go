//go:build tinygo

package core

import "runtime/interrupt"

type irqState = interrupt.State

// enterCritical disables interrupts so a light change cannot be stretched
// by an interrupt handler, and returns the previous state
func enterCritical() irqState {
	return interrupt.Disable()
}

// exitCritical restores the interrupt state
func exitCritical(state irqState) {
	interrupt.Restore(state)
}
