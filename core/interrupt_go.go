//go:build !tinygo

package core

// irqState is a placeholder for interrupt state on regular Go
type irqState uintptr

// enterCritical is a no-op on regular Go (for testing)
func enterCritical() irqState {
	return 0
}

// exitCritical is a no-op on regular Go (for testing)
func exitCritical(irqState) {}
