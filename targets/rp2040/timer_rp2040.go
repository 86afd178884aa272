//go:build rp2040

package main

// RP2040 TIMER peripheral
const timerBase = 0x40054000
