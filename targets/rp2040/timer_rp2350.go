//go:build rp2350

package main

// RP2350 TIMER0 peripheral
const timerBase = 0x400b0000
