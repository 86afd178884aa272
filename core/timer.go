package core

// DelayFunc blocks the caller for the given number of milliseconds.
// The platform provides it; nothing else runs while it blocks.
type DelayFunc func(ms uint32)

// ClockFunc returns a free-running microsecond counter.
// Only the low 32 bits are used, so wraparound is expected.
type ClockFunc func() uint32

// msToUS converts milliseconds to microseconds
func msToUS(ms uint32) uint32 {
	return ms * 1000
}

// usToMS converts microseconds to milliseconds
func usToMS(us uint32) uint32 {
	return us / 1000
}

// elapsedUS returns the microseconds between two clock readings,
// correct across a single counter wraparound
func elapsedUS(from, to uint32) uint32 {
	return to - from
}
