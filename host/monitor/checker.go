// Package monitor checks the console output of the light controller.
// It verifies that transitions follow the phase table and that every
// phase is held for its configured duration.
package monitor

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"trafficlight/core"
)

// DefaultTolerance is the allowed difference between a measured dwell and
// the configured phase duration. It covers delay accuracy and USB latency.
const DefaultTolerance = 100 * time.Millisecond

// ErrNotSynced is returned for labels seen before the first Red
var ErrNotSynced = errors.New("waiting for first Red")

// ParseLine returns the label of a transition line.
// Lines that are not transitions (history dumps, fatal reports) return ok=false.
func ParseLine(line string) (label string, ok bool) {
	line = strings.TrimRight(line, "\r\n")
	if !strings.HasPrefix(line, core.ColorPrefix) {
		return "", false
	}
	label = strings.TrimSpace(strings.TrimPrefix(line, core.ColorPrefix))
	if label == "" {
		return "", false
	}
	return label, true
}

// ViolationKind classifies a Violation
type ViolationKind uint8

const (
	ViolationOrder ViolationKind = iota + 1 // Label out of cycle order
	ViolationDwell                          // Phase held too short or too long
)

func (k ViolationKind) String() string {
	switch k {
	case ViolationOrder:
		return "order"
	case ViolationDwell:
		return "dwell"
	default:
		return "unknown"
	}
}

// Violation describes one observation that breaks the cycle contract
type Violation struct {
	Kind  ViolationKind
	Phase core.PhaseID // Expected phase (order) or measured phase (dwell)

	WantLabel string
	GotLabel  string

	Want time.Duration
	Got  time.Duration
}

func (v *Violation) Error() string {
	switch v.Kind {
	case ViolationOrder:
		return fmt.Sprintf("order violation: expected %q (%s), got %q", v.WantLabel, v.Phase, v.GotLabel)
	case ViolationDwell:
		return fmt.Sprintf("dwell violation: %s held %s, expected %s", v.Phase, v.Got, v.Want)
	default:
		return "violation"
	}
}

// Checker tracks position in the cycle across observations.
// It is not safe for concurrent use.
type Checker struct {
	tolerance time.Duration

	synced bool
	prev   core.PhaseID
	prevAt time.Time
	cycles int
}

// NewChecker creates a checker. A zero or negative tolerance uses
// DefaultTolerance; an exact-match checker is useless against a real clock.
func NewChecker(tolerance time.Duration) *Checker {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	return &Checker{tolerance: tolerance}
}

// Synced reports whether the checker has seen a Red to align on
func (c *Checker) Synced() bool {
	return c.synced
}

// Cycles returns the number of complete cycles observed
func (c *Checker) Cycles() int {
	return c.cycles
}

// Observe feeds one transition label seen at time at.
// It returns the phase the label was matched to. An order violation
// drops sync; the checker realigns on the next Red.
func (c *Checker) Observe(label string, at time.Time) (core.PhaseID, error) {
	red := core.PhaseRed.Phase()

	if !c.synced {
		if label != red.Label {
			return 0, ErrNotSynced
		}
		c.sync(at)
		return core.PhaseRed, nil
	}

	want := c.prev.Next()
	expected := want.Phase()
	if label != expected.Label {
		v := &Violation{
			Kind:      ViolationOrder,
			Phase:     want,
			WantLabel: expected.Label,
			GotLabel:  label,
		}
		c.synced = false
		if label == red.Label {
			c.sync(at)
		}
		return want, v
	}

	var err error
	held := at.Sub(c.prevAt)
	dwell := time.Duration(c.prev.Phase().DurationMS) * time.Millisecond
	if held < dwell-c.tolerance || held > dwell+c.tolerance {
		err = &Violation{
			Kind:  ViolationDwell,
			Phase: c.prev,
			Want:  dwell,
			Got:   held,
		}
	}

	if want == core.PhaseRed {
		c.cycles++
	}
	c.prev = want
	c.prevAt = at
	return want, err
}

func (c *Checker) sync(at time.Time) {
	c.synced = true
	c.prev = core.PhaseRed
	c.prevAt = at
}
