// Traffic light sequencer
// Drives the red/orange/green outputs through the fixed phase table,
// logging each transition and blocking for the phase duration.
package core

import "errors"

// Construction errors
var (
	ErrNoGPIO  = errors.New("GPIO driver not configured")
	ErrNoDelay = errors.New("delay function not configured")
	ErrNoLog   = errors.New("log writer not configured")
)

// ErrReadback is returned when an output reads back a level other than
// the one just written, e.g. a shorted or stuck driver
var ErrReadback = errors.New("output read back wrong level")

// OutputFault reports a failed write to one of the light outputs.
// It is always fatal: the sequencer never retries.
type OutputFault struct {
	Phase PhaseID
	Pin   GPIOPin
	Value bool
	Err   error
}

func (f *OutputFault) Error() string {
	level := "low"
	if f.Value {
		level = "high"
	}
	return "output fault: phase " + f.Phase.String() +
		" pin " + utoa(uint32(f.Pin)) +
		" set " + level + ": " + f.Err.Error()
}

func (f *OutputFault) Unwrap() error {
	return f.Err
}

// FaultHandler is called with an unrecoverable output fault.
// It must not return; platforms reset the MCU from here.
type FaultHandler func(fault *OutputFault)

// Platform bundles everything the sequencer needs from target init code
type Platform struct {
	GPIO   GPIODriver
	Lights Lights
	Delay  DelayFunc
	Log    LogWriter

	// Optional
	Clock ClockFunc    // Timestamps for the transition history
	Fault FaultHandler // Defaults to panic
}

// Sequencer owns the three light outputs and steps them through the cycle.
// It is not safe for concurrent use; it is meant to be the only task running.
type Sequencer struct {
	gpio   GPIODriver
	lights Lights
	delay  DelayFunc
	log    LogWriter
	clock  ClockFunc
	fault  FaultHandler

	current PhaseID
	history History
}

// NewSequencer validates the platform and returns a sequencer positioned at Red
func NewSequencer(p Platform) (*Sequencer, error) {
	if p.GPIO == nil {
		return nil, ErrNoGPIO
	}
	if p.Delay == nil {
		return nil, ErrNoDelay
	}
	if p.Log == nil {
		return nil, ErrNoLog
	}
	if err := p.Lights.validate(); err != nil {
		return nil, err
	}

	s := &Sequencer{
		gpio:    p.GPIO,
		lights:  p.Lights,
		delay:   p.Delay,
		log:     p.Log,
		clock:   p.Clock,
		fault:   p.Fault,
		current: PhaseRed,
	}
	if s.fault == nil {
		s.fault = panicOnFault
	}
	return s, nil
}

func panicOnFault(fault *OutputFault) {
	panic(fault)
}

// Current returns the phase the next Step will apply
func (s *Sequencer) Current() PhaseID {
	return s.current
}

// History returns the recent transitions, oldest first
func (s *Sequencer) History() []Transition {
	return s.history.Snapshot()
}

// Run drives the cycle forever. It never returns.
func (s *Sequencer) Run() {
	for {
		s.Step()
	}
}

// RunCycles runs n complete cycles starting from the current phase
func (s *Sequencer) RunCycles(n int) {
	for i := 0; i < n*PhaseCount; i++ {
		s.Step()
	}
}

// Step applies the current phase: outputs, then log line, then delay.
// Afterwards the sequencer points at the next phase.
func (s *Sequencer) Step() {
	phase := s.current.Phase()

	s.apply(&phase)

	var now uint32
	if s.clock != nil {
		now = s.clock()
	}
	s.history.Record(phase.ID, now)
	s.log(colorLine(phase.Label))

	s.delay(phase.DurationMS)

	s.current = s.current.Next()
}

// apply writes the outputs for a phase. Lights that must turn on are
// written first so the junction is never dark; the previous light is
// cleared right after, leaving at most a momentary overlap.
// The writes run with interrupts disabled; a fault is reported only
// after they are restored so the log sink can still drain.
func (s *Sequencer) apply(phase *Phase) {
	states := phase.states(s.lights)

	state := enterCritical()
	failed, err := s.writeAll(&states)
	exitCritical(state)

	if err != nil {
		s.fail(&OutputFault{Phase: phase.ID, Pin: failed.pin, Value: failed.on, Err: err})
	}
}

// writeAll turns lights on, then off, stopping at the first write that
// fails or does not read back
func (s *Sequencer) writeAll(states *[3]lightState) (lightState, error) {
	// Turn on
	for _, st := range states {
		if st.on {
			if err := drive(s.gpio, st.pin, true); err != nil {
				return st, err
			}
		}
	}

	// Turn off
	for _, st := range states {
		if !st.on {
			if err := drive(s.gpio, st.pin, false); err != nil {
				return st, err
			}
		}
	}
	return lightState{}, nil
}

// drive writes a pin and reads it back
func drive(d GPIODriver, pin GPIOPin, value bool) error {
	if err := d.SetPin(pin, value); err != nil {
		return err
	}
	got, err := d.GetPin(pin)
	if err != nil {
		return err
	}
	if got != value {
		return ErrReadback
	}
	return nil
}

// fail dumps the history, logs the fault and hands it to the fault handler
func (s *Sequencer) fail(fault *OutputFault) {
	s.history.Dump(s.log)
	s.log("fatal: " + fault.Error())
	s.fault(fault)

	// Fault handlers must not return
	panic(fault)
}
