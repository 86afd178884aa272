package core

import "errors"

var testLights = Lights{Red: 7, Orange: 6, Green: 5}

// pinWrite is one SetPin call seen by the mock driver
type pinWrite struct {
	at    uint32 // fake clock (ms)
	pin   GPIOPin
	value bool
	lit   int // lights on after this write
}

// logLine is one log sink call
type logLine struct {
	at   uint32
	text string
	lit  map[GPIOPin]bool
}

// MockGPIODriver is a test implementation of GPIODriver
type MockGPIODriver struct {
	pins       map[GPIOPin]bool
	configured map[GPIOPin]bool
	writes     []pinWrite
	now        *uint32

	failPin    GPIOPin
	failAfter  int // fail the n-th write to failPin (1-based), 0 = never
	failCount  int
	failErr    error
	configFail error

	stuck      bool // stuckPin always reads back stuckLevel
	stuckPin   GPIOPin
	stuckLevel bool
	readErr    error // returned by every GetPin
}

func NewMockGPIODriver(now *uint32) *MockGPIODriver {
	return &MockGPIODriver{
		pins:       make(map[GPIOPin]bool),
		configured: make(map[GPIOPin]bool),
		now:        now,
	}
}

func (m *MockGPIODriver) ConfigureOutput(pin GPIOPin) error {
	if m.configFail != nil {
		return m.configFail
	}
	m.configured[pin] = true
	return nil
}

func (m *MockGPIODriver) SetPin(pin GPIOPin, value bool) error {
	if m.failAfter > 0 && pin == m.failPin {
		m.failCount++
		if m.failCount == m.failAfter {
			return m.failErr
		}
	}
	m.pins[pin] = value

	var at uint32
	if m.now != nil {
		at = *m.now
	}
	m.writes = append(m.writes, pinWrite{at: at, pin: pin, value: value, lit: m.lit()})
	return nil
}

func (m *MockGPIODriver) GetPin(pin GPIOPin) (bool, error) {
	if m.readErr != nil {
		return false, m.readErr
	}
	if m.stuck && pin == m.stuckPin {
		return m.stuckLevel, nil
	}
	if _, ok := m.pins[pin]; !ok {
		return false, errors.New("pin not configured")
	}
	return m.pins[pin], nil
}

func (m *MockGPIODriver) lit() int {
	n := 0
	for _, pin := range [...]GPIOPin{testLights.Red, testLights.Orange, testLights.Green} {
		if m.pins[pin] {
			n++
		}
	}
	return n
}

func (m *MockGPIODriver) snapshot() map[GPIOPin]bool {
	out := make(map[GPIOPin]bool, len(m.pins))
	for k, v := range m.pins {
		out[k] = v
	}
	return out
}

// testRig wires a sequencer to a mock driver, a recording log sink and a
// fake clock that only the delay function advances
type testRig struct {
	now    uint32 // ms
	gpio   *MockGPIODriver
	lines  []logLine
	delays []uint32
	seq    *Sequencer
}

func newTestRig(fault FaultHandler) (*testRig, error) {
	r := &testRig{}
	r.gpio = NewMockGPIODriver(&r.now)

	seq, err := NewSequencer(Platform{
		GPIO:   r.gpio,
		Lights: testLights,
		Delay: func(ms uint32) {
			r.delays = append(r.delays, ms)
			r.now += ms
		},
		Log: func(s string) {
			r.lines = append(r.lines, logLine{at: r.now, text: s, lit: r.gpio.snapshot()})
		},
		Clock: func() uint32 { return msToUS(r.now) },
		Fault: fault,
	})
	if err != nil {
		return nil, err
	}
	r.seq = seq
	return r, nil
}

func (r *testRig) texts() []string {
	out := make([]string, 0, len(r.lines))
	for _, l := range r.lines {
		out = append(out, l.text)
	}
	return out
}
