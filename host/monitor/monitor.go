package monitor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"time"
)

// Report summarizes a monitoring session
type Report struct {
	Lines       int // Lines read, transitions or not
	Transitions int // Transition lines matched to a phase
	Cycles      int // Complete cycles observed
	Violations  []*Violation
}

// Config controls a Monitor
type Config struct {
	Tolerance time.Duration // Allowed dwell error; zero or negative uses DefaultTolerance
	MaxCycles int           // Stop after this many complete cycles; 0 runs until EOF or cancel
	FailFast  bool          // Return the first violation as an error
	Follow    bool          // Treat io.EOF as a read timeout (serial ports)
}

// Monitor reads console lines and checks them against the phase table
type Monitor struct {
	cfg     Config
	checker *Checker
	logger  *slog.Logger
	now     func() time.Time

	pending []byte
	report  Report
}

// New creates a monitor. A nil logger uses slog.Default().
func New(cfg Config, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		cfg:     cfg,
		checker: NewChecker(cfg.Tolerance),
		logger:  logger,
		now:     time.Now,
	}
}

// errDone stops Run once MaxCycles is reached
var errDone = errors.New("done")

// Run reads from r until EOF, context cancellation, MaxCycles, or (with
// FailFast) the first violation. Lines are timestamped when their newline
// arrives.
func (m *Monitor) Run(ctx context.Context, r io.Reader) (Report, error) {
	buf := make([]byte, 256)
	for {
		select {
		case <-ctx.Done():
			return m.report, nil
		default:
		}

		n, err := r.Read(buf)
		if n > 0 {
			if ferr := m.feed(buf[:n], m.now()); ferr != nil {
				if errors.Is(ferr, errDone) {
					return m.report, nil
				}
				return m.report, ferr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) && m.cfg.Follow {
				continue
			}
			if errors.Is(err, io.EOF) {
				return m.report, nil
			}
			return m.report, err
		}
	}
}

// feed splits data into lines and handles each complete one
func (m *Monitor) feed(data []byte, at time.Time) error {
	m.pending = append(m.pending, data...)
	for {
		i := bytes.IndexByte(m.pending, '\n')
		if i < 0 {
			return nil
		}
		line := string(m.pending[:i])
		m.pending = m.pending[i+1:]

		if err := m.HandleLine(line, at); err != nil {
			return err
		}
	}
}

// HandleLine processes one console line seen at time at
func (m *Monitor) HandleLine(line string, at time.Time) error {
	m.report.Lines++

	label, ok := ParseLine(line)
	if !ok {
		m.logger.Debug("console", "line", line)
		return nil
	}

	phase, err := m.checker.Observe(label, at)
	switch {
	case errors.Is(err, ErrNotSynced):
		m.logger.Debug("skipping until first Red", "label", label)
		return nil
	case err != nil:
		var v *Violation
		if !errors.As(err, &v) {
			return err
		}
		m.report.Violations = append(m.report.Violations, v)
		m.logger.Warn("violation", "kind", v.Kind.String(), "phase", v.Phase.String(), "error", v.Error())
		if m.cfg.FailFast {
			return v
		}
		if v.Kind == ViolationOrder {
			return nil
		}
	}

	m.report.Transitions++
	m.report.Cycles = m.checker.Cycles()
	m.logger.Info("transition", "phase", phase.String(), "label", label, "cycles", m.report.Cycles)

	if m.cfg.MaxCycles > 0 && m.report.Cycles >= m.cfg.MaxCycles {
		return errDone
	}
	return nil
}
