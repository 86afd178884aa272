package core

const (
	HistorySize = 16 // Keep last 16 transitions for post-mortem
)

// Transition captures one phase change for post-mortem analysis
type Transition struct {
	Seq   uint32  // Transition number since boot, starting at 1
	Phase PhaseID // Phase that became active
	Clock uint32  // Clock reading when the phase was logged (us)
}

// History is a fixed-size ring of recent transitions.
// Recording never allocates and never blocks.
type History struct {
	ring [HistorySize]Transition
	head uint8  // Next write position
	seq  uint32 // Last sequence number written
}

// Record stores a transition, overwriting the oldest entry when full
func (h *History) Record(phase PhaseID, clock uint32) {
	h.seq++
	h.ring[h.head] = Transition{
		Seq:   h.seq,
		Phase: phase,
		Clock: clock,
	}
	h.head = (h.head + 1) % HistorySize
}

// Len returns the number of stored transitions
func (h *History) Len() int {
	if h.seq < HistorySize {
		return int(h.seq)
	}
	return HistorySize
}

// Snapshot returns stored transitions from oldest to newest
func (h *History) Snapshot() []Transition {
	out := make([]Transition, 0, h.Len())
	start := h.head
	for i := uint8(0); i < HistorySize; i++ {
		evt := h.ring[(start+i)%HistorySize]
		if evt.Seq == 0 {
			continue // Empty slot
		}
		out = append(out, evt)
	}
	return out
}

// Dump writes the history through the log sink, oldest first.
// Each line also carries the dwell since the previous entry.
func (h *History) Dump(log LogWriter) {
	if log == nil {
		return
	}

	log("history: === last " + itoa(h.Len()) + " transitions ===")
	var prev *Transition
	for _, evt := range h.Snapshot() {
		line := "history: #" + utoa(evt.Seq) +
			" " + evt.Phase.String() +
			" clock=" + utoa(evt.Clock)
		if prev != nil {
			line += " dwell_ms=" + utoa(usToMS(elapsedUS(prev.Clock, evt.Clock)))
		}
		log(line)
		e := evt
		prev = &e
	}
	log("history: === end ===")
}
