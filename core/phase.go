package core

// PhaseID identifies one entry of the traffic light cycle
type PhaseID uint8

// Cycle order. Orange appears twice because it is followed by a different
// phase each time.
const (
	PhaseRed PhaseID = iota
	PhaseOrange1
	PhaseGreen
	PhaseOrange2

	PhaseCount = 4
)

// String returns the phase name
func (id PhaseID) String() string {
	switch id {
	case PhaseRed:
		return "Red"
	case PhaseOrange1:
		return "Orange1"
	case PhaseGreen:
		return "Green"
	case PhaseOrange2:
		return "Orange2"
	default:
		return "Phase(" + utoa(uint32(id)) + ")"
	}
}

// Next returns the phase that follows id in the cycle
func (id PhaseID) Next() PhaseID {
	return (id + 1) % PhaseCount
}

// Phase is one record of the fixed cycle: which lights are on, for how
// long, and the label that gets logged.
type Phase struct {
	ID         PhaseID
	Red        bool
	Orange     bool
	Green      bool
	DurationMS uint32
	Label      string
}

// phaseTable is the fixed traffic light cycle, in order.
// It is never written after init; callers get copies.
var phaseTable = [PhaseCount]Phase{
	{ID: PhaseRed, Red: true, DurationMS: 2000, Label: "Red"},
	{ID: PhaseOrange1, Orange: true, DurationMS: 1000, Label: "Orange"},
	{ID: PhaseGreen, Green: true, DurationMS: 3000, Label: "Green"},
	{ID: PhaseOrange2, Orange: true, DurationMS: 1000, Label: "Orange"},
}

// Phases returns a copy of the cycle in order
func Phases() [PhaseCount]Phase {
	return phaseTable
}

// Phase returns the table record for id
func (id PhaseID) Phase() Phase {
	return phaseTable[id%PhaseCount]
}

// CycleMS is the length of one full cycle in milliseconds
func CycleMS() uint32 {
	var total uint32
	for i := range phaseTable {
		total += phaseTable[i].DurationMS
	}
	return total
}

// lightState pairs an output pin with the level a phase wants on it
type lightState struct {
	pin GPIOPin
	on  bool
}

// states returns the desired level of each light for this phase,
// in fixed red, orange, green order
func (p *Phase) states(l Lights) [3]lightState {
	return [3]lightState{
		{pin: l.Red, on: p.Red},
		{pin: l.Orange, on: p.Orange},
		{pin: l.Green, on: p.Green},
	}
}
