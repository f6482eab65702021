package instruction

import (
	"gitlab.com/prestrafe/spaceteam/board"
)

// Special identifies the sentinel hazards that never live on a board.
type Special int

const (
	NotSpecial Special = iota
	Asteroid
	BlackHole
)

func (s Special) String() string {
	switch s {
	case NotSpecial:
		return "none"
	case Asteroid:
		return "asteroid"
	case BlackHole:
		return "black_hole"
	}
	return "unknown"
}

// Instruction is a task handed to the participant in Source, asking them to bring Control (which sits on Target's
// board) to Value. Special instructions have no control, no target and no value.
type Instruction struct {
	Source  string
	Target  string
	Control *board.Control
	Special Special
	Value   board.Value
	Text    string
}

func (i *Instruction) IsSpecial() bool {
	return i.Special != NotSpecial
}

// References reports whether the instruction points at control, by identity.
func (i *Instruction) References(control *board.Control) bool {
	return i.Control != nil && i.Control == control
}

// CompletedBy reports whether applying value to control fulfils the instruction.
func (i *Instruction) CompletedBy(control *board.Control, value board.Value) bool {
	return i.References(control) && i.Value.Equal(value)
}
