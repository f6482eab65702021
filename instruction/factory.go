// Package instruction creates the tasks handed to participants during play.
package instruction

import (
	"fmt"
	"math/rand"

	"gitlab.com/prestrafe/spaceteam/board"
)

// ownBoardOdds is the 1-in-N chance of targeting the acting participant's own board.
const ownBoardOdds = 6

// Seat is one participant's board as seen by the factory.
type Seat struct {
	ID    string
	Board *board.Board
}

// Request carries everything a new instruction depends on.
type Request struct {
	// Participant that will receive the instruction.
	Source string
	// Every seat of the match, including the source.
	Seats []Seat
	// Instructions whose controls must not be reused, including the one being replaced.
	Outstanding []*Instruction
	// Sequential gates: the black hole is only rolled when the asteroid roll failed.
	AsteroidChance  float64
	BlackHoleChance float64
	// Forces the target to be the source.
	SinglePlayer bool
}

// Factory builds instructions. It is not safe for concurrent use; a match owns one and calls it under its lock.
type Factory struct {
	rng *rand.Rand
}

func NewFactory(rng *rand.Rand) *Factory {
	return &Factory{rng}
}

// New creates an instruction for request.Source. No two outstanding instructions ever share a control: when the chosen
// board is saturated the pool widens to every board, and when every control is taken the instruction falls back to
// an asteroid.
func (f *Factory) New(request Request) *Instruction {
	instruction := &Instruction{Source: request.Source}

	switch {
	case f.rng.Float64() < request.AsteroidChance:
		instruction.Special = Asteroid
	case f.rng.Float64() < request.BlackHoleChance:
		instruction.Special = BlackHole
	default:
		target := f.pickTarget(request)
		owner, control := f.pickControl(request, target)
		if control == nil {
			instruction.Special = Asteroid
			break
		}
		instruction.Target = owner
		instruction.Control = control
		instruction.Value = f.value(control)
	}

	instruction.Text = f.text(instruction)
	return instruction
}

func (f *Factory) pickTarget(request Request) Seat {
	var source Seat
	var others []Seat
	for _, seat := range request.Seats {
		if seat.ID == request.Source {
			source = seat
		} else {
			others = append(others, seat)
		}
	}

	if request.SinglePlayer || len(others) == 0 || f.rng.Intn(ownBoardOdds) == 0 {
		return source
	}
	return others[f.rng.Intn(len(others))]
}

func (f *Factory) pickControl(request Request, target Seat) (string, *board.Control) {
	if target.Board != nil {
		if free := available(target.Board, request.Outstanding); len(free) > 0 {
			return target.ID, free[f.rng.Intn(len(free))]
		}
	}

	type owned struct {
		owner   string
		control *board.Control
	}
	var pool []owned
	for _, seat := range request.Seats {
		if seat.Board == nil {
			continue
		}
		for _, control := range available(seat.Board, request.Outstanding) {
			pool = append(pool, owned{seat.ID, control})
		}
	}
	if len(pool) == 0 {
		return "", nil
	}

	choice := pool[f.rng.Intn(len(pool))]
	return choice.owner, choice.control
}

func available(b *board.Board, outstanding []*Instruction) []*board.Control {
	var free []*board.Control
	for _, control := range b.Controls {
		if !referenced(control, outstanding) {
			free = append(free, control)
		}
	}
	return free
}

func referenced(control *board.Control, outstanding []*Instruction) bool {
	for _, instruction := range outstanding {
		if instruction != nil && instruction.References(control) {
			return true
		}
	}
	return false
}

func (f *Factory) value(control *board.Control) board.Value {
	switch control.Kind {
	case board.Button:
		return board.None()
	case board.Slider, board.CircularSlider, board.ButtonsSlider:
		span := control.Max - control.Min
		if span <= 0 {
			return board.Int(control.Min)
		}
		next := control.Min + f.rng.Intn(span)
		if next >= control.Value {
			next++
		}
		return board.Int(next)
	case board.Switch:
		return board.Bool(!control.Toggled)
	case board.Actions:
		return board.Action(control.Choices[f.rng.Intn(len(control.Choices))])
	}
	panic(fmt.Sprintf("instruction: unhandled control kind %v", control.Kind))
}
