package board

import (
	"fmt"
	"math/rand"
)

const (
	Rows = 4
	Cols = 4
)

// Cell is the occupancy marker of one grid cell during generation. Anchor cells carry the shape tag, the rest of a
// footprint is Occupied.
type Cell int

const (
	Empty Cell = iota
	Occupied
	Square
	VerticalRectangle
	HorizontalRectangle
	BigSquare
)

// Labeler hands out human-readable labels that have not been used yet in the current session.
type Labeler interface {
	// Returns an unused control label.
	Name() string
	// Returns an unused action verb.
	Action() string
}

// Board is the packed layout assigned to one slot for one level.
type Board struct {
	Controls []*Control
}

// Find returns the control labelled name, ignoring case.
func (b *Board) Find(name string) (*Control, bool) {
	for _, control := range b.Controls {
		if control.Matches(name) {
			return control, true
		}
	}
	return nil, false
}

// Generator packs a 4x4 grid with shapes and instantiates one control per shape.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng}
}

// Generate builds a fresh board. Labels are drawn from labeler, which is shared across the boards of one level so that
// no two controls in a match carry the same label.
func (g *Generator) Generate(labeler Labeler) *Board {
	var grid [Rows][Cols]Cell
	result := &Board{}

	for {
		row, col, found := nextEmpty(&grid)
		if !found {
			break
		}
		shape, length := g.pickShape(&grid, row, col)
		mark(&grid, row, col, shape, length)
		result.Controls = append(result.Controls, g.newControl(labeler, row, col, shape, length))
	}

	return result
}

func nextEmpty(grid *[Rows][Cols]Cell) (int, int, bool) {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Cols; col++ {
			if grid[row][col] == Empty {
				return row, col, true
			}
		}
	}
	return 0, 0, false
}

func freeSpaceRight(grid *[Rows][Cols]Cell, row, col int) int {
	free := 0
	for i := col; i < Cols; i++ {
		if grid[row][i] != Empty {
			break
		}
		free++
	}
	return free
}

func (g *Generator) pickShape(grid *[Rows][Cols]Cell, row, col int) (Cell, int) {
	free := freeSpaceRight(grid, row, col)
	lastRow := row == Rows-1

	var pool []Cell
	pool = append(pool, Square)
	if !lastRow {
		pool = append(pool, VerticalRectangle)
	}
	if free > 1 {
		pool = append(pool, HorizontalRectangle)
		if !lastRow {
			pool = append(pool, BigSquare)
		}
	}

	shape := Square
	if len(pool) > 0 {
		shape = pool[g.rng.Intn(len(pool))]
	}

	length := 1
	switch shape {
	case HorizontalRectangle:
		length = 2
		if free > 2 {
			length = g.between(2, 3)
		}
	case VerticalRectangle:
		length = 2
		if row <= 1 {
			length = g.between(2, 3)
		}
	case BigSquare:
		length = 2
		// A 3x3 square needs the whole row stretch free; rows below are free whenever the current row is, since every
		// shape reaching down into them is anchored at or above the current row.
		if row <= 1 && col <= 1 && free >= 3 {
			length = g.between(2, 3)
		}
	}

	return shape, length
}

func mark(grid *[Rows][Cols]Cell, row, col int, shape Cell, length int) {
	width, height := footprint(shape, length)
	for r := row; r < row+height; r++ {
		for c := col; c < col+width; c++ {
			grid[r][c] = Occupied
		}
	}
	grid[row][col] = shape
}

func footprint(shape Cell, length int) (width, height int) {
	switch shape {
	case Square:
		return 1, 1
	case VerticalRectangle:
		return 1, length
	case HorizontalRectangle:
		return length, 1
	case BigSquare:
		return length, length
	}
	panic(fmt.Sprintf("board: no footprint for cell %d", shape))
}

func candidates(shape Cell, length int) []Kind {
	var pool []Kind
	if shape == Square || shape == BigSquare {
		pool = append(pool, Button, Switch)
	}
	if shape == VerticalRectangle && length == 2 {
		pool = append(pool, Actions, Actions)
	}
	if shape == VerticalRectangle || shape == HorizontalRectangle {
		pool = append(pool, Slider)
	}
	if shape == BigSquare {
		pool = append(pool, CircularSlider, CircularSlider, CircularSlider)
	}
	if shape == HorizontalRectangle {
		pool = append(pool, ButtonsSlider, ButtonsSlider)
	}
	return pool
}

func (g *Generator) newControl(labeler Labeler, row, col int, shape Cell, length int) *Control {
	pool := candidates(shape, length)
	width, height := footprint(shape, length)

	control := &Control{
		Kind:   pool[g.rng.Intn(len(pool))],
		Row:    row,
		Col:    col,
		Width:  width,
		Height: height,
		Label:  labeler.Name(),
	}

	switch control.Kind {
	case Button, Switch:
	case Slider, ButtonsSlider:
		control.Max = g.between(3, 5)
	case CircularSlider:
		control.Max = g.between(4, 7)
	case Actions:
		count := g.between(1, 3)
		for i := 0; i < count; i++ {
			control.Choices = append(control.Choices, labeler.Action())
		}
	default:
		panic(fmt.Sprintf("board: unhandled control kind %v", control.Kind))
	}

	return control
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.Intn(hi-lo+1)
}
