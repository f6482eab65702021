package board

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLabeler struct {
	names   int
	actions int
}

func (l *countingLabeler) Name() string {
	l.names++
	return fmt.Sprintf("Control %d", l.names)
}

func (l *countingLabeler) Action() string {
	l.actions++
	return fmt.Sprintf("verb%d", l.actions)
}

func TestGenerateCoversEveryCellOnce(t *testing.T) {
	for seed := int64(0); seed < 500; seed++ {
		generator := NewGenerator(rand.New(rand.NewSource(seed)))
		board := generator.Generate(&countingLabeler{})

		require.NotEmpty(t, board.Controls, "seed %d", seed)

		var coverage [Rows][Cols]int
		for _, control := range board.Controls {
			for r := control.Row; r < control.Row+control.Height; r++ {
				for c := control.Col; c < control.Col+control.Width; c++ {
					require.True(t, r < Rows && c < Cols, "seed %d: %+v leaves the grid", seed, control)
					coverage[r][c]++
				}
			}
		}

		for r := 0; r < Rows; r++ {
			for c := 0; c < Cols; c++ {
				assert.Equal(t, 1, coverage[r][c], "seed %d: cell %d,%d", seed, r, c)
			}
		}
	}
}

func TestGenerateKeepsVerticalShapesOutOfLastRow(t *testing.T) {
	for seed := int64(0); seed < 500; seed++ {
		board := NewGenerator(rand.New(rand.NewSource(seed))).Generate(&countingLabeler{})

		for _, control := range board.Controls {
			if control.Row == Rows-1 {
				assert.Equal(t, 1, control.Height, "seed %d: %+v", seed, control)
			}
		}
	}
}

func TestGenerateControlShapes(t *testing.T) {
	for seed := int64(0); seed < 500; seed++ {
		board := NewGenerator(rand.New(rand.NewSource(seed))).Generate(&countingLabeler{})

		for _, control := range board.Controls {
			switch control.Kind {
			case Button, Switch:
				assert.Equal(t, control.Width, control.Height, "seed %d: %+v", seed, control)
			case Slider:
				assert.True(t, control.Width == 1 || control.Height == 1, "seed %d: %+v", seed, control)
				assert.NotEqual(t, control.Width, control.Height, "seed %d: %+v", seed, control)
				assert.Equal(t, 0, control.Min)
				assert.True(t, control.Max >= 3 && control.Max <= 5, "seed %d: %+v", seed, control)
			case ButtonsSlider:
				assert.Equal(t, 1, control.Height, "seed %d: %+v", seed, control)
				assert.True(t, control.Max >= 3 && control.Max <= 5, "seed %d: %+v", seed, control)
			case CircularSlider:
				assert.Equal(t, control.Width, control.Height, "seed %d: %+v", seed, control)
				assert.True(t, control.Width >= 2, "seed %d: %+v", seed, control)
				assert.True(t, control.Max >= 4 && control.Max <= 7, "seed %d: %+v", seed, control)
			case Actions:
				assert.Equal(t, 1, control.Width)
				assert.Equal(t, 2, control.Height)
				assert.True(t, len(control.Choices) >= 1 && len(control.Choices) <= 3, "seed %d: %+v", seed, control)
			default:
				t.Fatalf("unexpected kind %v", control.Kind)
			}
			assert.Equal(t, control.Min, control.Value)
			assert.False(t, control.Toggled)
		}
	}
}

func TestGenerateProducesBigSquares(t *testing.T) {
	sizes := map[int]bool{}
	for seed := int64(0); seed < 2000; seed++ {
		board := NewGenerator(rand.New(rand.NewSource(seed))).Generate(&countingLabeler{})
		for _, control := range board.Controls {
			if control.Kind == CircularSlider {
				sizes[control.Width] = true
			}
		}
	}

	assert.True(t, sizes[2])
	assert.True(t, sizes[3])
}

func TestGenerateLabelsEveryControl(t *testing.T) {
	labeler := &countingLabeler{}
	board := NewGenerator(rand.New(rand.NewSource(7))).Generate(labeler)

	assert.Equal(t, len(board.Controls), labeler.names)
	seen := map[string]bool{}
	for _, control := range board.Controls {
		assert.False(t, seen[control.Label])
		seen[control.Label] = true
	}
}

func TestFind(t *testing.T) {
	board := &Board{Controls: []*Control{
		{Kind: Button, Label: "Turbo Flux"},
		{Kind: Switch, Label: "Quantum Valve"},
	}}

	control, found := board.Find("quantum VALVE")
	assert.True(t, found)
	assert.Equal(t, Switch, control.Kind)

	_, found = board.Find("quantum")
	assert.False(t, found)
}

func TestFreeSpaceRight(t *testing.T) {
	var grid [Rows][Cols]Cell
	grid[0][2] = Occupied

	assert.Equal(t, 2, freeSpaceRight(&grid, 0, 0))
	assert.Equal(t, 0, freeSpaceRight(&grid, 0, 2))
	assert.Equal(t, 1, freeSpaceRight(&grid, 0, 3))
	assert.Equal(t, 4, freeSpaceRight(&grid, 1, 0))
}

func TestMarkTagsAnchorOnly(t *testing.T) {
	var grid [Rows][Cols]Cell
	mark(&grid, 0, 0, BigSquare, 3)

	assert.Equal(t, BigSquare, grid[0][0])
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r != 0 || c != 0 {
				assert.Equal(t, Occupied, grid[r][c])
			}
		}
	}
	assert.Equal(t, Empty, grid[0][3])
	assert.Equal(t, Empty, grid[3][0])
}
