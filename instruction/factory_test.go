package instruction

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/prestrafe/spaceteam/board"
)

type stubLabeler struct {
	count int
}

func (l *stubLabeler) Name() string {
	l.count++
	return fmt.Sprintf("gizmo %d", l.count)
}

func (l *stubLabeler) Action() string {
	l.count++
	return fmt.Sprintf("poke%d", l.count)
}

func newSeats(rng *rand.Rand, ids ...string) []Seat {
	generator := board.NewGenerator(rng)
	labeler := &stubLabeler{}
	seats := make([]Seat, 0, len(ids))
	for _, id := range ids {
		seats = append(seats, Seat{ID: id, Board: generator.Generate(labeler)})
	}
	return seats
}

func TestSpecialGates(t *testing.T) {
	factory := NewFactory(rand.New(rand.NewSource(1)))
	seats := newSeats(rand.New(rand.NewSource(1)), "a", "b")

	asteroid := factory.New(Request{Source: "a", Seats: seats, AsteroidChance: 1, BlackHoleChance: 1})
	assert.Equal(t, Asteroid, asteroid.Special)
	assert.Nil(t, asteroid.Control)
	assert.Empty(t, asteroid.Target)
	assert.True(t, asteroid.Value.IsNone())
	assert.Contains(t, asteroidPhrases, strings.ToLower(asteroid.Text[:1])+asteroid.Text[1:])

	blackHole := factory.New(Request{Source: "a", Seats: seats, AsteroidChance: 0, BlackHoleChance: 1})
	assert.Equal(t, BlackHole, blackHole.Special)
	assert.True(t, blackHole.IsSpecial())

	normal := factory.New(Request{Source: "a", Seats: seats})
	assert.Equal(t, NotSpecial, normal.Special)
	assert.NotNil(t, normal.Control)
	assert.Equal(t, "a", normal.Source)
}

func TestOutstandingNeverShareControls(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	factory := NewFactory(rng)
	seats := newSeats(rng, "a", "b", "c", "d")

	current := map[string]*Instruction{}
	for step := 0; step < 2000; step++ {
		source := seats[rng.Intn(len(seats))].ID

		var outstanding []*Instruction
		for _, instruction := range current {
			outstanding = append(outstanding, instruction)
		}

		instruction := factory.New(Request{
			Source:          source,
			Seats:           seats,
			Outstanding:     outstanding,
			AsteroidChance:  0.1,
			BlackHoleChance: 0.1,
		})
		current[source] = instruction

		used := map[*board.Control]bool{}
		for _, live := range current {
			if live.Control == nil {
				continue
			}
			require.False(t, used[live.Control], "step %d: control %q shared", step, live.Control.Label)
			used[live.Control] = true
		}
	}
}

func TestSaturatedBoardWidensPool(t *testing.T) {
	own := &board.Control{Kind: board.Button, Label: "own"}
	other := &board.Control{Kind: board.Button, Label: "other"}
	seats := []Seat{
		{ID: "a", Board: &board.Board{Controls: []*board.Control{own}}},
		{ID: "b", Board: &board.Board{Controls: []*board.Control{other}}},
	}
	factory := NewFactory(rand.New(rand.NewSource(5)))

	taken := []*Instruction{{Source: "b", Target: "b", Control: other}}
	for i := 0; i < 50; i++ {
		instruction := factory.New(Request{Source: "a", Seats: seats, Outstanding: taken})
		assert.Same(t, own, instruction.Control)
		assert.Equal(t, "a", instruction.Target)
	}
}

func TestFullySaturatedFallsBackToAsteroid(t *testing.T) {
	only := &board.Control{Kind: board.Button, Label: "only"}
	seats := []Seat{{ID: "a", Board: &board.Board{Controls: []*board.Control{only}}}}
	factory := NewFactory(rand.New(rand.NewSource(5)))

	instruction := factory.New(Request{
		Source:       "a",
		Seats:        seats,
		Outstanding:  []*Instruction{{Source: "a", Target: "a", Control: only}},
		SinglePlayer: true,
	})
	assert.Equal(t, Asteroid, instruction.Special)
	assert.NotEmpty(t, instruction.Text)
}

func TestSinglePlayerTargetsSource(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	factory := NewFactory(rng)
	seats := newSeats(rng, "a", "b")

	for i := 0; i < 100; i++ {
		instruction := factory.New(Request{Source: "a", Seats: seats, SinglePlayer: true})
		assert.Equal(t, "a", instruction.Target)
	}
}

func TestTargetsMostlyOtherBoards(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	factory := NewFactory(rng)
	seats := newSeats(rng, "a", "b")

	own := 0
	for i := 0; i < 600; i++ {
		if factory.New(Request{Source: "a", Seats: seats}).Target == "a" {
			own++
		}
	}
	assert.Greater(t, own, 50)
	assert.Less(t, own, 200)
}

func TestValues(t *testing.T) {
	factory := NewFactory(rand.New(rand.NewSource(3)))

	button := &board.Control{Kind: board.Button}
	assert.True(t, factory.value(button).IsNone())

	slider := &board.Control{Kind: board.Slider, Min: 0, Max: 3, Value: 2}
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		n, ok := factory.value(slider).Int()
		require.True(t, ok)
		assert.NotEqual(t, 2, n)
		assert.True(t, n >= 0 && n <= 3)
		seen[n] = true
	}
	assert.Len(t, seen, 3)

	toggle := &board.Control{Kind: board.Switch, Toggled: true}
	flipped, ok := factory.value(toggle).Bool()
	assert.True(t, ok)
	assert.False(t, flipped)

	actions := &board.Control{Kind: board.Actions, Choices: []string{"vent", "purge"}}
	action, ok := factory.value(actions).Action()
	assert.True(t, ok)
	assert.Contains(t, actions.Choices, action)
}

func TestText(t *testing.T) {
	factory := NewFactory(rand.New(rand.NewSource(3)))

	slider := &board.Control{Kind: board.Slider, Label: "turboflux", Max: 5, Value: 1}
	text := factory.text(&Instruction{Control: slider, Value: board.Int(4)})
	assert.Contains(t, text, "turboflux")
	assert.Contains(t, text, "4")
	assert.NotContains(t, text, "decrease")
	assert.True(t, unicode.IsUpper([]rune(text)[0]), text)

	actions := &board.Control{Kind: board.Actions, Label: "quantum valve", Choices: []string{"vent"}}
	assert.Equal(t, "Vent quantum valve", factory.text(&Instruction{Control: actions, Value: board.Action("vent")}))

	toggle := &board.Control{Kind: board.Switch, Label: "relay"}
	text = factory.text(&Instruction{Control: toggle, Value: board.Bool(true)})
	assert.Contains(t, switchOnPhrases, strings.ToLower(text[:1])+text[1:])
}

func TestCompletedBy(t *testing.T) {
	control := &board.Control{Kind: board.Slider, Max: 5}
	twin := &board.Control{Kind: board.Slider, Max: 5}
	instruction := &Instruction{Control: control, Value: board.Int(3)}

	assert.True(t, instruction.CompletedBy(control, board.Int(3)))
	assert.False(t, instruction.CompletedBy(control, board.Int(2)))
	assert.False(t, instruction.CompletedBy(twin, board.Int(3)))
	assert.False(t, (&Instruction{Special: Asteroid}).References(nil))
}
