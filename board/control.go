package board

import (
	"fmt"
	"strings"
)

// Kind tags the variant a Control carries. Every dispatch on Kind goes through an exhaustive switch; an unknown kind
// is a programming error and panics.
type Kind int

const (
	Button Kind = iota
	Slider
	CircularSlider
	ButtonsSlider
	Actions
	Switch
)

var kindNames = [...]string{
	Button:         "button",
	Slider:         "slider",
	CircularSlider: "circular_slider",
	ButtonsSlider:  "buttons_slider",
	Actions:        "actions",
	Switch:         "switch",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// SliderLike reports whether the kind carries an integer value inside [Min, Max].
func (k Kind) SliderLike() bool {
	switch k {
	case Slider, CircularSlider, ButtonsSlider:
		return true
	case Button, Actions, Switch:
		return false
	}
	panic(fmt.Sprintf("board: unhandled control kind %v", k))
}

// Control is one interactive element placed on a board. Kind-specific fields are only meaningful for their kind:
// Min/Max/Value for slider-likes, Choices for Actions and Toggled for Switch.
type Control struct {
	Kind   Kind
	Row    int
	Col    int
	Width  int
	Height int
	Label  string

	Min   int
	Max   int
	Value int

	Choices []string

	Toggled bool
}

// Matches reports whether name refers to this control, ignoring case.
func (c *Control) Matches(name string) bool {
	return strings.EqualFold(c.Label, name)
}

// Covers reports whether the cell at row, col lies inside the control's footprint.
func (c *Control) Covers(row, col int) bool {
	return row >= c.Row && row < c.Row+c.Height && col >= c.Col && col < c.Col+c.Width
}

// HasChoice reports whether action is one of the control's choices, ignoring case.
func (c *Control) HasChoice(action string) bool {
	for _, choice := range c.Choices {
		if strings.EqualFold(choice, action) {
			return true
		}
	}
	return false
}

// Current returns the control's present state as a Value.
func (c *Control) Current() Value {
	switch c.Kind {
	case Button, Actions:
		return None()
	case Slider, CircularSlider, ButtonsSlider:
		return Int(c.Value)
	case Switch:
		return Bool(c.Toggled)
	}
	panic(fmt.Sprintf("board: unhandled control kind %v", c.Kind))
}

// Validate checks that value is acceptable input for the control without changing it.
func (c *Control) Validate(value Value) error {
	switch c.Kind {
	case Button:
		if !value.IsNone() {
			return fmt.Errorf("%s %q takes no value", c.Kind, c.Label)
		}
	case Slider, CircularSlider, ButtonsSlider:
		n, ok := value.Int()
		if !ok || n < c.Min || n > c.Max {
			return fmt.Errorf("%s %q needs an integer between %d and %d", c.Kind, c.Label, c.Min, c.Max)
		}
	case Actions:
		action, ok := value.Action()
		if !ok || !c.HasChoice(action) {
			return fmt.Errorf("%s %q needs one of %v", c.Kind, c.Label, c.Choices)
		}
	case Switch:
		if _, ok := value.Bool(); !ok {
			return fmt.Errorf("%s %q needs a boolean", c.Kind, c.Label)
		}
	default:
		panic(fmt.Sprintf("board: unhandled control kind %v", c.Kind))
	}
	return nil
}

// Apply validates value and stores it as the control's new state.
func (c *Control) Apply(value Value) error {
	if err := c.Validate(value); err != nil {
		return err
	}

	switch c.Kind {
	case Button, Actions:
	case Slider, CircularSlider, ButtonsSlider:
		c.Value, _ = value.Int()
	case Switch:
		c.Toggled, _ = value.Bool()
	default:
		panic(fmt.Sprintf("board: unhandled control kind %v", c.Kind))
	}
	return nil
}
