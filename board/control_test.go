package board

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyValidatesPerKind(t *testing.T) {
	button := &Control{Kind: Button, Label: "button"}
	assert.NoError(t, button.Apply(None()))
	assert.Error(t, button.Apply(Int(1)))

	slider := &Control{Kind: Slider, Label: "slider", Min: 0, Max: 4}
	assert.NoError(t, slider.Apply(Int(3)))
	assert.Equal(t, 3, slider.Value)
	assert.Error(t, slider.Apply(Int(5)))
	assert.Error(t, slider.Apply(Int(-1)))
	assert.Error(t, slider.Apply(Bool(true)))
	assert.Equal(t, 3, slider.Value)

	actions := &Control{Kind: Actions, Label: "actions", Choices: []string{"calibrate", "vent"}}
	assert.NoError(t, actions.Apply(Action("VENT")))
	assert.Error(t, actions.Apply(Action("explode")))
	assert.Error(t, actions.Apply(None()))

	toggle := &Control{Kind: Switch, Label: "switch"}
	assert.NoError(t, toggle.Apply(Bool(true)))
	assert.True(t, toggle.Toggled)
	assert.Error(t, toggle.Apply(Int(1)))
	assert.True(t, toggle.Toggled)
}

func TestCurrent(t *testing.T) {
	assert.True(t, (&Control{Kind: Button}).Current().IsNone())
	assert.True(t, (&Control{Kind: CircularSlider, Value: 2}).Current().Equal(Int(2)))
	assert.True(t, (&Control{Kind: Switch, Toggled: true}).Current().Equal(Bool(true)))
}

func TestValueEqual(t *testing.T) {
	assert.True(t, None().Equal(None()))
	assert.True(t, Action("Vent").Equal(Action("vent")))
	assert.False(t, Int(1).Equal(Bool(true)))
	assert.False(t, Int(1).Equal(Int(2)))
	assert.False(t, None().Equal(Int(0)))
}

func TestValueUnmarshal(t *testing.T) {
	tests := []struct {
		input    string
		expected Value
	}{
		{"null", None()},
		{"3", Int(3)},
		{"3.0", Int(3)},
		{"true", Bool(true)},
		{`"vent"`, Action("vent")},
	}

	for _, test := range tests {
		var value Value
		require.NoError(t, json.Unmarshal([]byte(test.input), &value), test.input)
		assert.True(t, test.expected.Equal(value), test.input)
	}

	var value Value
	assert.Error(t, json.Unmarshal([]byte("2.5"), &value))
	assert.Error(t, json.Unmarshal([]byte("[1]"), &value))
}

func TestValueMissingFieldIsNone(t *testing.T) {
	var payload struct {
		Value Value `json:"value"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	assert.True(t, payload.Value.IsNone())
}
