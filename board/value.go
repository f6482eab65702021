package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type valueKind int

const (
	noValue valueKind = iota
	intValue
	boolValue
	actionValue
)

// Value is the input a participant applies to a control, or the value an instruction asks for. The zero Value is
// "no value", which is what buttons take.
type Value struct {
	kind   valueKind
	number int
	flag   bool
	action string
}

func None() Value {
	return Value{}
}

func Int(n int) Value {
	return Value{kind: intValue, number: n}
}

func Bool(b bool) Value {
	return Value{kind: boolValue, flag: b}
}

func Action(action string) Value {
	return Value{kind: actionValue, action: action}
}

func (v Value) IsNone() bool {
	return v.kind == noValue
}

func (v Value) Int() (int, bool) {
	return v.number, v.kind == intValue
}

func (v Value) Bool() (bool, bool) {
	return v.flag, v.kind == boolValue
}

func (v Value) Action() (string, bool) {
	return v.action, v.kind == actionValue
}

// Equal compares two values of the same kind. Actions compare case-insensitively.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case noValue:
		return true
	case intValue:
		return v.number == other.number
	case boolValue:
		return v.flag == other.flag
	case actionValue:
		return strings.EqualFold(v.action, other.action)
	}
	panic(fmt.Sprintf("board: unhandled value kind %d", v.kind))
}

// String renders the value the way it appears inside instruction text.
func (v Value) String() string {
	switch v.kind {
	case noValue:
		return ""
	case intValue:
		return strconv.Itoa(v.number)
	case boolValue:
		return strconv.FormatBool(v.flag)
	case actionValue:
		return v.action
	}
	panic(fmt.Sprintf("board: unhandled value kind %d", v.kind))
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case noValue:
		return []byte("null"), nil
	case intValue:
		return json.Marshal(v.number)
	case boolValue:
		return json.Marshal(v.flag)
	case actionValue:
		return json.Marshal(v.action)
	}
	return nil, fmt.Errorf("board: unhandled value kind %d", v.kind)
}

// UnmarshalJSON accepts null, an integral number, a boolean or a string. Anything else is rejected, so a malformed
// client value never reaches a control.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = None()
		return nil
	}

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch typed := raw.(type) {
	case bool:
		*v = Bool(typed)
	case string:
		*v = Action(typed)
	case float64:
		if typed != math.Trunc(typed) || math.Abs(typed) > math.MaxInt32 {
			return fmt.Errorf("board: %v is not an integer value", typed)
		}
		*v = Int(int(typed))
	default:
		return fmt.Errorf("board: unsupported value %s", string(data))
	}
	return nil
}
