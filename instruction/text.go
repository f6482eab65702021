package instruction

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"gitlab.com/prestrafe/spaceteam/board"
)

var (
	buttonPhrases = []string{
		"engage {name}",
		"activate {name}",
		"press {name}",
	}
	sliderPhrases = []string{
		"set {name} to {value}",
		"change {name} to {value}",
		"move {name} to {value}",
	}
	actionPhrases = []string{
		"{value} {name}",
	}
	switchOnPhrases = []string{
		"enable {name}",
		"engage {name}",
		"turn on {name}",
	}
	switchOffPhrases = []string{
		"disable {name}",
		"disengage {name}",
		"turn off {name}",
	}
	asteroidPhrases = []string{
		"asteroid incoming! Everyone, brace for impact!",
		"asteroid on a collision course! All hands, shake it off!",
	}
	blackHolePhrases = []string{
		"black hole ahead! Everyone, hold on tight!",
		"we are drifting into a black hole! All hands, full thrust!",
	}
)

func (f *Factory) text(instruction *Instruction) string {
	var phrases []string

	switch instruction.Special {
	case Asteroid:
		phrases = asteroidPhrases
	case BlackHole:
		phrases = blackHolePhrases
	case NotSpecial:
		phrases = controlPhrases(instruction.Control, instruction.Value)
	default:
		panic(fmt.Sprintf("instruction: unhandled special %v", instruction.Special))
	}

	phrase := phrases[f.rng.Intn(len(phrases))]
	if instruction.Control != nil {
		phrase = strings.NewReplacer(
			"{name}", instruction.Control.Label,
			"{value}", instruction.Value.String(),
		).Replace(phrase)
	}
	return capitalize(phrase)
}

func controlPhrases(control *board.Control, value board.Value) []string {
	switch control.Kind {
	case board.Button:
		return buttonPhrases
	case board.Slider, board.CircularSlider, board.ButtonsSlider:
		phrases := append([]string(nil), sliderPhrases...)
		if target, _ := value.Int(); target > control.Value {
			phrases = append(phrases, "increase {name} to {value}")
		} else {
			phrases = append(phrases, "decrease {name} to {value}")
		}
		return phrases
	case board.Actions:
		return actionPhrases
	case board.Switch:
		if on, _ := value.Bool(); on {
			return switchOnPhrases
		}
		return switchOffPhrases
	}
	panic(fmt.Sprintf("instruction: unhandled control kind %v", control.Kind))
}

func capitalize(text string) string {
	first, size := utf8.DecodeRuneInString(text)
	if first == utf8.RuneError {
		return text
	}
	return string(unicode.ToUpper(first)) + text[size:]
}
