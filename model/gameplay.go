package model

import (
	"gitlab.com/prestrafe/spaceteam/board"
)

// Control is the client view of a board control. X is the column and Y the row of its top-left cell.
type Control struct {
	Type    string   `json:"type"`
	X       int      `json:"x"`
	Y       int      `json:"y"`
	W       int      `json:"w"`
	H       int      `json:"h"`
	Name    string   `json:"name"`
	Min     *int     `json:"min,omitempty"`
	Max     *int     `json:"max,omitempty"`
	Actions []string `json:"actions,omitempty"`
}

// NewGrid converts a board into the ordered payload a participant receives privately.
func NewGrid(b *board.Board) []Control {
	grid := make([]Control, 0, len(b.Controls))
	for _, control := range b.Controls {
		payload := Control{
			Type: control.Kind.String(),
			X:    control.Col,
			Y:    control.Row,
			W:    control.Width,
			H:    control.Height,
			Name: control.Label,
		}
		if control.Kind.SliderLike() {
			lo, hi := control.Min, control.Max
			payload.Min = &lo
			payload.Max = &hi
		}
		if control.Kind == board.Actions {
			payload.Actions = append([]string(nil), control.Choices...)
		}
		grid = append(grid, payload)
	}
	return grid
}

// Instruction is sent to the one participant that has to carry it out. Expired is nil when the previous instruction
// neither expired nor succeeded (the first one of a level, or the warmup).
type Instruction struct {
	Text            string  `json:"text"`
	Time            float64 `json:"time"`
	Expired         *bool   `json:"expired"`
	SpecialDefeated bool    `json:"special_defeated"`
}

type HealthInfo struct {
	Health     float64 `json:"health"`
	DeathLimit float64 `json:"death_limit"`
}

type NextLevel struct {
	Level    int     `json:"level"`
	Modifier *string `json:"modifier"`
	Text     string  `json:"text"`
}
