package model

import (
	"gitlab.com/prestrafe/spaceteam/board"
)

// CreateGame requires both fields; Public is a pointer so that a missing flag can be told apart from false.
type CreateGame struct {
	Name   string `json:"name"`
	Public *bool  `json:"public"`
}

type JoinGame struct {
	GameID string `json:"game_id"`
}

// GameSettings leaves a field untouched when it is absent.
type GameSettings struct {
	Size   *int  `json:"size"`
	Public *bool `json:"public"`
}

type DoCommand struct {
	Name  string      `json:"name"`
	Value board.Value `json:"value"`
}
