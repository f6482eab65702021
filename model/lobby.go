package model

// LobbyInfo is what the lobby room and the public listing know about a match.
type LobbyInfo struct {
	Name       string `json:"name"`
	GameID     string `json:"game_id"`
	Players    int    `json:"players"`
	MaxPlayers int    `json:"max_players"`
	Public     bool   `json:"public"`
}

type SlotInfo struct {
	UID   string `json:"uid"`
	Ready bool   `json:"ready"`
	Host  bool   `json:"host"`
}

// GameInfo is the full roster snapshot broadcast to a match's room. Slots has one entry per seat, nil for empty seats.
type GameInfo struct {
	LobbyInfo
	Slots []*SlotInfo `json:"slots"`
}

type GameID struct {
	GameID string `json:"game_id"`
}

type JoinFail struct {
	Message string `json:"message"`
}
