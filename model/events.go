package model

import "encoding/json"

// Envelope is the frame exchanged over a session's websocket in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Outbound events.
const (
	EventLobbyInfo          = "lobby_info"
	EventLobbyDisposed      = "lobby_disposed"
	EventLobbies            = "lobbies"
	EventGameInfo           = "game_info"
	EventJoinSuccess        = "game_join_success"
	EventJoinFail           = "game_join_fail"
	EventGameStarted        = "game_started"
	EventGrid               = "grid"
	EventCommand            = "command"
	EventHealthInfo         = "health_info"
	EventNextLevel          = "next_level"
	EventGameOver           = "game_over"
	EventPlayerDisconnected = "player_disconnected"

	EventErrorMissingArguments = "error_missing_arguments"
	EventErrorInvalidArguments = "error_invalid_arguments"
	EventErrorInGame           = "error_in_game"
	EventErrorNotInGame        = "error_not_in_game"
	EventErrorIsNotHost        = "error_is_not_host"
	EventErrorStartConditions  = "error_start_conditions"
	EventErrorUnknownEvent     = "error_unknown_event"
)

// Inbound events.
const (
	EventJoinLobby       = "join_lobby"
	EventLeaveLobby      = "leave_lobby"
	EventGetLobbies      = "get_lobbies"
	EventCreateGame      = "create_game"
	EventJoinGame        = "join_game"
	EventLeaveGame       = "leave_game"
	EventGameSettings    = "game_settings"
	EventReady           = "ready"
	EventStartGame       = "start_game"
	EventIntroDone       = "intro_done"
	EventDoCommand       = "command"
	EventDefeatAsteroid  = "defeat_asteroid"
	EventDefeatBlackHole = "defeat_black_hole"
)
