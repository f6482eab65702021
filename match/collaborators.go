package match

// LobbyRoom is the room every session browsing public matches sits in.
const LobbyRoom = "lobby"

// Participant is a connected session as seen by a match.
type Participant interface {
	// Returns the session identifier.
	ID() string
	// Records that the participant now belongs to m.
	Bind(m *Match)
	// Forgets the binding, if the participant is still bound to m.
	Unbind(m *Match)
}

// Notifier delivers events to sessions. Every method is fire-and-forget and must never call back into a match.
type Notifier interface {
	// Sends an event to a single session.
	Notify(sessionID, event string, payload interface{})
	// Sends an event to every session in a room.
	Broadcast(room, event string, payload interface{})
	// Adds a session to a room.
	EnterRoom(sessionID, room string)
	// Removes a session from a room.
	LeaveRoom(sessionID, room string)
}

// Directory keeps track of live matches.
type Directory interface {
	// Forgets a match that is being disposed. Called with the match lock held, so it must not call back into the match.
	Unregister(id string)
}
