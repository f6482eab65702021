package server

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/model"
)

// hub delivers events to connected sessions and tracks which rooms they sit in. It implements match.Notifier. Frames
// are queued on each session's send channel without blocking; a session whose queue is full loses the frame.
type hub struct {
	mu       sync.RWMutex
	sessions map[string]*session
	rooms    map[string]map[string]struct{}
	logger   *zap.Logger
}

func newHub(logger *zap.Logger) *hub {
	return &hub{
		sessions: make(map[string]*session),
		rooms:    make(map[string]map[string]struct{}),
		logger:   logger,
	}
}

func (h *hub) add(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sessions[s.id] = s
	sessionsGauge.Inc()
}

// remove forgets the session, drops it from every room and closes its send channel, which ends its write loop.
func (h *hub) remove(s *session) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, present := h.sessions[s.id]; !present {
		return
	}
	delete(h.sessions, s.id)
	for name, members := range h.rooms {
		delete(members, s.id)
		if len(members) == 0 {
			delete(h.rooms, name)
		}
	}
	close(s.send)
	sessionsGauge.Dec()
}

func (h *hub) Notify(sessionID, event string, payload interface{}) {
	frame, err := encode(event, payload)
	if err != nil {
		h.logger.Error("Could not serialize event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	if s, present := h.sessions[sessionID]; present {
		h.deliver(s, event, frame)
	}
}

func (h *hub) Broadcast(room, event string, payload interface{}) {
	frame, err := encode(event, payload)
	if err != nil {
		h.logger.Error("Could not serialize event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for id := range h.rooms[room] {
		if s, present := h.sessions[id]; present {
			h.deliver(s, event, frame)
		}
	}
}

func (h *hub) EnterRoom(sessionID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, present := h.sessions[sessionID]; !present {
		return
	}
	if h.rooms[room] == nil {
		h.rooms[room] = make(map[string]struct{})
	}
	h.rooms[room][sessionID] = struct{}{}
}

func (h *hub) LeaveRoom(sessionID, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if members, present := h.rooms[room]; present {
		delete(members, sessionID)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *hub) members(room string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[room])
}

// closeAll closes every connection. The read loops fail afterwards and clean their sessions up.
func (h *hub) closeAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, s := range h.sessions {
		_ = s.conn.Close()
	}
}

func (h *hub) deliver(s *session, event string, frame []byte) {
	select {
	case s.send <- frame:
		framesCounter.WithLabelValues("sent").Inc()
	default:
		framesCounter.WithLabelValues("dropped").Inc()
		h.logger.Warn("Dropped event for slow session", zap.String("session", s.id), zap.String("event", event))
	}
}

func encode(event string, payload interface{}) ([]byte, error) {
	envelope := model.Envelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		envelope.Data = data
	}
	return json.Marshal(envelope)
}
