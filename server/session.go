package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/match"
	"gitlab.com/prestrafe/spaceteam/model"
)

const (
	channelBufferSize = 64
	maxFrameSize      = 4096
	writeWait         = 10 * time.Second
	pongWait          = 60 * time.Second
	pingPeriod        = pongWait * 9 / 10
)

// session is one websocket connection. It implements match.Participant.
type session struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	logger *zap.Logger

	mu    sync.Mutex
	match *match.Match
}

func newSession(id string, conn *websocket.Conn, logger *zap.Logger) *session {
	return &session{
		id:     id,
		conn:   conn,
		send:   make(chan []byte, channelBufferSize),
		logger: logger.With(zap.String("session", id)),
	}
}

func (s *session) ID() string {
	return s.id
}

func (s *session) Bind(m *match.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.match = m
}

func (s *session) Unbind(m *match.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match == m {
		s.match = nil
	}
}

func (s *session) current() *match.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match
}

// readLoop decodes inbound envelopes and hands them to handle until the connection fails.
func (s *session) readLoop(handle func(s *session, envelope model.Envelope)) {
	s.conn.SetReadLimit(maxFrameSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Info("Session closed unexpectedly", zap.Error(err))
			}
			return
		}

		var envelope model.Envelope
		if err := json.Unmarshal(data, &envelope); err != nil || envelope.Event == "" {
			s.logger.Debug("Could not de-serialize envelope", zap.Error(err))
			framesCounter.WithLabelValues("malformed").Inc()
			s.reply(model.EventErrorInvalidArguments)
			continue
		}
		handle(s, envelope)
	}
}

// writeLoop drains the send channel onto the connection and keeps it alive with pings. It returns once the hub closed
// the channel or a write failed.
func (s *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case frame, more := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !more {
				_ = s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := s.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				s.logger.Debug("Could not write frame", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reply queues a payload-less event for this session only, bypassing the hub.
func (s *session) reply(event string) {
	frame, _ := encode(event, nil)
	select {
	case s.send <- frame:
	default:
	}
}
