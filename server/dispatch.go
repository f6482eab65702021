package server

import (
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/instruction"
	"gitlab.com/prestrafe/spaceteam/match"
	"gitlab.com/prestrafe/spaceteam/model"
)

const unknownMatchMessage = "The match does not exist"

var (
	errMissingArguments = errors.New("missing arguments")
	errInvalidArguments = errors.New("invalid arguments")
	errNotInGame        = errors.New("session is not in a match")
	errNotHost          = errors.New("session is not the host")
)

type handler func(s *server, sess *session, data json.RawMessage) error

var handlers = map[string]handler{
	model.EventJoinLobby:       (*server).joinLobby,
	model.EventLeaveLobby:      (*server).leaveLobby,
	model.EventGetLobbies:      (*server).getLobbies,
	model.EventCreateGame:      (*server).createGame,
	model.EventJoinGame:        (*server).joinGame,
	model.EventLeaveGame:       (*server).leaveGame,
	model.EventGameSettings:    (*server).gameSettings,
	model.EventReady:           (*server).ready,
	model.EventStartGame:       (*server).startGame,
	model.EventIntroDone:       (*server).introDone,
	model.EventDoCommand:       (*server).doCommand,
	model.EventDefeatAsteroid:  (*server).defeatAsteroid,
	model.EventDefeatBlackHole: (*server).defeatBlackHole,
}

func (s *server) dispatch(sess *session, envelope model.Envelope) {
	handle, known := handlers[envelope.Event]
	if !known {
		eventsCounter.WithLabelValues("unknown", "rejected").Inc()
		s.hub.Notify(sess.id, model.EventErrorUnknownEvent, nil)
		return
	}

	if err := handle(s, sess, envelope.Data); err != nil {
		eventsCounter.WithLabelValues(envelope.Event, "rejected").Inc()
		sess.logger.Debug("Event rejected", zap.String("event", envelope.Event), zap.Error(err))
		s.hub.Notify(sess.id, errorEvent(err), nil)
		return
	}
	eventsCounter.WithLabelValues(envelope.Event, "accepted").Inc()
}

// errorEvent maps a rejection to the notice the session receives.
func errorEvent(err error) string {
	switch {
	case errors.Is(err, errMissingArguments):
		return model.EventErrorMissingArguments
	case errors.Is(err, errNotHost):
		return model.EventErrorIsNotHost
	case errors.Is(err, match.ErrStartConditions):
		return model.EventErrorStartConditions
	case errors.Is(err, match.ErrInProgress), errors.Is(err, match.ErrAlreadyInMatch):
		return model.EventErrorInGame
	case errors.Is(err, errNotInGame), errors.Is(err, match.ErrNotInProgress), errors.Is(err, match.ErrNotInMatch),
		errors.Is(err, match.ErrGameOver), errors.Is(err, match.ErrDisposing):
		return model.EventErrorNotInGame
	default:
		return model.EventErrorInvalidArguments
	}
}

func decode(data json.RawMessage, target interface{}) error {
	if len(data) == 0 || string(data) == "null" {
		return errMissingArguments
	}
	if err := json.Unmarshal(data, target); err != nil {
		return errInvalidArguments
	}
	return nil
}

func (s *server) joinLobby(sess *session, _ json.RawMessage) error {
	s.hub.EnterRoom(sess.id, match.LobbyRoom)
	for _, info := range s.directory.Public() {
		s.hub.Notify(sess.id, model.EventLobbyInfo, info)
	}
	sess.logger.Debug("Joined lobby")
	return nil
}

func (s *server) leaveLobby(sess *session, _ json.RawMessage) error {
	s.hub.LeaveRoom(sess.id, match.LobbyRoom)
	sess.logger.Debug("Left lobby")
	return nil
}

func (s *server) getLobbies(sess *session, _ json.RawMessage) error {
	s.hub.Notify(sess.id, model.EventLobbies, s.directory.Public())
	return nil
}

func (s *server) createGame(sess *session, data json.RawMessage) error {
	var request model.CreateGame
	if err := decode(data, &request); err != nil {
		return err
	}
	name := strings.TrimSpace(request.Name)
	if name == "" || request.Public == nil {
		return errMissingArguments
	}

	if err := s.leaveCurrent(sess); err != nil {
		return err
	}

	m := match.New(name, *request.Public, s.settings, match.Dependencies{
		Notifier:  s.hub,
		Directory: s.directory,
		Words:     s.words,
		Logger:    s.logger,
	})
	s.directory.Register(m)
	return m.Join(sess)
}

func (s *server) joinGame(sess *session, data json.RawMessage) error {
	var request model.JoinGame
	if err := decode(data, &request); err != nil {
		return err
	}
	if request.GameID == "" {
		return errMissingArguments
	}

	m, present := s.directory.Get(request.GameID)
	if !present {
		s.hub.Notify(sess.id, model.EventJoinFail, model.JoinFail{Message: unknownMatchMessage})
		return nil
	}
	if m == sess.current() {
		return match.ErrAlreadyInMatch
	}

	if err := s.leaveCurrent(sess); err != nil {
		return err
	}
	return m.Join(sess)
}

func (s *server) leaveGame(sess *session, _ json.RawMessage) error {
	m, err := s.inMatch(sess)
	if err != nil {
		return err
	}
	return m.Leave(sess)
}

func (s *server) gameSettings(sess *session, data json.RawMessage) error {
	m, err := s.asHost(sess)
	if err != nil {
		return err
	}

	var request model.GameSettings
	if err := decode(data, &request); err != nil {
		return err
	}
	if request.Size == nil && request.Public == nil {
		return errMissingArguments
	}
	return m.UpdateSettings(request.Size, request.Public)
}

func (s *server) ready(sess *session, _ json.RawMessage) error {
	m, err := s.inMatch(sess)
	if err != nil {
		return err
	}
	return m.ToggleReady(sess)
}

func (s *server) startGame(sess *session, _ json.RawMessage) error {
	m, err := s.asHost(sess)
	if err != nil {
		return err
	}
	return m.Start()
}

func (s *server) introDone(sess *session, _ json.RawMessage) error {
	m, err := s.inMatch(sess)
	if err != nil {
		return err
	}
	return m.AcknowledgeIntro(sess)
}

func (s *server) doCommand(sess *session, data json.RawMessage) error {
	m, err := s.inMatch(sess)
	if err != nil {
		return err
	}

	var request model.DoCommand
	if err := decode(data, &request); err != nil {
		return err
	}
	if request.Name == "" {
		return errMissingArguments
	}
	return m.ApplyControlAction(sess, request.Name, request.Value)
}

func (s *server) defeatAsteroid(sess *session, _ json.RawMessage) error {
	return s.defeat(sess, instruction.Asteroid)
}

func (s *server) defeatBlackHole(sess *session, _ json.RawMessage) error {
	return s.defeat(sess, instruction.BlackHole)
}

func (s *server) defeat(sess *session, kind instruction.Special) error {
	m, err := s.inMatch(sess)
	if err != nil {
		return err
	}
	return m.DefeatSpecial(sess, kind)
}

func (s *server) inMatch(sess *session) (*match.Match, error) {
	if m := sess.current(); m != nil {
		return m, nil
	}
	return nil, errNotInGame
}

func (s *server) asHost(sess *session) (*match.Match, error) {
	m, err := s.inMatch(sess)
	if err != nil {
		return nil, err
	}
	if !m.IsHost(sess.id) {
		return nil, errNotHost
	}
	return m, nil
}

// leaveCurrent takes the session out of the match it sits in, if any, before it joins another one.
func (s *server) leaveCurrent(sess *session) error {
	m := sess.current()
	if m == nil {
		return nil
	}
	if err := m.Leave(sess); err != nil && !errors.Is(err, match.ErrNotInMatch) {
		return err
	}
	return nil
}
