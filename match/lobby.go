package match

import (
	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/model"
)

const matchFullMessage = "The match is full"

// Join seats p in the match. A full match is reported to the participant with a join failure rather than an error.
func (m *Match) Join(p Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposing {
		return ErrDisposing
	}
	if m.playing {
		return ErrInProgress
	}
	if m.slotOf(p.ID()) != nil {
		return ErrAlreadyInMatch
	}
	if len(m.slots) >= m.maxPlayers {
		m.notifier.Notify(p.ID(), model.EventJoinFail, model.JoinFail{Message: matchFullMessage})
		return nil
	}

	slot := m.newSlot(p, len(m.slots) == 0)
	m.slots = append(m.slots, slot)
	m.notifier.EnterRoom(p.ID(), m.room())
	p.Bind(m)

	m.logger.Info("Participant joined", zap.String("participant", p.ID()), zap.Bool("host", slot.host))
	m.notifier.Notify(p.ID(), model.EventJoinSuccess, model.GameID{GameID: m.id})
	m.notifyGame()
	m.notifyLobby()

	if m.settings.SinglePlayer {
		slot.ready = true
		return m.start()
	}
	return nil
}

// Leave removes p from the match. Leaving a match in progress disposes it for everyone, leaving a lobby hands the host
// seat over and disposes the match once nobody is left.
func (m *Match) Leave(p Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leave(p)
}

func (m *Match) leave(p Participant) error {
	index := -1
	for i, slot := range m.slots {
		if slot.ID() == p.ID() {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrNotInMatch
	}

	slot := m.slots[index]
	slot.cancelTimers()
	m.slots = append(m.slots[:index], m.slots[index+1:]...)
	m.removeInstruction(slot.instruction)
	m.notifier.LeaveRoom(p.ID(), m.room())
	p.Unbind(m)
	m.logger.Info("Participant left", zap.String("participant", p.ID()))

	if m.disposing {
		return nil
	}

	if m.playing {
		m.notifier.Broadcast(m.room(), model.EventPlayerDisconnected, nil)
		return m.dispose()
	}

	if len(m.slots) == 0 {
		return m.dispose()
	}
	if slot.host {
		m.slots[m.rng.Intn(len(m.slots))].host = true
	}
	m.notifyGame()
	m.notifyLobby()
	return nil
}

// UpdateSettings changes the capacity and visibility of a match in the lobby. A nil argument leaves that setting
// alone, and a capacity outside [MinPlayers, MaxPlayers] is ignored.
func (m *Match) UpdateSettings(size *int, public *bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.disposing {
		return ErrDisposing
	}
	if m.playing {
		return ErrInProgress
	}

	wasPublic := m.public
	if size != nil && *size >= MinPlayers && *size <= MaxPlayers {
		m.maxPlayers = *size
	}
	if public != nil {
		m.public = *public
	}

	m.notifyGame()
	switch {
	case m.public:
		m.notifyLobby()
	case wasPublic:
		m.notifyLobbyDispose()
	}
	return nil
}

// ToggleReady flips the ready flag of p's slot.
func (m *Match) ToggleReady(p Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing {
		return ErrInProgress
	}
	slot := m.slotOf(p.ID())
	if slot == nil {
		return ErrNotInMatch
	}

	slot.ready = !slot.ready
	m.notifyGame()
	return nil
}

// Start moves the match from the lobby to level zero. Every participant must be ready and at least two must be
// seated, unless single player mode is on, which waives both.
func (m *Match) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.start()
}

func (m *Match) start() error {
	if m.disposing {
		return ErrDisposing
	}
	if m.playing {
		return ErrInProgress
	}
	if !m.settings.SinglePlayer {
		if len(m.slots) < MinPlayers {
			return ErrStartConditions
		}
		for _, slot := range m.slots {
			if !slot.ready {
				return ErrStartConditions
			}
		}
	}

	m.playing = true
	if m.public {
		m.notifyLobbyDispose()
	}
	m.advanceLevel()
	m.notifier.Broadcast(m.room(), model.EventGameStarted, nil)

	lifecycleCounter.WithLabelValues("started").Inc()
	m.logger.Info("Match started", zap.Int("participants", len(m.slots)))
	return nil
}

// Dispose tears the match down: every timer is cancelled, every participant is released and the directory forgets
// the match.
func (m *Match) Dispose() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dispose()
}

func (m *Match) dispose() error {
	if m.disposing {
		return ErrDisposing
	}
	m.disposing = true

	m.cancelTimers()
	for _, slot := range m.slots {
		slot.cancelTimers()
	}

	if !m.playing && m.public {
		m.notifyLobbyDispose()
	}
	for _, slot := range m.slots {
		m.notifier.LeaveRoom(slot.ID(), m.room())
		slot.participant.Unbind(m)
	}
	m.slots = nil
	m.instructions = nil

	if m.directory != nil {
		m.directory.Unregister(m.id)
	}

	lifecycleCounter.WithLabelValues("disposed").Inc()
	m.logger.Info("Match disposed")
	return nil
}

func (m *Match) cancelTimers() {
	m.drain.Cancel()
	m.warmup.Cancel()
}
