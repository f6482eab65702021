package match

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/board"
	"gitlab.com/prestrafe/spaceteam/difficulty"
	"gitlab.com/prestrafe/spaceteam/instruction"
	"gitlab.com/prestrafe/spaceteam/labels"
	"gitlab.com/prestrafe/spaceteam/model"
)

const (
	warmupText    = "Get ready to receive instructions"
	nextLevelText = "No anomalies detected"
)

// AcknowledgeIntro records that p finished the level intro. The last acknowledgement hands out the boards and starts
// the warmup countdown, after which the first instructions arrive.
func (m *Match) AcknowledgeIntro(p Participant) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkPlaying(); err != nil {
		return err
	}
	slot := m.slotOf(p.ID())
	if slot == nil {
		return ErrNotInMatch
	}

	slot.introDone = true
	if m.levelStarted {
		return nil
	}
	for _, other := range m.slots {
		if !other.introDone {
			return nil
		}
	}

	m.levelStarted = true
	for _, other := range m.slots {
		m.notifier.Notify(other.ID(), model.EventGrid, model.NewGrid(other.board))
	}

	warmup := m.params.WarmupDuration()
	m.notifier.Broadcast(m.room(), model.EventCommand, model.Instruction{Text: warmupText, Time: warmup.Seconds()})
	m.warmup.Arm(warmup, m.beginInstructions)
	return nil
}

// ApplyControlAction sets the control called name on p's own board to value and completes the outstanding
// instruction it fulfils, if any. Actions fulfilling nothing cost the useless action penalty.
func (m *Match) ApplyControlAction(p Participant, name string, value board.Value) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkPlaying(); err != nil {
		return err
	}
	slot := m.slotOf(p.ID())
	if slot == nil {
		return ErrNotInMatch
	}
	if slot.board == nil {
		return ErrControlNotFound
	}
	control, ok := slot.board.Find(name)
	if !ok {
		return ErrControlNotFound
	}
	if err := control.Apply(value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	for _, outstanding := range m.instructions {
		if outstanding.CompletedBy(control, value) {
			m.completeInstruction(outstanding)
			return nil
		}
	}

	instructionsCounter.WithLabelValues("useless").Inc()
	if m.params.UselessPenalty > 0 {
		m.health -= m.params.UselessPenalty
		m.checkGameOver()
	}
	return nil
}

func (m *Match) checkPlaying() error {
	if m.disposing {
		return ErrDisposing
	}
	if !m.playing {
		return ErrNotInProgress
	}
	if m.over {
		return ErrGameOver
	}
	return nil
}

// advanceLevel moves to the next level: pending instructions and the drain stop, health and the death limit reset,
// and every participant gets a fresh board.
func (m *Match) advanceLevel() {
	m.cancelTimers()
	for _, slot := range m.slots {
		slot.expiry.Cancel()
		slot.instruction = nil
		slot.introDone = false
	}
	m.instructions = nil
	m.levelStarted = false

	m.level++
	m.health = m.settings.StartingHealth
	m.deathLimit = 0
	if m.level > 0 {
		m.params = difficulty.For(m.level)
	}

	names := labels.NewGenerator(m.words, m.rng)
	for _, slot := range m.slots {
		slot.board = m.boards.Generate(names)
	}

	lifecycleCounter.WithLabelValues("level").Inc()
	m.logger.Info("Level started", zap.Int("level", m.level), zap.Duration("duration", m.params.InstructionDuration))
}

func (m *Match) beginInstructions() {
	for _, slot := range m.slots {
		m.generateInstruction(slot, nil, true)
	}
	m.armDrain()
}

// generateInstruction replaces the instruction of slot and arms its expiry. Paths other than the expiry itself must
// pass replaceTimer so the pending expiry is cancelled before the new one is armed.
func (m *Match) generateInstruction(slot *Slot, expired *bool, replaceTimer bool) {
	if replaceTimer {
		slot.expiry.Cancel()
	}

	old := slot.instruction
	outstanding := m.instructions
	if old != nil && !m.hasInstruction(old) {
		outstanding = append(append([]*instruction.Instruction(nil), outstanding...), old)
	}

	next := m.factory.New(instruction.Request{
		Source:          slot.ID(),
		Seats:           m.seats(),
		Outstanding:     outstanding,
		AsteroidChance:  m.params.AsteroidChance,
		BlackHoleChance: m.params.BlackHoleChance,
		SinglePlayer:    m.settings.SinglePlayer,
	})
	m.removeInstruction(old)
	slot.instruction = next
	m.instructions = append(m.instructions, next)

	m.notifier.Notify(slot.ID(), model.EventCommand, model.Instruction{
		Text:            next.Text,
		Time:            m.params.InstructionDuration.Seconds(),
		Expired:         expired,
		SpecialDefeated: old != nil && old.IsSpecial(),
	})
	slot.expiry.Arm(m.params.InstructionDuration, func() { m.expire(slot) })
}

func (m *Match) expire(slot *Slot) {
	m.removeInstruction(slot.instruction)
	instructionsCounter.WithLabelValues("expired").Inc()

	m.health -= m.params.ExpiryPenalty
	if m.checkGameOver() {
		return
	}
	m.notifyHealth()

	expired := true
	m.generateInstruction(slot, &expired, false)
}

func (m *Match) armDrain() {
	m.drain.Arm(m.settings.HealthTick, m.drainTick)
}

func (m *Match) drainTick() {
	tick := m.settings.HealthTick.Seconds()
	m.health -= m.params.HealthDrainRate * tick
	m.deathLimit = math.Min(maxDeathLimit, m.deathLimit+m.params.DeathLimitRate*tick)
	m.logger.Debug("Health drained", zap.Float64("health", m.health), zap.Float64("death_limit", m.deathLimit))

	if m.checkGameOver() {
		return
	}
	m.notifyHealth()
	m.armDrain()
}

func (m *Match) completeInstruction(completed *instruction.Instruction) {
	m.removeInstruction(completed)
	instructionsCounter.WithLabelValues("completed").Inc()

	m.health += m.params.CompletionReward
	if m.health >= levelCompleted {
		m.advanceLevel()
		m.notifier.Broadcast(m.room(), model.EventNextLevel, model.NextLevel{Level: m.level, Text: nextLevelText})
		return
	}

	source := m.slotOf(completed.Source)
	if source != nil {
		succeeded := false
		m.generateInstruction(source, &succeeded, true)
	}
	m.notifyHealth()
}

// checkGameOver ends the match once health reaches the death limit and reports whether it did.
func (m *Match) checkGameOver() bool {
	if m.over {
		return true
	}
	if m.health > m.deathLimit {
		return false
	}

	m.over = true
	m.cancelTimers()
	for _, slot := range m.slots {
		slot.cancelTimers()
	}
	m.notifier.Broadcast(m.room(), model.EventGameOver, nil)

	lifecycleCounter.WithLabelValues("game_over").Inc()
	levelsReached.Observe(float64(m.level))
	m.logger.Info("Game over", zap.Int("level", m.level), zap.Float64("health", m.health))
	return true
}

func (m *Match) seats() []instruction.Seat {
	seats := make([]instruction.Seat, 0, len(m.slots))
	for _, slot := range m.slots {
		seats = append(seats, instruction.Seat{ID: slot.ID(), Board: slot.board})
	}
	return seats
}

func (m *Match) hasInstruction(target *instruction.Instruction) bool {
	for _, outstanding := range m.instructions {
		if outstanding == target {
			return true
		}
	}
	return false
}

func (m *Match) removeInstruction(target *instruction.Instruction) {
	if target == nil {
		return
	}
	for i, outstanding := range m.instructions {
		if outstanding == target {
			m.instructions = append(m.instructions[:i], m.instructions[i+1:]...)
			return
		}
	}
}
