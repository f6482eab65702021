package match

import (
	"go.uber.org/zap"

	"gitlab.com/prestrafe/spaceteam/instruction"
)

// DefeatSpecial records that p is fighting the given hazard. Once every participant fights it at the same time, every
// outstanding instruction of that kind is completed. The participant's flag falls back after the reset delay.
func (m *Match) DefeatSpecial(p Participant, kind instruction.Special) error {
	if kind != instruction.Asteroid && kind != instruction.BlackHole {
		return ErrUnknownSpecial
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.checkPlaying(); err != nil {
		return err
	}
	slot := m.slotOf(p.ID())
	if slot == nil {
		return ErrNotInMatch
	}

	slot.defeating[kind] = true
	slot.resets[kind].Arm(m.settings.SpecialResetDelay, func() { slot.defeating[kind] = false })

	for _, other := range m.slots {
		if !other.defeating[kind] {
			return nil
		}
	}

	var cleared []*instruction.Instruction
	for _, outstanding := range m.instructions {
		if outstanding.Special == kind {
			cleared = append(cleared, outstanding)
		}
	}
	if len(cleared) == 0 {
		return nil
	}

	specialsCounter.WithLabelValues(kind.String()).Add(float64(len(cleared)))
	m.logger.Debug("Special cleared", zap.Stringer("kind", kind), zap.Int("instructions", len(cleared)))

	level := m.level
	for _, completed := range cleared {
		if m.over || m.level != level {
			break
		}
		m.completeInstruction(completed)
	}
	return nil
}
