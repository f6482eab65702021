package difficulty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLevelZeroIsBase(t *testing.T) {
	assert.Equal(t, Base, For(0))
	assert.Equal(t, Base, For(-1))
}

func TestFirstLevel(t *testing.T) {
	params := For(1)

	assert.Equal(t, 22250*time.Millisecond, params.InstructionDuration)
	assert.InDelta(t, 1.75, params.HealthDrainRate, 1e-9)
	assert.InDelta(t, 1.8, params.DeathLimitRate, 1e-9)
	assert.InDelta(t, 9.5, params.CompletionReward, 1e-9)
	assert.InDelta(t, 5.25, params.ExpiryPenalty, 1e-9)
	assert.InDelta(t, 0.25, params.AsteroidChance, 1e-9)
	assert.InDelta(t, 0.25, params.BlackHoleChance, 1e-9)
	assert.Zero(t, params.UselessPenalty)
}

func TestBounds(t *testing.T) {
	params := For(1000)

	assert.Equal(t, 7*time.Second, params.InstructionDuration)
	assert.InDelta(t, 1.75, params.HealthDrainRate, 1e-9)
	assert.InDelta(t, 3.5, params.DeathLimitRate, 1e-9)
	assert.InDelta(t, 3, params.CompletionReward, 1e-9)
	assert.InDelta(t, 20, params.ExpiryPenalty, 1e-9)
	assert.InDelta(t, 2.25, params.UselessPenalty, 1e-9)
}

func TestUselessPenaltyStartsAfterThreshold(t *testing.T) {
	for level := 0; level <= 5; level++ {
		assert.Zero(t, For(level).UselessPenalty, "level %d", level)
	}
	assert.InDelta(t, 0.1, For(6).UselessPenalty, 1e-9)
	assert.InDelta(t, 0.5, For(10).UselessPenalty, 1e-9)
}

func TestMonotonicAfterFirstLevel(t *testing.T) {
	previous := For(1)
	for level := 2; level < 100; level++ {
		current := For(level)

		assert.LessOrEqual(t, current.InstructionDuration, previous.InstructionDuration, "level %d", level)
		assert.LessOrEqual(t, current.HealthDrainRate, previous.HealthDrainRate, "level %d", level)
		assert.GreaterOrEqual(t, current.DeathLimitRate, previous.DeathLimitRate, "level %d", level)
		assert.LessOrEqual(t, current.CompletionReward, previous.CompletionReward, "level %d", level)
		assert.GreaterOrEqual(t, current.ExpiryPenalty, previous.ExpiryPenalty, "level %d", level)
		assert.GreaterOrEqual(t, current.UselessPenalty, previous.UselessPenalty, "level %d", level)

		previous = current
	}
}

func TestWarmupDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, Base.WarmupDuration())
	assert.Equal(t, 3*time.Second, For(1000).WarmupDuration())
	assert.Equal(t, 4*time.Second, For(1).WarmupDuration())
}
