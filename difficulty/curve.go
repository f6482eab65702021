// Package difficulty maps a level number to the tuning parameters of that level.
package difficulty

import (
	"math"
	"time"
)

// Parameters is the immutable tuning set of one level. Rates are expressed per second.
type Parameters struct {
	InstructionDuration time.Duration
	HealthDrainRate     float64
	DeathLimitRate      float64
	CompletionReward    float64
	UselessPenalty      float64
	ExpiryPenalty       float64
	AsteroidChance      float64
	BlackHoleChance     float64
}

const (
	durationStep  = 2750 * time.Millisecond
	durationFloor = 7 * time.Second

	drainStep  = 0.35
	drainFloor = 1.75

	deathLimitStep    = 0.35
	deathLimitFloor   = 1.8
	deathLimitCeiling = 3.5

	rewardStep  = 0.5
	rewardFloor = 3.0

	expiryStep    = 0.25
	expiryCeiling = 20.0

	specialChance = 0.25

	uselessThreshold = 5
	uselessStep      = 0.1
	uselessCeiling   = 2.25
)

// Base is the parameter set of level zero.
var Base = Parameters{
	InstructionDuration: 25 * time.Second,
	HealthDrainRate:     0.5,
	DeathLimitRate:      0.05,
	CompletionReward:    10,
	UselessPenalty:      0,
	ExpiryPenalty:       5,
	AsteroidChance:      0.5,
	BlackHoleChance:     0.5,
}

// For returns the parameters of level. Every parameter moves from Base by a fixed step per level and stops at its
// bound; negative levels are treated as level zero.
func For(level int) Parameters {
	if level <= 0 {
		return Base
	}
	l := float64(level)

	params := Parameters{
		InstructionDuration: Base.InstructionDuration - time.Duration(level)*durationStep,
		HealthDrainRate:     math.Max(drainFloor, Base.HealthDrainRate-drainStep*l),
		DeathLimitRate:      math.Min(deathLimitCeiling, math.Max(deathLimitFloor, Base.DeathLimitRate+deathLimitStep*l)),
		CompletionReward:    math.Max(rewardFloor, Base.CompletionReward-rewardStep*l),
		ExpiryPenalty:       math.Min(expiryCeiling, Base.ExpiryPenalty+expiryStep*l),
		AsteroidChance:      specialChance,
		BlackHoleChance:     specialChance,
	}
	if params.InstructionDuration < durationFloor {
		params.InstructionDuration = durationFloor
	}
	if level > uselessThreshold {
		params.UselessPenalty = math.Min(uselessCeiling, uselessStep*float64(level-uselessThreshold))
	}

	return params
}

// WarmupDuration is the "get ready" countdown before the first instructions of a level: a fifth of the instruction
// duration in whole seconds, and never less than three seconds.
func (p Parameters) WarmupDuration() time.Duration {
	seconds := int(p.InstructionDuration / time.Second / 5)
	if seconds < 3 {
		seconds = 3
	}
	return time.Duration(seconds) * time.Second
}
