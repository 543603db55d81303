package config

import (
	"math"

	"github.com/vovakirdan/motorush/internal/entity"
)

// DifficultyManager calculates speed limits from difficulty, level and upgrades.
type DifficultyManager struct {
	physics Physics
	cfg     DifficultyConfig
	preset  entity.Difficulty
}

// NewDifficultyManager creates a new difficulty manager for the given preset.
func NewDifficultyManager(physics Physics, cfg DifficultyConfig, preset entity.Difficulty) *DifficultyManager {
	return &DifficultyManager{
		physics: physics,
		cfg:     cfg,
		preset:  preset,
	}
}

// SetPreset switches the active difficulty preset.
func (d *DifficultyManager) SetPreset(preset entity.Difficulty) {
	d.preset = preset
}

// Preset returns the active difficulty preset.
func (d *DifficultyManager) Preset() entity.Difficulty {
	return d.preset
}

// Multiplier returns the scale applied to acceleration and top speed.
func (d *DifficultyManager) Multiplier() float64 {
	return d.cfg.Multiplier(d.preset)
}

// Accel returns the speed gained per reference frame.
func (d *DifficultyManager) Accel(level, engine int) float64 {
	base := d.physics.BaseAccel * d.Multiplier() * (1 + float64(level)*d.physics.AccelPerLevel)
	return base * (1 + d.physics.EngineAccel*float64(aboveBase(engine)))
}

// MaxSpeed returns the speed cap for the given level and engine upgrade.
func (d *DifficultyManager) MaxSpeed(level, engine int) float64 {
	return d.physics.BaseMaxSpeed*d.Multiplier() +
		float64(level)*d.physics.MaxSpeedPerLevel +
		float64(aboveBase(engine))*d.physics.EngineMaxSpeed
}

// LaneSmoothing returns the lateral lerp factor for the given handling upgrade.
func (d *DifficultyManager) LaneSmoothing(handling int) float64 {
	f := d.physics.LaneSmoothing + d.physics.HandlingSmooth*float64(aboveBase(handling))
	return clampF(f, 0, d.physics.MaxSmoothing)
}

// Multiplier returns the configured scale for a preset. Unknown presets use normal.
func (c DifficultyConfig) Multiplier(preset entity.Difficulty) float64 {
	switch preset {
	case entity.DifficultyEasy:
		return c.Easy
	case entity.DifficultyHard:
		return c.Hard
	default:
		return c.Normal
	}
}

// DamageRate returns the share of base damage taken at the given durability.
func (c Collision) DamageRate(durability int) float64 {
	return clampF(1-c.ArmorPerLevel*float64(aboveBase(durability)), c.MinDamageRate, 1)
}

// aboveBase returns how many levels an upgrade sits above the base level.
func aboveBase(level int) int {
	if level <= entity.MinUpgradeLevel {
		return 0
	}
	return level - entity.MinUpgradeLevel
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
