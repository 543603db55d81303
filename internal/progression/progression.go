// Package progression advances speed, distance, score, level and health
// for one tick of play.
package progression

import (
	"math"
	"time"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
)

// ReferenceFPS is the frame rate per-frame tunables are expressed at.
const ReferenceFPS = 60

// Input is everything Step reads.
type Input struct {
	Motorcycle entity.Motorcycle
	Stats      entity.GameStats
	Turbo      bool
	DT         time.Duration
	Physics    config.Physics
	Difficulty *config.DifficultyManager
}

// Output is the progressed state Step requests.
type Output struct {
	Speed      float64
	PositionX  float64
	Distance   float64
	Score      int
	ScoreCarry float64
	Level      int
	Health     float64
}

// Step computes one tick of progression.
// Distance integrates the speed held at the start of the tick.
// Level never decreases, even if Distance is supplied lower than before.
func Step(in Input) Output {
	dt := in.DT
	if dt < 0 {
		dt = 0
	}
	frames := dt.Seconds() * ReferenceFPS
	m := in.Motorcycle
	st := in.Stats
	level := core.Max(st.Level, 1)

	// Speed
	accel := in.Difficulty.Accel(level, m.Upgrades.Engine)
	maxSpeed := in.Difficulty.MaxSpeed(level, m.Upgrades.Engine)
	speed := math.Min(m.Speed+accel*frames, maxSpeed)
	speed = math.Max(speed, 0)

	// Distance and score
	gain := math.Max(m.Speed, 0) * dt.Seconds() * in.Physics.DistanceScale
	if in.Turbo {
		gain *= in.Physics.TurboMultiplier
	}
	distance := st.Distance + gain
	points := st.ScoreCarry + gain*in.Physics.ScoreScale
	whole := math.Floor(points)
	score := st.Score + int(whole)
	if score < 0 {
		score = 0
	}

	// Level
	newLevel := LevelFor(distance, in.Physics.LevelDistance)
	if newLevel < level {
		newLevel = level
	}

	// Health regeneration
	health := m.Health
	if health < entity.MaxHealth {
		health += in.Physics.HealthRegen * frames
	}
	health = core.ClampF(health, entity.MinHealth, entity.MaxHealth)

	// Lateral easing toward the lane center
	f := in.Difficulty.LaneSmoothing(m.Upgrades.Handling)
	ease := 1 - math.Pow(1-f, frames)
	x := core.Lerp(m.Position.X, m.Lane.X(), ease)

	return Output{
		Speed:      speed,
		PositionX:  x,
		Distance:   distance,
		Score:      score,
		ScoreCarry: points - whole,
		Level:      newLevel,
		Health:     health,
	}
}

// LevelFor returns the level reached at a distance.
func LevelFor(distance, unit float64) int {
	if unit <= 0 || distance <= 0 {
		return 1
	}
	return int(math.Floor(distance/unit)) + 1
}
