// Package collision resolves contacts between the motorcycle and the
// obstacle pool and computes the resulting damage, score and life changes.
// Resolve is pure: the session applies the returned outcome.
package collision

import (
	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
)

// Input is everything Resolve reads.
type Input struct {
	Motorcycle entity.Motorcycle
	Obstacles  []entity.Obstacle
	Shield     bool
	Lives      int
	Score      int
	Config     config.Collision
}

// Outcome is the change Resolve requests. Indexes refer to Input.Obstacles.
type Outcome struct {
	Health     float64
	Lives      int
	ScoreDelta int
	Hit        []int // Obstacles to deactivate for the hit cooldown
	Deflected  []int // Obstacles bounced off the shield
	LifeLost   bool
	GameOver   bool
}

// Hits returns how many obstacles damaged the rider.
func (o Outcome) Hits() int { return len(o.Hit) }

// Resolve tests every collidable obstacle against the rider.
// Hits are applied in pool order; once the last life is gone the rest of
// the pool is ignored.
func Resolve(in Input) Outcome {
	out := Outcome{
		Health: in.Motorcycle.Health,
		Lives:  in.Lives,
	}
	score := in.Score
	rate := in.Config.DamageRate(in.Motorcycle.Upgrades.Durability)

	for i, o := range in.Obstacles {
		if !o.Collidable() || !Overlaps(in.Config, in.Motorcycle, o) {
			continue
		}

		if in.Shield {
			out.Deflected = append(out.Deflected, i)
			out.ScoreDelta += in.Config.ShieldBonus
			score += in.Config.ShieldBonus
			continue
		}

		out.Hit = append(out.Hit, i)
		out.Health -= in.Config.Damage * rate

		// Penalty never takes the score below zero
		penalty := in.Config.ScorePenalty
		if penalty > score {
			penalty = score
		}
		score -= penalty
		out.ScoreDelta -= penalty

		if out.Health <= entity.MinHealth {
			out.Lives--
			out.LifeLost = true
			if out.Lives <= 0 {
				out.Lives = 0
				out.Health = entity.MinHealth
				out.GameOver = true
				break
			}
			out.Health = entity.MaxHealth
		}
	}
	return out
}

// Overlaps reports whether an obstacle touched the rider during the last
// advance, using the configured policy.
func Overlaps(cfg config.Collision, m entity.Motorcycle, o entity.Obstacle) bool {
	if cfg.Policy == config.PolicyAABB {
		return RiderBox(cfg, m).Intersects(ObstacleBox(m, o))
	}
	if o.Lane != m.Lane {
		return false
	}
	return core.SegmentGap(o.PrevZ, o.Z, m.Position.Z) < cfg.HitDistance
}

// RiderBox returns the motorcycle's bounding volume.
func RiderBox(cfg config.Collision, m entity.Motorcycle) core.Box {
	half := core.Vec3{X: cfg.RiderHalfX, Y: cfg.RiderHalfY, Z: cfg.RiderHalfZ}
	return core.NewBox(m.Position, half)
}

// ObstacleBox returns the obstacle's volume swept over its last advance.
// Obstacles sit at the rider's height so only the ground plane matters.
func ObstacleBox(m entity.Motorcycle, o entity.Obstacle) core.Box {
	center := core.Vec3{X: o.Lane.X(), Y: m.Position.Y, Z: o.Z}
	return core.NewBox(center, o.Type.HalfExtents()).Stretch(o.PrevZ, o.Z)
}
