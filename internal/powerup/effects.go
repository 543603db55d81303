package powerup

import (
	"math"
	"time"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
)

// CollectInput is everything Collect reads.
type CollectInput struct {
	Motorcycle entity.Motorcycle
	Pickups    []entity.Pickup
	Magnet     bool
	Config     config.PowerUps
}

// CollectOutcome is the change Collect requests. Indexes refer to CollectInput.Pickups.
type CollectOutcome struct {
	Collected []int
	Activated []entity.PowerUpType
	Coins     int
	Score     int
}

// Collect finds every visible pickup the rider passed within reach of
// during the last advance.
func Collect(in CollectInput) CollectOutcome {
	var out CollectOutcome
	radius := in.Config.PickupRadius
	if in.Magnet {
		radius *= in.Config.MagnetRadiusScale
	}

	pos := in.Motorcycle.Position
	for i, p := range in.Pickups {
		if p.Collected {
			continue
		}
		dx := p.Lane.X() - pos.X
		dz := core.SegmentGap(p.PrevZ, p.Z, pos.Z)
		if math.Hypot(dx, dz) >= radius {
			continue
		}
		out.Collected = append(out.Collected, i)
		out.Activated = append(out.Activated, p.Type)
		out.Coins += in.Config.Coins
		out.Score += in.Config.Score
	}
	return out
}

// Activate starts or restarts an effect. Restarting resets the remaining
// time rather than stacking it. A non-positive duration leaves the effect off.
func Activate(e entity.Effects, t entity.PowerUpType, d time.Duration) entity.Effects {
	if t < 0 || t >= entity.PowerUpTypeCount {
		return e
	}
	if d <= 0 {
		e[t] = entity.Effect{Type: t}
		return e
	}
	e[t] = entity.Effect{Type: t, Remaining: d, Active: true}
	return e
}

// Tick counts every active effect down by dt and switches off the ones
// that ran out.
func Tick(e entity.Effects, dt time.Duration) entity.Effects {
	if dt < 0 {
		dt = 0
	}
	for i := range e {
		if !e[i].Active {
			continue
		}
		e[i].Remaining -= dt
		if e[i].Remaining <= 0 {
			e[i].Remaining = 0
			e[i].Active = false
		}
	}
	return e
}
