// Package obstacle manages the fixed pool of road obstacles: initial layout,
// forward motion toward the rider and recycling of passed slots.
package obstacle

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
)

// Manager lays out and recycles obstacles with a seeded RNG.
// It never holds the pool itself; every call takes the current pool and
// returns a new one, so the session remains the only owner.
type Manager struct {
	cfg config.Obstacles
	rng *rand.Rand
}

// NewManager creates a manager seeded for one run.
func NewManager(seed int64, cfg config.Obstacles) *Manager {
	return &Manager{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Reset reseeds the RNG.
func (m *Manager) Reset(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

// Layout returns a fresh pool spread ahead of the rider.
func (m *Manager) Layout() []entity.Obstacle {
	pool := make([]entity.Obstacle, m.cfg.PoolSize)
	for i := range pool {
		z := m.cfg.StartZ + float64(i)*m.cfg.Spacing + m.rng.Float64()*m.cfg.Jitter
		pool[i] = entity.Obstacle{
			ID:     i,
			Type:   m.randomType(),
			Lane:   m.randomLane(),
			Z:      z,
			PrevZ:  z,
			Active: true,
		}
	}
	return pool
}

// Advance moves every obstacle toward the rider by speed over dt, counts
// down hit cooldowns and respawns slots that fell behind. The input slice
// is not modified and the result has the same length and IDs.
func (m *Manager) Advance(pool []entity.Obstacle, speed float64, dt time.Duration) []entity.Obstacle {
	out := make([]entity.Obstacle, len(pool))
	copy(out, pool)

	step := speed * dt.Seconds() * m.cfg.AdvanceScale
	for i := range out {
		o := &out[i]
		o.PrevZ = o.Z
		o.Z -= step

		if o.Deflected > 0 {
			o.Deflected -= dt
			if o.Deflected < 0 {
				o.Deflected = 0
			}
		}
		if !o.Active {
			o.Cooldown -= dt
			if o.Cooldown <= 0 {
				o.Cooldown = 0
				o.Active = true
			}
		}
	}

	for i := range out {
		if out[i].Z < m.cfg.PassedZ {
			m.respawn(out, i)
		}
	}
	return out
}

// respawn reinitializes slot i beyond the farthest obstacle in the pool.
func (m *Manager) respawn(pool []entity.Obstacle, i int) {
	maxZ := FarthestZ(pool)
	var z float64
	if maxZ > m.cfg.RespawnFloorMin {
		z = maxZ + m.cfg.RespawnGap + m.rng.Float64()*m.cfg.RespawnJitter
	} else {
		z = m.cfg.RespawnFloorZ + m.rng.Float64()*m.cfg.RespawnFloorJit
	}
	pool[i] = entity.Obstacle{
		ID:     pool[i].ID,
		Type:   m.randomType(),
		Lane:   m.randomLane(),
		Z:      z,
		PrevZ:  z,
		Active: true,
	}
}

func (m *Manager) randomType() entity.ObstacleType {
	return entity.ObstacleType(m.rng.Intn(int(entity.ObstacleTypeCount)))
}

func (m *Manager) randomLane() entity.Lane {
	return entity.Lane(m.rng.Intn(entity.LaneCount))
}

// FarthestZ returns the largest Z in the pool, or 0 for an empty pool.
func FarthestZ(pool []entity.Obstacle) float64 {
	if len(pool) == 0 {
		return 0
	}
	maxZ := pool[0].Z
	for _, o := range pool[1:] {
		if o.Z > maxZ {
			maxZ = o.Z
		}
	}
	return maxZ
}
