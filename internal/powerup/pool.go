// Package powerup manages world pickups and the rider's timed effects.
// Pickups recycle like obstacles; effects count down independently and can
// all be active at once.
package powerup

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
)

// Manager lays out and recycles pickups with a seeded RNG.
type Manager struct {
	cfg config.PowerUps
	rng *rand.Rand
}

// NewManager creates a manager seeded for one run.
func NewManager(seed int64, cfg config.PowerUps) *Manager {
	return &Manager{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Reset reseeds the RNG.
func (m *Manager) Reset(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

// Layout returns a fresh pickup pool spread ahead of the rider.
func (m *Manager) Layout() []entity.Pickup {
	pool := make([]entity.Pickup, m.cfg.PoolSize)
	for i := range pool {
		z := m.cfg.StartZ + float64(i)*m.cfg.Spacing + m.rng.Float64()*m.cfg.Jitter
		pool[i] = entity.Pickup{
			ID:    i,
			Type:  m.randomType(),
			Lane:  m.randomLane(),
			Z:     z,
			PrevZ: z,
		}
	}
	return pool
}

// Advance moves pickups toward the rider the same way obstacles move,
// counts down collection cooldowns and respawns passed slots. The input
// slice is not modified.
func (m *Manager) Advance(pool []entity.Pickup, speed float64, dt time.Duration, advanceScale float64) []entity.Pickup {
	out := make([]entity.Pickup, len(pool))
	copy(out, pool)

	step := speed * dt.Seconds() * advanceScale
	for i := range out {
		p := &out[i]
		p.PrevZ = p.Z
		p.Z -= step
		if p.Collected {
			p.Cooldown -= dt
			if p.Cooldown <= 0 {
				p.Cooldown = 0
				p.Collected = false
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

// respawn reinitializes slot i beyond the farthest pickup.
func (m *Manager) respawn(pool []entity.Pickup, i int) {
	maxZ := pool[0].Z
	for _, p := range pool[1:] {
		if p.Z > maxZ {
			maxZ = p.Z
		}
	}
	z := maxZ + m.cfg.RespawnGap + m.rng.Float64()*m.cfg.RespawnJitter
	pool[i] = entity.Pickup{
		ID:    pool[i].ID,
		Type:  m.randomType(),
		Lane:  m.randomLane(),
		Z:     z,
		PrevZ: z,
	}
}

func (m *Manager) randomType() entity.PowerUpType {
	return entity.PowerUpType(m.rng.Intn(int(entity.PowerUpTypeCount)))
}

func (m *Manager) randomLane() entity.Lane {
	return entity.Lane(m.rng.Intn(entity.LaneCount))
}
