package session

import (
	"time"

	"github.com/vovakirdan/motorush/internal/collision"
	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/powerup"
	"github.com/vovakirdan/motorush/internal/progression"
)

// Report describes what happened during one tick, for hosts that flash
// the HUD or log events.
type Report struct {
	LaneChanged bool
	Hits        int
	Deflections int
	Collected   []entity.PowerUpType
	LifeLost    bool
	LevelUp     bool
	GameOver    bool
}

// Tick advances a playing session by dt. Pending input is applied first,
// then progression, obstacles, collision and power-ups run in that order.
// Outside the playing state Tick does nothing.
func (m *Machine) Tick(dt time.Duration) Report {
	var rep Report
	if m.s.State != entity.StatePlaying {
		return rep
	}
	dt = tickDelta(dt)
	s := &m.s

	// Input: one authoritative merge per tick
	lane := s.Motorcycle.Lane
	for _, cmd := range m.input.Drain() {
		lane = cmd.Resolve(lane)
	}
	if lane != s.Motorcycle.Lane {
		m.log.Debug("lane", "from", s.Motorcycle.Lane, "to", lane)
		s.Motorcycle.Lane = lane
		rep.LaneChanged = true
	}

	// World motion uses the speed held at the start of the tick
	speed := s.Motorcycle.Speed

	// Progression
	prog := progression.Step(progression.Input{
		Motorcycle: s.Motorcycle,
		Stats:      s.Stats,
		Turbo:      s.Effects.IsActive(entity.PowerUpTurbo),
		DT:         dt,
		Physics:    m.cfg.Physics,
		Difficulty: m.diff,
	})
	s.Motorcycle.Speed = prog.Speed
	s.Motorcycle.Position.X = prog.PositionX
	s.Motorcycle.Health = prog.Health
	s.Stats.Distance = prog.Distance
	s.Stats.Score = prog.Score
	s.Stats.ScoreCarry = prog.ScoreCarry
	if prog.Level > s.Stats.Level {
		m.log.Debug("level up", "level", prog.Level, "distance", int(prog.Distance))
		rep.LevelUp = true
	}
	s.Stats.Level = prog.Level

	// Obstacles and pickups
	s.Obstacles = m.obst.Advance(s.Obstacles, speed, dt)
	s.Pickups = m.pickup.Advance(s.Pickups, speed, dt, m.cfg.Obstacles.AdvanceScale)

	// Collision
	hit := collision.Resolve(collision.Input{
		Motorcycle: s.Motorcycle,
		Obstacles:  s.Obstacles,
		Shield:     s.Effects.IsActive(entity.PowerUpShield),
		Lives:      s.Stats.Lives,
		Score:      s.Stats.Score,
		Config:     m.cfg.Collision,
	})
	for _, i := range hit.Hit {
		s.Obstacles[i].Active = false
		s.Obstacles[i].Cooldown = m.cfg.Collision.HitCooldown()
	}
	for _, i := range hit.Deflected {
		s.Obstacles[i].Deflected = m.cfg.Collision.HitCooldown()
	}
	s.Motorcycle.Health = hit.Health
	s.Stats.Lives = hit.Lives
	s.Stats.Score += hit.ScoreDelta
	rep.Hits = hit.Hits()
	rep.Deflections = len(hit.Deflected)
	rep.LifeLost = hit.LifeLost
	if hit.LifeLost {
		m.log.Debug("life lost", "lives", hit.Lives)
	}

	// Power-ups: running effects count down before new ones start
	s.Effects = powerup.Tick(s.Effects, dt)
	got := powerup.Collect(powerup.CollectInput{
		Motorcycle: s.Motorcycle,
		Pickups:    s.Pickups,
		Magnet:     s.Effects.IsActive(entity.PowerUpMagnet),
		Config:     m.cfg.PowerUps,
	})
	for n, i := range got.Collected {
		s.Pickups[i].Collected = true
		s.Pickups[i].Cooldown = m.cfg.PowerUps.CollectCooldown()
		t := got.Activated[n]
		s.Effects = powerup.Activate(s.Effects, t, m.cfg.PowerUps.EffectDuration(t))
	}
	s.Stats.Coins += got.Coins
	s.Stats.Score += got.Score
	rep.Collected = got.Activated

	m.clampInvariants()
	s.Tick++

	// Terminal condition
	if s.Stats.Lives <= 0 {
		rep.GameOver = true
		m.transition(entity.StateGameOver)
		m.syncGesture()
		m.endRun(EndCrashed)
	}
	return rep
}

// clampInvariants keeps every numeric field inside its allowed range.
func (m *Machine) clampInvariants() {
	s := &m.s
	s.Motorcycle.Health = core.ClampF(s.Motorcycle.Health, entity.MinHealth, entity.MaxHealth)
	s.Motorcycle.Lane = entity.ClampLane(int(s.Motorcycle.Lane))
	s.Stats.Score = core.Max(s.Stats.Score, 0)
	s.Stats.Coins = core.Max(s.Stats.Coins, 0)
	s.Stats.Lives = core.Max(s.Stats.Lives, 0)
	s.Stats.Level = core.Max(s.Stats.Level, 1)
}
