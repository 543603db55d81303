// Package sim drives a session machine without a terminal, feeding it input
// from a scripted pilot. It is used for headless runs and for checking that
// a seed always replays the same ride.
package sim

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/input"
	"github.com/vovakirdan/motorush/internal/session"
)

// Pilot decides the key to press before a tick. KeyOther presses nothing.
type Pilot interface {
	Steer(s entity.GameSession) input.Key
}

// Idle never changes lane.
type Idle struct{}

// Steer implements Pilot.
func (Idle) Steer(entity.GameSession) input.Key { return input.KeyOther }

// Random presses left or right with a fixed chance per tick.
type Random struct {
	rng    *rand.Rand
	chance float64
}

// NewRandom returns a seeded random pilot.
func NewRandom(seed int64, chance float64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed)), chance: chance}
}

// Steer implements Pilot.
func (r *Random) Steer(entity.GameSession) input.Key {
	if r.rng.Float64() >= r.chance {
		return input.KeyOther
	}
	if r.rng.Intn(2) == 0 {
		return input.KeyLeft
	}
	return input.KeyRight
}

// Auto dodges the nearest obstacle ahead in its lane, moving to the
// neighbouring lane with the most room.
type Auto struct {
	// Lookahead is how far ahead (world z) obstacles are considered.
	Lookahead float64
}

// Steer implements Pilot.
func (a Auto) Steer(s entity.GameSession) input.Key {
	look := a.Lookahead
	if look <= 0 {
		look = 40
	}
	lane := s.Motorcycle.Lane
	if nearest(s.Obstacles, lane, look) >= look {
		return input.KeyOther
	}

	best, bestGap := lane, 0.0
	for _, l := range []entity.Lane{lane - 1, lane + 1} {
		if l < entity.LaneLeft || l > entity.LaneRight {
			continue
		}
		if gap := nearest(s.Obstacles, l, look); gap > bestGap {
			best, bestGap = l, gap
		}
	}
	switch {
	case best < lane:
		return input.KeyLeft
	case best > lane:
		return input.KeyRight
	default:
		return input.KeyOther
	}
}

// nearest returns the z of the closest collidable obstacle ahead in a lane,
// or limit when there is none closer.
func nearest(obstacles []entity.Obstacle, lane entity.Lane, limit float64) float64 {
	z := limit
	for _, o := range obstacles {
		if o.Lane == lane && o.Collidable() && o.Z > -1 && o.Z < z {
			z = o.Z
		}
	}
	return z
}

// PilotByName returns a pilot: "auto", "random" or "idle".
func PilotByName(name string, seed int64) (Pilot, error) {
	switch name {
	case "auto", "":
		return Auto{}, nil
	case "random":
		return NewRandom(seed, 0.02), nil
	case "idle":
		return Idle{}, nil
	default:
		return nil, fmt.Errorf("sim: unknown pilot %q", name)
	}
}

// Options configure a headless run.
type Options struct {
	Ticks    int // Upper bound on ticks; the run also stops at game over
	TickRate int
	Pilot    Pilot
	Logger   *log.Logger
}

// Summary is the outcome of a headless run.
type Summary struct {
	Seed        int64
	Difficulty  entity.Difficulty
	Ticks       int
	SimTime     time.Duration
	Score       int
	Coins       int
	Distance    float64
	Level       int
	Lives       int
	Health      float64
	Speed       float64
	Hits        int
	Deflections int
	Pickups     int
	LaneChanges int
	GameOver    bool
}

// Run starts a ride on the machine and ticks it until game over or the tick
// budget is spent. The machine must be in the menu state.
func Run(m *session.Machine, opts Options) (Summary, error) {
	rate := opts.TickRate
	if rate <= 0 {
		rate = 60
	}
	pilot := opts.Pilot
	if pilot == nil {
		pilot = Auto{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	dt := time.Second / time.Duration(rate)

	if err := m.Start(); err != nil {
		return Summary{}, err
	}

	var sum Summary
	for sum.Ticks < opts.Ticks {
		if k := pilot.Steer(m.Snapshot()); k != input.KeyOther {
			m.Input().Submit(input.SourceKeyboard, input.KeyEvent{Key: k})
		}

		rep := m.Tick(dt)
		sum.Ticks++
		sum.Hits += rep.Hits
		sum.Deflections += rep.Deflections
		sum.Pickups += len(rep.Collected)
		if rep.LaneChanged {
			sum.LaneChanges++
		}
		if rep.LevelUp {
			logger.Debug("level up", "tick", sum.Ticks, "level", m.Snapshot().Stats.Level)
		}
		if rep.GameOver {
			sum.GameOver = true
			break
		}
	}

	s := m.Snapshot()
	sum.Seed = m.Seed()
	sum.Difficulty = s.Difficulty
	sum.SimTime = time.Duration(sum.Ticks) * dt
	sum.Score = s.Stats.Score
	sum.Coins = s.Stats.Coins
	sum.Distance = s.Stats.Distance
	sum.Level = s.Stats.Level
	sum.Lives = s.Stats.Lives
	sum.Health = s.Motorcycle.Health
	sum.Speed = s.Motorcycle.Speed
	return sum, nil
}
