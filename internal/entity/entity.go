// Package entity defines the plain data records of a ride: the motorcycle,
// obstacles, power-ups, stats and the session snapshot that owns them.
// Nothing here mutates state on its own; the session machine is the only writer.
package entity

import "github.com/vovakirdan/motorush/internal/core"

// Lane is one of the three discrete road positions.
type Lane int

const (
	LaneLeft   Lane = 0
	LaneCenter Lane = 1
	LaneRight  Lane = 2

	LaneCount = 3
)

// laneOffsets are the canonical x offsets of each lane in world units.
var laneOffsets = [LaneCount]float64{-2.67, 0, 2.67}

// ClampLane restricts any integer to a valid lane index.
func ClampLane(n int) Lane {
	return Lane(core.Clamp(n, int(LaneLeft), int(LaneRight)))
}

// X returns the canonical x offset of the lane. Invalid lanes are clamped first.
func (l Lane) X() float64 {
	return laneOffsets[ClampLane(int(l))]
}

// String returns a short lane name.
func (l Lane) String() string {
	switch l {
	case LaneLeft:
		return "left"
	case LaneCenter:
		return "center"
	case LaneRight:
		return "right"
	default:
		return "invalid"
	}
}

// Health bounds.
const (
	MinHealth = 0.0
	MaxHealth = 100.0
)

// Upgrade levels are small positive integers capped at MaxUpgradeLevel.
const (
	MinUpgradeLevel = 1
	MaxUpgradeLevel = 10
)

// UpgradeKind names one upgradable motorcycle part.
type UpgradeKind int

const (
	UpgradeEngine UpgradeKind = iota
	UpgradeHandling
	UpgradeDurability
)

// String returns the part name.
func (k UpgradeKind) String() string {
	switch k {
	case UpgradeEngine:
		return "engine"
	case UpgradeHandling:
		return "handling"
	case UpgradeDurability:
		return "durability"
	default:
		return "unknown"
	}
}

// Upgrades holds the purchased level of each part.
type Upgrades struct {
	Engine     int `yaml:"engine" json:"engine"`
	Handling   int `yaml:"handling" json:"handling"`
	Durability int `yaml:"durability" json:"durability"`
}

// BaseUpgrades returns level 1 for every part.
func BaseUpgrades() Upgrades {
	return Upgrades{Engine: 1, Handling: 1, Durability: 1}
}

// Level returns the level of the given part.
func (u Upgrades) Level(k UpgradeKind) int {
	switch k {
	case UpgradeEngine:
		return u.Engine
	case UpgradeHandling:
		return u.Handling
	case UpgradeDurability:
		return u.Durability
	default:
		return 0
	}
}

// With returns a copy with the given part set to level (clamped).
func (u Upgrades) With(k UpgradeKind, level int) Upgrades {
	level = core.Clamp(level, MinUpgradeLevel, MaxUpgradeLevel)
	switch k {
	case UpgradeEngine:
		u.Engine = level
	case UpgradeHandling:
		u.Handling = level
	case UpgradeDurability:
		u.Durability = level
	}
	return u
}

// Normalized clamps every part into the valid range.
func (u Upgrades) Normalized() Upgrades {
	return Upgrades{
		Engine:     core.Clamp(u.Engine, MinUpgradeLevel, MaxUpgradeLevel),
		Handling:   core.Clamp(u.Handling, MinUpgradeLevel, MaxUpgradeLevel),
		Durability: core.Clamp(u.Durability, MinUpgradeLevel, MaxUpgradeLevel),
	}
}

// Motorcycle is the player vehicle.
// Lane is authoritative; Position.X only eases toward Lane.X() for rendering.
type Motorcycle struct {
	Lane     Lane
	Position core.Vec3
	Speed    float64
	Health   float64
	Upgrades Upgrades
}

// NewMotorcycle returns the motorcycle as it starts a run.
func NewMotorcycle(u Upgrades) Motorcycle {
	return Motorcycle{
		Lane:     LaneCenter,
		Position: core.Vec3{X: LaneCenter.X(), Y: 1, Z: 0},
		Speed:    10,
		Health:   MaxHealth,
		Upgrades: u.Normalized(),
	}
}

// GameStats are the per-run counters shown in the HUD.
type GameStats struct {
	Score    int
	Coins    int
	Distance float64
	Level    int
	Lives    int

	// ScoreCarry is the fractional distance score not yet paid out.
	ScoreCarry float64
}

// StartingLives is the number of lives a run begins with.
const StartingLives = 3

// NewGameStats returns the counters at the start of a run.
func NewGameStats() GameStats {
	return GameStats{
		Score:    0,
		Coins:    0,
		Distance: 0,
		Level:    1,
		Lives:    StartingLives,
	}
}
