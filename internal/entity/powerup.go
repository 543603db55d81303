package entity

import "time"

// PowerUpType is the closed set of collectible effects.
type PowerUpType int

const (
	PowerUpShield PowerUpType = iota
	PowerUpTurbo
	PowerUpMagnet
	PowerUpTypeCount // Sentinel for counting types
)

// String returns the name of the power-up type.
func (p PowerUpType) String() string {
	switch p {
	case PowerUpShield:
		return "shield"
	case PowerUpTurbo:
		return "turbo"
	case PowerUpMagnet:
		return "magnet"
	default:
		return "unknown"
	}
}

// Pickup is a world power-up the rider can drive through.
// Pickups are pool-managed like obstacles.
type Pickup struct {
	ID        int
	Type      PowerUpType
	Lane      Lane
	Z         float64
	PrevZ     float64
	Collected bool
	// Cooldown counts down while the pickup is hidden after collection.
	Cooldown time.Duration
}

// Effect is the rider-side record of a power-up's ongoing benefit.
// Remaining never increases while Active, except on re-activation.
type Effect struct {
	Type      PowerUpType
	Remaining time.Duration
	Active    bool
}

// Effects holds one record per power-up type.
type Effects [PowerUpTypeCount]Effect

// NewEffects returns all effects inactive.
func NewEffects() Effects {
	var e Effects
	for i := range e {
		e[i] = Effect{Type: PowerUpType(i)}
	}
	return e
}

// IsActive reports whether the given effect is running.
func (e Effects) IsActive(t PowerUpType) bool {
	if t < 0 || t >= PowerUpTypeCount {
		return false
	}
	return e[t].Active
}
