package entity

import (
	"time"

	"github.com/vovakirdan/motorush/internal/core"
)

// ObstacleType is the closed set of road obstacles.
type ObstacleType int

const (
	ObstacleCar ObstacleType = iota
	ObstacleCone
	ObstacleTruck
	ObstaclePothole
	ObstacleTypeCount // Sentinel for counting types
)

// obstacleSpecs is the per-type dispatch table used by collision and the view.
var obstacleSpecs = [ObstacleTypeCount]struct {
	name string
	half core.Vec3
}{
	ObstacleCar:     {name: "car", half: core.Vec3{X: 0.9, Y: 0.6, Z: 1.5}},
	ObstacleCone:    {name: "cone", half: core.Vec3{X: 0.5, Y: 0.8, Z: 0.5}},
	ObstacleTruck:   {name: "truck", half: core.Vec3{X: 1.1, Y: 0.9, Z: 2.0}},
	ObstaclePothole: {name: "pothole", half: core.Vec3{X: 0.8, Y: 0.1, Z: 0.8}},
}

// String returns the obstacle type name.
func (t ObstacleType) String() string {
	if t < 0 || t >= ObstacleTypeCount {
		return "unknown"
	}
	return obstacleSpecs[t].name
}

// HalfExtents returns the half-size of the obstacle's bounding volume.
func (t ObstacleType) HalfExtents() core.Vec3 {
	if t < 0 || t >= ObstacleTypeCount {
		return core.Vec3{X: 0.5, Y: 0.5, Z: 0.5}
	}
	return obstacleSpecs[t].half
}

// Obstacle is one recyclable slot of the obstacle pool.
// ID is stable for the lifetime of a session; the slot is reinitialized in
// place when it passes behind the rider.
type Obstacle struct {
	ID     int
	Type   ObstacleType
	Lane   Lane
	Z      float64 // Distance ahead of the rider (negative = behind)
	PrevZ  float64 // Z at the start of the last advance, for swept tests
	Active bool
	// Cooldown counts down while the obstacle is inactive after a hit.
	Cooldown time.Duration
	// Deflected counts down after a shielded hit so one overlap awards one bonus.
	Deflected time.Duration
}

// Collidable reports whether the obstacle can currently hit the rider.
func (o Obstacle) Collidable() bool {
	return o.Active && o.Deflected <= 0
}
