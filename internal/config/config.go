// Package config provides YAML-based ride configuration loading and
// difficulty scaling for the simulation engines.
package config

import "time"

// Config contains all tunables of a ride.
type Config struct {
	Physics    Physics          `yaml:"physics"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Collision  Collision        `yaml:"collision"`
	PowerUps   PowerUps         `yaml:"powerups"`
	Input      Input            `yaml:"input"`
	Garage     Garage           `yaml:"garage"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines speed, distance and health progression.
// Accel and max speed are per frame at the reference rate of 60 frames per second.
type Physics struct {
	InitialSpeed     float64 `yaml:"initial_speed"`
	BaseAccel        float64 `yaml:"base_accel"`
	AccelPerLevel    float64 `yaml:"accel_per_level"`
	BaseMaxSpeed     float64 `yaml:"base_max_speed"`
	MaxSpeedPerLevel float64 `yaml:"max_speed_per_level"`
	DistanceScale    float64 `yaml:"distance_scale"`
	ScoreScale       float64 `yaml:"score_scale"`
	LevelDistance    float64 `yaml:"level_distance"`
	HealthRegen      float64 `yaml:"health_regen"`
	LaneSmoothing    float64 `yaml:"lane_smoothing"`
	HandlingSmooth   float64 `yaml:"handling_smoothing"`
	MaxSmoothing     float64 `yaml:"max_smoothing"`
	EngineAccel      float64 `yaml:"engine_accel"`
	EngineMaxSpeed   float64 `yaml:"engine_max_speed"`
	TurboMultiplier  float64 `yaml:"turbo_multiplier"`
}

// Obstacles defines the obstacle pool layout and recycling.
// Slots behind PassedZ are respawned RespawnGap past the farthest obstacle,
// or at RespawnFloorZ when no obstacle is beyond RespawnFloorMin.
type Obstacles struct {
	PoolSize        int     `yaml:"pool_size"`
	StartZ          float64 `yaml:"start_z"`
	Spacing         float64 `yaml:"spacing"`
	Jitter          float64 `yaml:"jitter"`
	PassedZ         float64 `yaml:"passed_z"`
	RespawnGap      float64 `yaml:"respawn_gap"`
	RespawnJitter   float64 `yaml:"respawn_jitter"`
	RespawnFloorZ   float64 `yaml:"respawn_floor_z"`
	RespawnFloorJit float64 `yaml:"respawn_floor_jitter"`
	RespawnFloorMin float64 `yaml:"respawn_floor_min"`
	AdvanceScale    float64 `yaml:"advance_scale"`
}

// Collision defines the hit policy and damage rules.
type Collision struct {
	Policy        string  `yaml:"policy"`
	HitDistance   float64 `yaml:"hit_distance"`
	Damage        float64 `yaml:"damage"`
	ScorePenalty  int     `yaml:"score_penalty"`
	ShieldBonus   int     `yaml:"shield_bonus"`
	HitCooldownMS int     `yaml:"hit_cooldown_ms"`
	RiderHalfX    float64 `yaml:"rider_half_x"`
	RiderHalfY    float64 `yaml:"rider_half_y"`
	RiderHalfZ    float64 `yaml:"rider_half_z"`
	ArmorPerLevel float64 `yaml:"armor_per_level"`
	MinDamageRate float64 `yaml:"min_damage_rate"`
}

// PowerUps defines pickups and effect durations.
type PowerUps struct {
	PoolSize          int     `yaml:"pool_size"`
	StartZ            float64 `yaml:"start_z"`
	Spacing           float64 `yaml:"spacing"`
	Jitter            float64 `yaml:"jitter"`
	PassedZ           float64 `yaml:"passed_z"`
	RespawnGap        float64 `yaml:"respawn_gap"`
	RespawnJitter     float64 `yaml:"respawn_jitter"`
	PickupRadius      float64 `yaml:"pickup_radius"`
	MagnetRadiusScale float64 `yaml:"magnet_radius_scale"`
	Coins             int     `yaml:"coins"`
	Score             int     `yaml:"score"`
	CollectCooldownMS int     `yaml:"collect_cooldown_ms"`
	ShieldMS          int     `yaml:"shield_ms"`
	TurboMS           int     `yaml:"turbo_ms"`
	MagnetMS          int     `yaml:"magnet_ms"`
}

// Input defines swipe and gesture gating.
type Input struct {
	SwipeThreshold     float64 `yaml:"swipe_threshold"`
	SwipeDebounceMS    int     `yaml:"swipe_debounce_ms"`
	GestureConfidence  float64 `yaml:"gesture_confidence"`
	GestureDebounceMS  int     `yaml:"gesture_debounce_ms"`
	TouchPixelsPerCell float64 `yaml:"touch_pixels_per_cell"`
}

// Garage defines upgrade pricing. The price of a level is the target level
// times the per-kind cost.
type Garage struct {
	EngineCost     int `yaml:"engine_cost"`
	HandlingCost   int `yaml:"handling_cost"`
	DurabilityCost int `yaml:"durability_cost"`
}

// DifficultyConfig defines the preset multipliers.
type DifficultyConfig struct {
	Default string  `yaml:"default"`
	Easy    float64 `yaml:"easy"`
	Normal  float64 `yaml:"normal"`
	Hard    float64 `yaml:"hard"`
}

// Collision policies.
const (
	PolicyLane = "lane"
	PolicyAABB = "aabb"
)

// ms converts a millisecond count from YAML into a duration.
func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

// HitCooldown returns how long a hit obstacle stays inactive.
func (c Collision) HitCooldown() time.Duration { return ms(c.HitCooldownMS) }

// CollectCooldown returns how long a collected pickup stays hidden.
func (p PowerUps) CollectCooldown() time.Duration { return ms(p.CollectCooldownMS) }

// SwipeDebounce returns the minimum gap between accepted swipes.
func (i Input) SwipeDebounce() time.Duration { return ms(i.SwipeDebounceMS) }

// GestureDebounce returns the minimum gap between accepted classifications.
func (i Input) GestureDebounce() time.Duration { return ms(i.GestureDebounceMS) }
