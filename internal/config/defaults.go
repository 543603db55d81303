package config

import (
	_ "embed"
)

//go:embed defaults/motorush.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded ride configuration.
// It mirrors defaults/motorush.yaml and backs the loader when the embed is unusable.
func DefaultConfig() Config {
	return Config{
		Physics: Physics{
			InitialSpeed:     10,
			BaseAccel:        0.05,
			AccelPerLevel:    0.1,
			BaseMaxSpeed:     30,
			MaxSpeedPerLevel: 2,
			DistanceScale:    0.1,
			ScoreScale:       10,
			LevelDistance:    500,
			HealthRegen:      0.1,
			LaneSmoothing:    0.15,
			HandlingSmooth:   0.02,
			MaxSmoothing:     0.5,
			EngineAccel:      0.05,
			EngineMaxSpeed:   2,
			TurboMultiplier:  1.5,
		},
		Obstacles: Obstacles{
			PoolSize:        20,
			StartZ:          50,
			Spacing:         20,
			Jitter:          30,
			PassedZ:         -20,
			RespawnGap:      20,
			RespawnJitter:   30,
			RespawnFloorZ:   100,
			RespawnFloorJit: 50,
			RespawnFloorMin: 50,
			AdvanceScale:    6, // 0.1 per frame at 60fps
		},
		Collision: Collision{
			Policy:        PolicyLane,
			HitDistance:   1.0,
			Damage:        5,
			ScorePenalty:  10,
			ShieldBonus:   50,
			HitCooldownMS: 3000,
			RiderHalfX:    0.4,
			RiderHalfY:    0.5,
			RiderHalfZ:    0.6,
			ArmorPerLevel: 0.05,
			MinDamageRate: 0.5,
		},
		PowerUps: PowerUps{
			PoolSize:          10,
			StartZ:            30,
			Spacing:           25,
			Jitter:            100,
			PassedZ:           -20,
			RespawnGap:        25,
			RespawnJitter:     100,
			PickupRadius:      1.5,
			MagnetRadiusScale: 2,
			Coins:             25,
			Score:             200,
			CollectCooldownMS: 2000,
			ShieldMS:          10000,
			TurboMS:           5000,
			MagnetMS:          15000,
		},
		Input: Input{
			SwipeThreshold:     50,
			SwipeDebounceMS:    200,
			GestureConfidence:  0.6,
			GestureDebounceMS:  300,
			TouchPixelsPerCell: 10,
		},
		Garage: Garage{
			EngineCost:     100,
			HandlingCost:   50,
			DurabilityCost: 75,
		},
		Difficulty: DifficultyConfig{
			Default: "normal",
			Easy:    0.8,
			Normal:  1.0,
			Hard:    1.2,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
