package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
)

const configFile = "motorush.yaml"

// Pool size bounds.
const (
	MinObstaclePool = 8
	MaxObstaclePool = 20
	MinPickupPool   = 1
	MaxPickupPool   = 20
)

// Load loads the ride configuration.
// Search order: customPath -> ~/.motorush/configs/motorush.yaml -> ./configs/motorush.yaml -> embedded default
// Keys missing from a file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and normalizes the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps values that would break the engines into usable ranges.
func (c *Config) Normalize() {
	def := DefaultConfig()

	c.Obstacles.PoolSize = core.Clamp(c.Obstacles.PoolSize, MinObstaclePool, MaxObstaclePool)
	c.PowerUps.PoolSize = core.Clamp(c.PowerUps.PoolSize, MinPickupPool, MaxPickupPool)

	if c.Collision.Policy != PolicyLane && c.Collision.Policy != PolicyAABB {
		c.Collision.Policy = PolicyLane
	}
	if c.Collision.HitDistance <= 0 {
		c.Collision.HitDistance = def.Collision.HitDistance
	}
	if c.Collision.Damage < 0 {
		c.Collision.Damage = 0
	}
	c.Collision.ScorePenalty = core.Max(c.Collision.ScorePenalty, 0)
	c.Collision.ShieldBonus = core.Max(c.Collision.ShieldBonus, 0)
	c.Collision.HitCooldownMS = core.Max(c.Collision.HitCooldownMS, 0)
	c.Collision.MinDamageRate = core.ClampF(c.Collision.MinDamageRate, 0, 1)
	c.Collision.ArmorPerLevel = core.ClampF(c.Collision.ArmorPerLevel, 0, 1)

	if c.Physics.LevelDistance <= 0 {
		c.Physics.LevelDistance = def.Physics.LevelDistance
	}
	if c.Physics.TurboMultiplier < 1 {
		c.Physics.TurboMultiplier = 1
	}
	c.Physics.LaneSmoothing = core.ClampF(c.Physics.LaneSmoothing, 0, 1)
	c.Physics.MaxSmoothing = core.ClampF(c.Physics.MaxSmoothing, c.Physics.LaneSmoothing, 1)

	if c.Obstacles.AdvanceScale <= 0 {
		c.Obstacles.AdvanceScale = def.Obstacles.AdvanceScale
	}
	if c.PowerUps.PickupRadius <= 0 {
		c.PowerUps.PickupRadius = def.PowerUps.PickupRadius
	}
	if c.PowerUps.MagnetRadiusScale < 1 {
		c.PowerUps.MagnetRadiusScale = 1
	}

	c.Input.GestureConfidence = core.ClampF(c.Input.GestureConfidence, 0, 1)
	if c.Input.TouchPixelsPerCell <= 0 {
		c.Input.TouchPixelsPerCell = def.Input.TouchPixelsPerCell
	}

	if _, ok := entity.ParseDifficulty(c.Difficulty.Default); !ok {
		c.Difficulty.Default = def.Difficulty.Default
	}
}

// EffectDuration returns the active time granted by a power-up.
func (p PowerUps) EffectDuration(t entity.PowerUpType) time.Duration {
	switch t {
	case entity.PowerUpShield:
		return ms(p.ShieldMS)
	case entity.PowerUpTurbo:
		return ms(p.TurboMS)
	case entity.PowerUpMagnet:
		return ms(p.MagnetMS)
	default:
		return 0
	}
}

// UpgradeCost returns the price of raising a part to the given level.
func (g Garage) UpgradeCost(k entity.UpgradeKind, level int) int {
	switch k {
	case entity.UpgradeEngine:
		return level * g.EngineCost
	case entity.UpgradeHandling:
		return level * g.HandlingCost
	case entity.UpgradeDurability:
		return level * g.DurabilityCost
	default:
		return 0
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".motorush", "configs", filename)
}
