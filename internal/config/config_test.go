package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/motorush/internal/entity"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded config differs from DefaultConfig:\n got %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ride.yaml")
	data := []byte("obstacles:\n  pool_size: 12\ncollision:\n  policy: aabb\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Obstacles.PoolSize != 12 {
		t.Errorf("PoolSize = %d, want 12", cfg.Obstacles.PoolSize)
	}
	if cfg.Collision.Policy != PolicyAABB {
		t.Errorf("Policy = %q, want %q", cfg.Collision.Policy, PolicyAABB)
	}
	// Untouched keys keep their defaults
	if cfg.Physics.InitialSpeed != 10 {
		t.Errorf("InitialSpeed = %v, want 10", cfg.Physics.InitialSpeed)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestNormalizeClampsPools(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{"too small", 2, MinObstaclePool},
		{"in range", 15, 15},
		{"too large", 500, MaxObstaclePool},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Obstacles.PoolSize = tt.in
			cfg.Normalize()
			if cfg.Obstacles.PoolSize != tt.want {
				t.Errorf("PoolSize = %d, want %d", cfg.Obstacles.PoolSize, tt.want)
			}
		})
	}
}

func TestNormalizeUnknownPolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Collision.Policy = "sphere"
	cfg.Difficulty.Default = "nightmare"
	cfg.Normalize()
	if cfg.Collision.Policy != PolicyLane {
		t.Errorf("Policy = %q, want %q", cfg.Collision.Policy, PolicyLane)
	}
	if cfg.Difficulty.Default != "normal" {
		t.Errorf("Default difficulty = %q, want normal", cfg.Difficulty.Default)
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultConfig()
	dm := NewDifficultyManager(cfg.Physics, cfg.Difficulty, entity.DifficultyNormal)

	// Level 1, stock engine: 0.05 * 1.0 * 1.1
	if got := dm.Accel(1, 1); !approx(got, 0.055) {
		t.Errorf("Accel(1,1) = %v, want 0.055", got)
	}
	// 30 * 1.0 + 1*2
	if got := dm.MaxSpeed(1, 1); !approx(got, 32) {
		t.Errorf("MaxSpeed(1,1) = %v, want 32", got)
	}

	dm.SetPreset(entity.DifficultyHard)
	if got := dm.MaxSpeed(1, 1); !approx(got, 38) {
		t.Errorf("hard MaxSpeed(1,1) = %v, want 38", got)
	}
	// Engine level 3 adds two levels of bonus
	if got := dm.MaxSpeed(1, 3); !approx(got, 42) {
		t.Errorf("hard MaxSpeed(1,3) = %v, want 42", got)
	}

	dm.SetPreset(entity.DifficultyEasy)
	if got := dm.Multiplier(); !approx(got, 0.8) {
		t.Errorf("easy Multiplier = %v, want 0.8", got)
	}
}

func TestLaneSmoothingCapped(t *testing.T) {
	cfg := DefaultConfig()
	dm := NewDifficultyManager(cfg.Physics, cfg.Difficulty, entity.DifficultyNormal)

	if got := dm.LaneSmoothing(1); !approx(got, 0.15) {
		t.Errorf("LaneSmoothing(1) = %v, want 0.15", got)
	}
	if got := dm.LaneSmoothing(10); !approx(got, 0.33) {
		t.Errorf("LaneSmoothing(10) = %v, want 0.33", got)
	}
	if got := dm.LaneSmoothing(1000); got > cfg.Physics.MaxSmoothing {
		t.Errorf("LaneSmoothing(1000) = %v, exceeds cap %v", got, cfg.Physics.MaxSmoothing)
	}
}

func TestDamageRate(t *testing.T) {
	c := DefaultConfig().Collision
	if got := c.DamageRate(1); !approx(got, 1) {
		t.Errorf("DamageRate(1) = %v, want 1", got)
	}
	if got := c.DamageRate(5); !approx(got, 0.8) {
		t.Errorf("DamageRate(5) = %v, want 0.8", got)
	}
	if got := c.DamageRate(10); !approx(got, 0.55) {
		t.Errorf("DamageRate(10) = %v, want 0.55", got)
	}
}

func TestUpgradeCost(t *testing.T) {
	g := DefaultConfig().Garage
	if got := g.UpgradeCost(entity.UpgradeEngine, 2); got != 200 {
		t.Errorf("engine level 2 cost = %d, want 200", got)
	}
	if got := g.UpgradeCost(entity.UpgradeDurability, 3); got != 225 {
		t.Errorf("durability level 3 cost = %d, want 225", got)
	}
}
