package collision

import (
	"testing"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
)

func rider() entity.Motorcycle {
	return entity.NewMotorcycle(entity.BaseUpgrades())
}

func obstacleAt(lane entity.Lane, prevZ, z float64) entity.Obstacle {
	return entity.Obstacle{Type: entity.ObstacleCar, Lane: lane, PrevZ: prevZ, Z: z, Active: true}
}

func TestLanePolicyOverlap(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	m := rider()

	tests := []struct {
		name string
		o    entity.Obstacle
		want bool
	}{
		{"same lane close", obstacleAt(entity.LaneCenter, 0.5, 0.5), true},
		{"same lane far", obstacleAt(entity.LaneCenter, 5, 4), false},
		{"other lane", obstacleAt(entity.LaneLeft, 0.2, 0.2), false},
		{"tunnelled through rider", obstacleAt(entity.LaneCenter, 3, -3), true},
		{"exactly at threshold", obstacleAt(entity.LaneCenter, 1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(cfg, m, tt.o); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBPolicyOverlap(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	cfg.Policy = config.PolicyAABB
	m := rider()

	// Car half Z is 1.5, rider half Z 0.6
	if !Overlaps(cfg, m, obstacleAt(entity.LaneCenter, 2.0, 2.0)) {
		t.Error("car at z=2.0 should overlap the rider box")
	}
	if Overlaps(cfg, m, obstacleAt(entity.LaneCenter, 2.2, 2.2)) {
		t.Error("car at z=2.2 should miss the rider box")
	}
	// Rider eased halfway to the left lane: boxes overlap on X
	m.Position.X = -1.5
	if !Overlaps(cfg, m, obstacleAt(entity.LaneLeft, 0, 0)) {
		t.Error("rider drifting into the left lane should hit a left-lane car")
	}
}

func TestUnshieldedHit(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	in := Input{
		Motorcycle: rider(),
		Obstacles:  []entity.Obstacle{obstacleAt(entity.LaneCenter, 0.5, 0)},
		Lives:      3,
		Score:      100,
		Config:     cfg,
	}

	out := Resolve(in)

	if out.Health != 95 {
		t.Errorf("Health = %v, want 95", out.Health)
	}
	if out.ScoreDelta != -10 {
		t.Errorf("ScoreDelta = %d, want -10", out.ScoreDelta)
	}
	if out.Hits() != 1 || out.Hit[0] != 0 {
		t.Errorf("Hit = %v, want [0]", out.Hit)
	}
	if out.LifeLost || out.GameOver {
		t.Error("single hit should not cost a life")
	}
}

func TestPenaltyFlooredAtZero(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	in := Input{
		Motorcycle: rider(),
		Obstacles:  []entity.Obstacle{obstacleAt(entity.LaneCenter, 0, 0)},
		Lives:      3,
		Score:      4,
		Config:     cfg,
	}
	if out := Resolve(in); in.Score+out.ScoreDelta != 0 {
		t.Errorf("score after hit = %d, want 0", in.Score+out.ScoreDelta)
	}
}

func TestShieldedHit(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	in := Input{
		Motorcycle: rider(),
		Obstacles:  []entity.Obstacle{obstacleAt(entity.LaneCenter, 0, 0)},
		Shield:     true,
		Lives:      3,
		Config:     cfg,
	}

	out := Resolve(in)

	if out.Health != 100 {
		t.Errorf("Health = %v, want 100", out.Health)
	}
	if out.ScoreDelta != 50 {
		t.Errorf("ScoreDelta = %d, want 50", out.ScoreDelta)
	}
	if len(out.Deflected) != 1 || out.Hits() != 0 {
		t.Errorf("Deflected = %v, Hit = %v; want one deflection and no hits", out.Deflected, out.Hit)
	}
}

func TestInactiveAndDeflectedIgnored(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	inactive := obstacleAt(entity.LaneCenter, 0, 0)
	inactive.Active = false
	deflected := obstacleAt(entity.LaneCenter, 0, 0)
	deflected.Deflected = 1

	out := Resolve(Input{
		Motorcycle: rider(),
		Obstacles:  []entity.Obstacle{inactive, deflected},
		Lives:      3,
		Config:     cfg,
	})
	if out.Hits() != 0 || len(out.Deflected) != 0 || out.ScoreDelta != 0 {
		t.Errorf("outcome = %+v, want no contact", out)
	}
}

func TestLifeLostResetsHealth(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	m := rider()
	m.Health = 3

	out := Resolve(Input{
		Motorcycle: m,
		Obstacles:  []entity.Obstacle{obstacleAt(entity.LaneCenter, 0, 0)},
		Lives:      3,
		Config:     cfg,
	})

	if !out.LifeLost || out.Lives != 2 {
		t.Errorf("LifeLost = %v, Lives = %d; want true, 2", out.LifeLost, out.Lives)
	}
	if out.Health != entity.MaxHealth {
		t.Errorf("Health = %v, want reset to %v", out.Health, entity.MaxHealth)
	}
	if out.GameOver {
		t.Error("should not be game over with lives left")
	}
}

func TestLastLifeEndsGame(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	m := rider()
	m.Health = 5

	out := Resolve(Input{
		Motorcycle: m,
		Obstacles: []entity.Obstacle{
			obstacleAt(entity.LaneCenter, 0, 0),
			obstacleAt(entity.LaneCenter, 0.3, 0.3),
		},
		Lives:  1,
		Config: cfg,
	})

	if !out.GameOver || out.Lives != 0 {
		t.Errorf("GameOver = %v, Lives = %d; want true, 0", out.GameOver, out.Lives)
	}
	if out.Hits() != 1 {
		t.Errorf("Hits() = %d, want 1 (processing stops at game over)", out.Hits())
	}
}

func TestDurabilityReducesDamage(t *testing.T) {
	cfg := config.DefaultConfig().Collision
	m := rider()
	m.Upgrades.Durability = 5

	out := Resolve(Input{
		Motorcycle: m,
		Obstacles:  []entity.Obstacle{obstacleAt(entity.LaneCenter, 0, 0)},
		Lives:      3,
		Config:     cfg,
	})
	if want := 100 - 5*0.8; out.Health != want {
		t.Errorf("Health = %v, want %v", out.Health, want)
	}
}
