package progression

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
)

const frame = time.Second / 60

func newInput(diff entity.Difficulty) Input {
	cfg := config.DefaultConfig()
	return Input{
		Motorcycle: entity.NewMotorcycle(entity.BaseUpgrades()),
		Stats:      entity.NewGameStats(),
		DT:         frame,
		Physics:    cfg.Physics,
		Difficulty: config.NewDifficultyManager(cfg.Physics, cfg.Difficulty, diff),
	}
}

func TestDistanceOneSecond(t *testing.T) {
	in := newInput(entity.DifficultyEasy)
	in.DT = time.Second

	out := Step(in)

	want := 10 * 1.0 * in.Physics.DistanceScale
	if math.Abs(out.Distance-want) > 1e-9 {
		t.Errorf("Distance = %v, want %v", out.Distance, want)
	}
	if out.Score != 10 {
		t.Errorf("Score = %d, want 10", out.Score)
	}
}

func TestSpeedAcceleratesToCap(t *testing.T) {
	in := newInput(entity.DifficultyNormal)

	out := Step(in)
	// 0.05 * 1.0 * (1 + 0.1) per frame
	if math.Abs(out.Speed-10.055) > 1e-6 {
		t.Errorf("Speed after one frame = %v, want 10.055", out.Speed)
	}

	in.Motorcycle.Speed = 31.99
	out = Step(in)
	if out.Speed != 32 {
		t.Errorf("Speed = %v, want capped at 32", out.Speed)
	}
}

func TestHardIsFasterThanEasy(t *testing.T) {
	easy := Step(newInput(entity.DifficultyEasy))
	hard := Step(newInput(entity.DifficultyHard))
	if hard.Speed <= easy.Speed {
		t.Errorf("hard speed %v should exceed easy speed %v", hard.Speed, easy.Speed)
	}
}

func TestTurboBoostsDistance(t *testing.T) {
	in := newInput(entity.DifficultyNormal)
	plain := Step(in)
	in.Turbo = true
	boosted := Step(in)
	if ratio := boosted.Distance / plain.Distance; math.Abs(ratio-1.5) > 1e-9 {
		t.Errorf("turbo distance ratio = %v, want 1.5", ratio)
	}
}

func TestScoreCarryAccumulates(t *testing.T) {
	in := newInput(entity.DifficultyNormal)
	in.Motorcycle.Speed = 0.1 // too slow to score in a single frame
	in.Difficulty = config.NewDifficultyManager(config.Physics{}, config.DifficultyConfig{}, entity.DifficultyNormal)

	var score int
	for i := 0; i < 6000; i++ {
		out := Step(in)
		in.Stats.Score = out.Score
		in.Stats.ScoreCarry = out.ScoreCarry
		in.Stats.Distance = out.Distance
		score = out.Score
	}
	// 100 seconds at speed 0.1: distance 1, score 10
	if score < 9 || score > 10 {
		t.Errorf("Score = %d, want about 10", score)
	}
}

func TestLevelMonotonic(t *testing.T) {
	if got := LevelFor(550, 500); got != 2 {
		t.Errorf("LevelFor(550, 500) = %d, want 2", got)
	}

	in := newInput(entity.DifficultyNormal)
	in.Stats.Distance = 550
	out := Step(in)
	if out.Level != 2 {
		t.Fatalf("Level = %d, want 2", out.Level)
	}

	// A lower distance supplied later must not reduce the level
	in.Stats.Level = out.Level
	in.Stats.Distance = 10
	if out = Step(in); out.Level != 2 {
		t.Errorf("Level = %d after lower distance, want 2", out.Level)
	}
}

func TestHealthRegen(t *testing.T) {
	in := newInput(entity.DifficultyNormal)
	in.Motorcycle.Health = 50
	if out := Step(in); math.Abs(out.Health-50.1) > 1e-6 {
		t.Errorf("Health = %v, want 50.1", out.Health)
	}

	in.Motorcycle.Health = 99.95
	if out := Step(in); out.Health != entity.MaxHealth {
		t.Errorf("Health = %v, want clamped to %v", out.Health, entity.MaxHealth)
	}
}

func TestLaneEasing(t *testing.T) {
	in := newInput(entity.DifficultyNormal)
	in.Motorcycle.Lane = entity.LaneRight

	x := in.Motorcycle.Position.X
	for i := 0; i < 120; i++ {
		in.Motorcycle.Position.X = x
		x = Step(in).PositionX
	}
	if math.Abs(x-entity.LaneRight.X()) > 0.01 {
		t.Errorf("PositionX = %v after 2s, want close to %v", x, entity.LaneRight.X())
	}
}

func TestNegativeDeltaIgnored(t *testing.T) {
	in := newInput(entity.DifficultyNormal)
	in.DT = -time.Second
	out := Step(in)
	if out.Distance != 0 || out.Speed != in.Motorcycle.Speed {
		t.Errorf("negative delta changed state: %+v", out)
	}
}
