package sim

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/input"
	"github.com/vovakirdan/motorush/internal/session"
)

func newMachine(seed int64) *session.Machine {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return session.New(session.Options{
		Config: config.DefaultConfig(),
		Seed:   seed,
		Clock:  func() time.Time { return start },
	})
}

func TestRunDeterministic(t *testing.T) {
	a, err := Run(newMachine(7), Options{Ticks: 1200, Pilot: NewRandom(3, 0.05)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	b, err := Run(newMachine(7), Options{Ticks: 1200, Pilot: NewRandom(3, 0.05)})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if a != b {
		t.Errorf("same seed produced different rides:\n%+v\n%+v", a, b)
	}
}

func TestRunRespectsTickBudget(t *testing.T) {
	sum, err := Run(newMachine(1), Options{Ticks: 30, TickRate: 60, Pilot: Idle{}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.Ticks != 30 {
		t.Errorf("expected 30 ticks, got %d", sum.Ticks)
	}
	if sum.SimTime != 30*(time.Second/60) {
		t.Errorf("expected sim time of 30 frames, got %v", sum.SimTime)
	}
	if sum.Distance <= 0 {
		t.Error("expected distance to grow")
	}
	if sum.GameOver {
		t.Error("run should not be over after half a second")
	}
	if sum.Seed != 1 {
		t.Errorf("expected seed 1, got %d", sum.Seed)
	}
}

func TestRunRequiresMenu(t *testing.T) {
	m := newMachine(1)
	if err := m.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	_, err := Run(m, Options{Ticks: 10})
	if !errors.Is(err, session.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRunStopsAtGameOver(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Collision.Damage = 100
	m := session.New(session.Options{Config: cfg, Seed: 5})

	sum, err := Run(m, Options{Ticks: 60 * 600, Pilot: Idle{}})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sum.GameOver {
		if sum.Lives != 0 {
			t.Errorf("game over with %d lives", sum.Lives)
		}
		if m.State() != entity.StateGameOver {
			t.Errorf("expected gameOver state, got %v", m.State())
		}
		return
	}
	if sum.Ticks != 60*600 {
		t.Errorf("run ended early without game over after %d ticks", sum.Ticks)
	}
}

func TestAutoDodges(t *testing.T) {
	s := entity.GameSession{
		Motorcycle: entity.NewMotorcycle(entity.BaseUpgrades()),
		Obstacles: []entity.Obstacle{
			{ID: 0, Lane: entity.LaneCenter, Z: 10, Active: true},
			{ID: 1, Lane: entity.LaneLeft, Z: 5, Active: true},
			{ID: 2, Lane: entity.LaneRight, Z: 30, Active: true},
		},
	}

	if got := (Auto{}).Steer(s); got != input.KeyRight {
		t.Errorf("expected right, got %v", got)
	}

	s.Obstacles[0].Z = 200
	if got := (Auto{}).Steer(s); got != input.KeyOther {
		t.Errorf("expected no key on a clear lane, got %v", got)
	}

	// Deflected obstacles are ignored
	s.Obstacles[0].Z = 10
	s.Obstacles[0].Deflected = time.Second
	if got := (Auto{}).Steer(s); got != input.KeyOther {
		t.Errorf("expected no key for a deflected obstacle, got %v", got)
	}
}

func TestAutoStaysWhenBoxedIn(t *testing.T) {
	s := entity.GameSession{
		Motorcycle: entity.NewMotorcycle(entity.BaseUpgrades()),
		Obstacles: []entity.Obstacle{
			{ID: 0, Lane: entity.LaneCenter, Z: 20, Active: true},
			{ID: 1, Lane: entity.LaneLeft, Z: 5, Active: true},
			{ID: 2, Lane: entity.LaneRight, Z: 5, Active: true},
		},
	}
	if got := (Auto{}).Steer(s); got != input.KeyOther {
		t.Errorf("expected to stay, got %v", got)
	}
}

func TestPilotByName(t *testing.T) {
	for _, name := range []string{"auto", "random", "idle", ""} {
		if _, err := PilotByName(name, 1); err != nil {
			t.Errorf("PilotByName(%q) failed: %v", name, err)
		}
	}
	if _, err := PilotByName("nope", 1); err == nil {
		t.Error("expected error for unknown pilot")
	}
}
