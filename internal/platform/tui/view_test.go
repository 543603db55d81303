package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/session"
)

func testFrame(t *testing.T) Frame {
	t.Helper()
	m := session.New(session.Options{Config: config.DefaultConfig(), Seed: 1})
	return NewFrame(m)
}

func TestDrawTooSmall(t *testing.T) {
	scr := core.NewScreen(20, 5)
	Draw(scr, testFrame(t))

	if !strings.Contains(scr.String(), "too small") {
		t.Errorf("expected size warning, got:\n%s", scr.String())
	}
}

func TestDrawMenu(t *testing.T) {
	scr := core.NewScreen(80, 24)
	f := testFrame(t)
	f.Best = 1234
	Draw(scr, f)

	out := scr.String()
	for _, want := range []string{"M O T O R U S H", "difficulty  < normal >", "best        1234", "enter to ride"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu missing %q:\n%s", want, out)
		}
	}
}

func TestDrawObstacleOnRiderRow(t *testing.T) {
	scr := core.NewScreen(80, 24)
	f := testFrame(t)
	f.Session.State = entity.StatePlaying
	f.Session.Pickups = nil
	f.Session.Obstacles = []entity.Obstacle{
		{ID: 0, Type: entity.ObstacleCar, Lane: entity.LaneLeft, Z: 0, Active: true},
		{ID: 1, Type: entity.ObstacleTruck, Lane: entity.LaneRight, Z: 500, Active: true},
	}
	Draw(scr, f)

	rd := layoutRoad(80, 24)
	cell := scr.GetCell(rd.laneCenter(entity.LaneLeft), rd.riderRow)
	if cell.Rune != '█' || cell.Color != core.ColorCar {
		t.Errorf("expected car at rider row, got %q color %v", cell.Rune, cell.Color)
	}

	if strings.Contains(scr.String(), "[███]") {
		t.Error("obstacle beyond the horizon should not be drawn")
	}

	rider := scr.GetCell(rd.laneCenter(entity.LaneCenter), rd.riderRow)
	if rider.Color != core.ColorRider {
		t.Errorf("expected rider in center lane, got %q color %v", rider.Rune, rider.Color)
	}
}

func TestDrawHUD(t *testing.T) {
	scr := core.NewScreen(80, 24)
	f := testFrame(t)
	f.Session.State = entity.StatePlaying
	f.Session.Stats.Score = 42
	f.Session.Stats.Lives = 2
	Draw(scr, f)

	out := scr.String()
	if !strings.Contains(out, "SCORE 000042") {
		t.Errorf("HUD missing score:\n%s", out)
	}
	if !strings.Contains(out, "♥♥") || strings.Contains(out, "♥♥♥") {
		t.Errorf("HUD should show two lives:\n%s", out)
	}
}

func TestDrawGarageMaxLevel(t *testing.T) {
	scr := core.NewScreen(80, 24)
	f := testFrame(t)
	f.Session.State = entity.StateUpgrades
	f.Offers[0].Level = entity.MaxUpgradeLevel
	f.Offers[0].Max = true
	Draw(scr, f)

	out := scr.String()
	if !strings.Contains(out, "GARAGE") || !strings.Contains(out, "MAX") {
		t.Errorf("garage panel missing max marker:\n%s", out)
	}
}

func TestRoadMapping(t *testing.T) {
	rd := layoutRoad(80, 24)

	if got := rd.columnFor(entity.LaneRight.X()); got != rd.laneCenter(entity.LaneRight) {
		t.Errorf("right lane x maps to column %d, want %d", got, rd.laneCenter(entity.LaneRight))
	}
	if got := rd.columnFor(entity.LaneLeft.X()); got != rd.laneCenter(entity.LaneLeft) {
		t.Errorf("left lane x maps to column %d, want %d", got, rd.laneCenter(entity.LaneLeft))
	}

	if y, ok := rd.rowFor(viewDepth); !ok || y != rd.top {
		t.Errorf("horizon row = %d, %v; want %d", y, ok, rd.top)
	}
	if y, ok := rd.rowFor(0); !ok || y != rd.riderRow {
		t.Errorf("rider row = %d, %v; want %d", y, ok, rd.riderRow)
	}
	if _, ok := rd.rowFor(-5); ok {
		t.Error("obstacles behind the rider should be hidden")
	}
	if _, ok := rd.rowFor(viewDepth + 1); ok {
		t.Error("obstacles past the horizon should be hidden")
	}
}

func TestNewFrameOffers(t *testing.T) {
	f := testFrame(t)
	if len(f.Offers) != 3 {
		t.Fatalf("expected 3 offers, got %d", len(f.Offers))
	}
	cfg := config.DefaultConfig()
	if f.Offers[0].Cost != cfg.Garage.UpgradeCost(entity.UpgradeEngine, 2) {
		t.Errorf("engine offer cost = %d", f.Offers[0].Cost)
	}
}
