package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/motorush/internal/config"
	"github.com/vovakirdan/motorush/internal/core"
	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/session"
	"github.com/vovakirdan/motorush/internal/storage"
)

const testPlayer = "tester"

func newTestModel(t *testing.T, garage session.Garage) (Model, *session.Machine, *storage.Store) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mc := session.New(session.Options{
		Config: config.DefaultConfig(),
		Seed:   1,
		Garage: garage,
	})
	m := NewModel(Options{
		Machine: mc,
		Store:   store,
		Player:  testPlayer,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60},
	})
	return m, mc, store
}

// send feeds messages through Update in order.
func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(Model); !ok {
			t.Fatalf("Update returned %T", next)
		}
	}
	return m
}

func tick() tea.Msg { return TickMsg(time.Now()) }

func TestModelStartsRide(t *testing.T) {
	m, mc, _ := newTestModel(t, session.NewGarage())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if mc.State() != entity.StateMenu {
		t.Fatal("commands should wait for the next tick")
	}

	send(t, m, tick())
	if mc.State() != entity.StatePlaying {
		t.Errorf("expected playing, got %v", mc.State())
	}
}

func TestModelKeyboardLaneChange(t *testing.T) {
	m, mc, _ := newTestModel(t, session.NewGarage())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick())

	send(t, m, runeKey('d'), tick())
	if lane := mc.Snapshot().Motorcycle.Lane; lane != entity.LaneRight {
		t.Errorf("expected right lane, got %v", lane)
	}
}

func TestModelLaneKeysIgnoredInMenu(t *testing.T) {
	m, mc, _ := newTestModel(t, session.NewGarage())

	send(t, m, runeKey('a'), tea.KeyMsg{Type: tea.KeyEnter}, tick(), tick())
	if lane := mc.Snapshot().Motorcycle.Lane; lane != entity.LaneCenter {
		t.Errorf("menu key press leaked into the ride: lane %v", lane)
	}
}

func TestModelMouseSwipe(t *testing.T) {
	m, mc, _ := newTestModel(t, session.NewGarage())
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick())

	// 10 cells at 10 px per cell is past the 50 px swipe threshold
	send(t, m,
		tea.MouseMsg{X: 30, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft},
		tea.MouseMsg{X: 20, Y: 10, Action: tea.MouseActionRelease},
		tick(),
	)
	if lane := mc.Snapshot().Motorcycle.Lane; lane != entity.LaneLeft {
		t.Errorf("expected left lane after swipe, got %v", lane)
	}
}

func TestModelQuit(t *testing.T) {
	m, _, _ := newTestModel(t, session.NewGarage())

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if v := next.(Model).View(); v != "" {
		t.Errorf("expected empty view after quit, got %q", v)
	}
}

func TestModelBuyUpgradePersistsGarage(t *testing.T) {
	m, mc, store := newTestModel(t, session.Garage{Coins: 500, Upgrades: entity.BaseUpgrades()})

	m = send(t, m, runeKey('u'), tick())
	if mc.State() != entity.StateUpgrades {
		t.Fatalf("expected upgrades, got %v", mc.State())
	}

	m = send(t, m, runeKey('1'), tick())
	g, err := store.LoadGarage(testPlayer)
	if err != nil {
		t.Fatalf("LoadGarage failed: %v", err)
	}
	if g.Upgrades.Engine != 2 {
		t.Errorf("expected saved engine level 2, got %d", g.Upgrades.Engine)
	}
	if g.Coins != mc.Garage().Coins {
		t.Errorf("saved coins %d, machine has %d", g.Coins, mc.Garage().Coins)
	}
	if m.status == "" {
		t.Error("expected a status line after buying")
	}
}

func TestModelShowsInsufficientCoins(t *testing.T) {
	m, _, _ := newTestModel(t, session.NewGarage())

	m = send(t, m, runeKey('u'), tick(), runeKey('3'), tick())
	if m.status != "not enough coins" {
		t.Errorf("expected coins warning, got %q", m.status)
	}
}

func TestModelRecordsAbandonedRun(t *testing.T) {
	m, mc, store := newTestModel(t, session.NewGarage())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick(), tick())
	runID := mc.RunID()
	send(t, m, runeKey('p'), tick(), runeKey('b'), tick())

	if mc.State() != entity.StateMenu {
		t.Fatalf("expected menu, got %v", mc.State())
	}
	run, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID failed: %v", err)
	}
	if run.Player != testPlayer || run.Reason != string(session.EndAbandoned) {
		t.Errorf("unexpected run row: %+v", run)
	}
}

func TestFinishAbandonsRideInProgress(t *testing.T) {
	m, mc, store := newTestModel(t, session.NewGarage())
	send(t, m, tea.KeyMsg{Type: tea.KeyEnter}, tick())
	runID := mc.RunID()

	if err := Finish(mc); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	if mc.State() != entity.StateMenu {
		t.Errorf("expected menu, got %v", mc.State())
	}
	if _, err := store.RunByID(runID); err != nil {
		t.Errorf("abandoned run not recorded: %v", err)
	}

	// A second call has nothing left to do
	if err := Finish(mc); err != nil {
		t.Errorf("second Finish failed: %v", err)
	}
}

func TestModelResize(t *testing.T) {
	m, _, _ := newTestModel(t, session.NewGarage())
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, want 100x29", m.screen.Width(), m.screen.Height())
	}
}
