package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndTopRuns(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []RunEntry{
		{RunID: uuid.NewString(), Difficulty: "normal", Reason: "crashed", Score: 100},
		{RunID: uuid.NewString(), Difficulty: "normal", Reason: "crashed", Score: 50},
		{RunID: uuid.NewString(), Difficulty: "normal", Reason: "abandoned", Score: 200},
		{RunID: uuid.NewString(), Difficulty: "hard", Reason: "crashed", Score: 500},
	} {
		if _, err := store.SaveRun(e); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.TopRuns("normal", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if runs[i].Score != w {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, w)
		}
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].Score != 500 {
		t.Errorf("TopRuns(all, 2) = %+v, want 2 runs led by 500", all)
	}
}

func TestSaveRunReplacesBadID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(RunEntry{RunID: "not-a-uuid", Difficulty: "easy", Reason: "crashed"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	runs, err := store.TopRuns("easy", 1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("TopRuns() = %v, %v", runs, err)
	}
	if _, err := uuid.Parse(runs[0].RunID); err != nil {
		t.Errorf("RunID %q is not a UUID", runs[0].RunID)
	}
}

func TestRunByID(t *testing.T) {
	store := openTestStore(t)
	id := uuid.NewString()
	if _, err := store.SaveRun(RunEntry{RunID: id, Difficulty: "hard", Reason: "crashed", Score: 42, Distance: 12.5, Level: 2}); err != nil {
		t.Fatal(err)
	}

	e, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if e.Score != 42 || e.Distance != 12.5 || e.Level != 2 {
		t.Errorf("RunByID() = %+v", e)
	}

	if _, err := store.RunByID(uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing run: err = %v, want ErrNotFound", err)
	}
}

func TestHighScoreEmpty(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected high score 0 for empty database, got %d", score)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(RunEntry{Difficulty: "easy", Reason: "crashed", Score: 10})
	store.SaveRun(RunEntry{Difficulty: "hard", Reason: "crashed", Score: 20})

	if err := store.ClearRuns("easy"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if hs, _ := store.HighScore("easy"); hs != 0 {
		t.Errorf("easy high score = %d after clear, want 0", hs)
	}
	if hs, _ := store.HighScore(""); hs != 20 {
		t.Errorf("overall high score = %d, want 20", hs)
	}
}

func TestStatsByDifficulty(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(RunEntry{Difficulty: "normal", Reason: "crashed", Score: 100, Distance: 10, Level: 1, Coins: 25})
	store.SaveRun(RunEntry{Difficulty: "normal", Reason: "crashed", Score: 300, Distance: 30, Level: 3, Coins: 50})

	stats, err := store.StatsByDifficulty()
	if err != nil {
		t.Fatalf("StatsByDifficulty() failed: %v", err)
	}
	st, ok := stats["normal"]
	if !ok {
		t.Fatal("no stats for normal")
	}
	if st.Runs != 2 || st.BestScore != 300 || st.AvgScore != 200 || st.MaxLevel != 3 || st.TotalCoins != 75 {
		t.Errorf("stats = %+v", st)
	}
}

func TestGarageRoundTrip(t *testing.T) {
	store := openTestStore(t)

	g, err := store.LoadGarage("ana")
	if err != nil {
		t.Fatalf("LoadGarage() failed: %v", err)
	}
	if g.Coins != 0 || g.Upgrades != entity.BaseUpgrades() {
		t.Errorf("fresh garage = %+v, want empty with base upgrades", g)
	}

	g.Coins = 350
	g.Upgrades.Engine = 4
	if err := store.SaveGarage("ana", g); err != nil {
		t.Fatalf("SaveGarage() failed: %v", err)
	}
	g.Coins = 10
	if err := store.SaveGarage("ana", g); err != nil {
		t.Fatalf("SaveGarage() overwrite failed: %v", err)
	}

	got, err := store.LoadGarage("ana")
	if err != nil {
		t.Fatal(err)
	}
	if got.Coins != 10 || got.Upgrades.Engine != 4 {
		t.Errorf("LoadGarage() = %+v, want 10 coins and engine 4", got)
	}

	// Garages are per player
	other, err := store.LoadGarage("bo")
	if err != nil {
		t.Fatal(err)
	}
	if other.Coins != 0 {
		t.Errorf("other player's garage = %+v, want empty", other)
	}
}

func TestRecordResult(t *testing.T) {
	store := openTestStore(t)
	res := session.Result{
		RunID:      uuid.NewString(),
		Reason:     session.EndCrashed,
		Difficulty: entity.DifficultyHard,
		Score:      900,
		Coins:      75,
		Distance:   81.5,
		Level:      1,
		Garage:     session.Garage{Coins: 175, Upgrades: entity.BaseUpgrades()},
	}

	if err := store.RecordResult("ana", res); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}

	run, err := store.RunByID(res.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Difficulty != "hard" || run.Reason != "crashed" || run.Score != 900 || run.Player != "ana" {
		t.Errorf("stored run = %+v", run)
	}
	g, _ := store.LoadGarage("ana")
	if g.Coins != 175 {
		t.Errorf("garage coins = %d, want 175", g.Coins)
	}
}

func TestDifficultyName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"all", "", false},
		{"hard", "hard", false},
		{"brutal", "", true},
	}
	for _, tt := range tests {
		got, err := DifficultyName(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("DifficultyName(%q) = %q, %v", tt.in, got, err)
		}
	}
}
