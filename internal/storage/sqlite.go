// Package storage provides SQLite-based persistence for finished runs and
// the garage. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/motorush/internal/entity"
	"github.com/vovakirdan/motorush/internal/session"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry represents a single finished run.
type RunEntry struct {
	ID         int64
	RunID      string
	Player     string
	Difficulty string
	Reason     string // "crashed" or "abandoned"
	Score      int
	Coins      int
	Distance   float64
	Level      int
	Ticks      int64
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SSH sessions record runs concurrently; sqlite allows one writer.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			reason TEXT NOT NULL,
			score INTEGER NOT NULL,
			coins INTEGER NOT NULL DEFAULT 0,
			distance REAL NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			ticks INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_difficulty ON runs(difficulty);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(difficulty, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS garage (
			player TEXT PRIMARY KEY,
			coins INTEGER NOT NULL DEFAULT 0,
			engine INTEGER NOT NULL DEFAULT 1,
			handling INTEGER NOT NULL DEFAULT 1,
			durability INTEGER NOT NULL DEFAULT 1,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// SaveRun records a finished run. An empty or malformed RunID is replaced
// with a fresh UUID. Returns the ID of the inserted record.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	return saveRun(s.db, e)
}

func saveRun(x execer, e RunEntry) (int64, error) {
	if _, err := uuid.Parse(e.RunID); err != nil {
		e.RunID = uuid.NewString()
	}
	result, err := x.Exec(
		`INSERT INTO runs (run_id, player, difficulty, reason, score, coins, distance, level, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Player, e.Difficulty, e.Reason, e.Score, e.Coins, e.Distance, e.Level, e.Ticks,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the top N runs for a difficulty, or across all
// difficulties when difficulty is empty. Results are ordered by score descending.
func (s *Store) TopRuns(difficulty string, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, player, difficulty, reason, score, coins, distance, level, ticks, created_at
		 FROM runs
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		difficulty, difficulty, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		e, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RunByID retrieves a run by its run ID.
func (s *Store) RunByID(runID string) (RunEntry, error) {
	row := s.db.QueryRow(
		`SELECT id, run_id, player, difficulty, reason, score, coins, distance, level, ticks, created_at
		 FROM runs WHERE run_id = ?`,
		runID,
	)
	e, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunEntry{}, fmt.Errorf("storage: run %s: %w", runID, ErrNotFound)
	}
	return e, err
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(r rowScanner) (RunEntry, error) {
	var e RunEntry
	var createdAt any
	err := r.Scan(&e.ID, &e.RunID, &e.Player, &e.Difficulty, &e.Reason, &e.Score, &e.Coins,
		&e.Distance, &e.Level, &e.Ticks, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}

	// Parse the datetime - handle both time.Time and string
	switch v := createdAt.(type) {
	case time.Time:
		e.CreatedAt = v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			e.CreatedAt = parsed
		}
	}
	return e, nil
}

// HighScore returns the highest score for a difficulty, or across all
// difficulties when difficulty is empty. Returns 0 if no runs exist.
func (s *Store) HighScore(difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE ? = '' OR difficulty = ?",
		difficulty, difficulty,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for a difficulty, or every run when difficulty is empty.
func (s *Store) ClearRuns(difficulty string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR difficulty = ?", difficulty, difficulty)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for one difficulty.
type RunStats struct {
	Difficulty    string
	Runs          int
	BestScore     int
	AvgScore      float64
	TotalDistance float64
	MaxLevel      int
	TotalCoins    int
}

// StatsByDifficulty retrieves aggregated statistics for every difficulty played.
func (s *Store) StatsByDifficulty() (map[string]RunStats, error) {
	rows, err := s.db.Query(
		`SELECT difficulty, COUNT(*), MAX(score), AVG(score), SUM(distance), MAX(level), SUM(coins)
		 FROM runs
		 GROUP BY difficulty`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]RunStats)
	for rows.Next() {
		var st RunStats
		if err := rows.Scan(&st.Difficulty, &st.Runs, &st.BestScore, &st.AvgScore,
			&st.TotalDistance, &st.MaxLevel, &st.TotalCoins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats: %w", err)
		}
		stats[st.Difficulty] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// LoadGarage returns a player's persisted garage, or an empty garage with
// base upgrades when none has been saved yet.
func (s *Store) LoadGarage(player string) (session.Garage, error) {
	g := session.NewGarage()
	err := s.db.QueryRow(
		"SELECT coins, engine, handling, durability FROM garage WHERE player = ?",
		player,
	).Scan(&g.Coins, &g.Upgrades.Engine, &g.Upgrades.Handling, &g.Upgrades.Durability)
	if errors.Is(err, sql.ErrNoRows) {
		return session.NewGarage(), nil
	}
	if err != nil {
		return session.NewGarage(), fmt.Errorf("storage: cannot load garage: %w", err)
	}
	g.Upgrades = g.Upgrades.Normalized()
	return g, nil
}

// SaveGarage replaces a player's persisted garage.
func (s *Store) SaveGarage(player string, g session.Garage) error {
	return saveGarage(s.db, player, g)
}

func saveGarage(x execer, player string, g session.Garage) error {
	u := g.Upgrades.Normalized()
	_, err := x.Exec(
		`INSERT INTO garage (player, coins, engine, handling, durability, updated_at)
		 VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET
			coins = excluded.coins,
			engine = excluded.engine,
			handling = excluded.handling,
			durability = excluded.durability,
			updated_at = excluded.updated_at`,
		player, max(g.Coins, 0), u.Engine, u.Handling, u.Durability,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save garage: %w", err)
	}
	return nil
}

// RecordResult stores a player's finished run together with the garage it
// banked into, in one transaction.
func (s *Store) RecordResult(player string, res session.Result) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	e := RunEntryFromResult(res)
	e.Player = player
	if _, err := saveRun(tx, e); err != nil {
		return err
	}
	if err := saveGarage(tx, player, res.Garage); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return nil
}

// RunEntryFromResult converts a session result into a row.
func RunEntryFromResult(res session.Result) RunEntry {
	return RunEntry{
		RunID:      res.RunID,
		Difficulty: res.Difficulty.String(),
		Reason:     string(res.Reason),
		Score:      res.Score,
		Coins:      res.Coins,
		Distance:   res.Distance,
		Level:      res.Level,
		Ticks:      int64(res.Ticks),
	}
}

// DifficultyName maps a CLI filter to a stored difficulty name.
// "all" and "" select every difficulty.
func DifficultyName(filter string) (string, error) {
	if filter == "" || filter == "all" {
		return "", nil
	}
	d, ok := entity.ParseDifficulty(filter)
	if !ok {
		return "", fmt.Errorf("storage: unknown difficulty %q", filter)
	}
	return d.String(), nil
}
