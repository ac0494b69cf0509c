// Package storage provides SQLite-based persistence for episode results.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridrun/internal/engine"
	"github.com/vovakirdan/gridrun/internal/sim"
)

// Store manages the SQLite database connection for episode persistence.
type Store struct {
	db *sql.DB
}

// EpisodeEntry is one recorded episode result.
type EpisodeEntry struct {
	ID        int64
	GameID    int
	LevelSeed uint32
	Steps     int
	Reward    float64
	Outcome   string
	CreatedAt time.Time
}

// OutcomeStats contains aggregated statistics for one outcome class.
type OutcomeStats struct {
	Outcome   string
	Episodes  int
	AvgSteps  float64
	AvgReward float64
	MaxReward float64
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

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS episodes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id INTEGER NOT NULL,
			level_seed INTEGER NOT NULL,
			steps INTEGER NOT NULL,
			reward REAL NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_episodes_outcome ON episodes(outcome);
		CREATE INDEX IF NOT EXISTS idx_episodes_top ON episodes(reward DESC);
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

// SaveEpisode records one finished episode. Implements engine.EpisodeSink,
// so a store can be plugged into the engine directly.
func (s *Store) SaveEpisode(res sim.EpisodeResult) error {
	_, err := s.db.Exec(
		"INSERT INTO episodes (game_id, level_seed, steps, reward, outcome) VALUES (?, ?, ?, ?, ?)",
		res.GameID, int64(res.LevelSeed), res.Steps, res.Reward, res.Outcome,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save episode: %w", err)
	}
	return nil
}

// Ensure Store implements EpisodeSink
var _ engine.EpisodeSink = (*Store)(nil)

// TopEpisodes retrieves the N highest-reward episodes.
func (s *Store) TopEpisodes(limit int) ([]EpisodeEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_seed, steps, reward, outcome, created_at
		 FROM episodes
		 ORDER BY reward DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var entries []EpisodeEntry
	for rows.Next() {
		e, err := scanEpisode(rows)
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

// RecentEpisodes retrieves the most recently recorded episodes.
func (s *Store) RecentEpisodes(limit int) ([]EpisodeEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, level_seed, steps, reward, outcome, created_at
		 FROM episodes
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query episodes: %w", err)
	}
	defer rows.Close()

	var entries []EpisodeEntry
	for rows.Next() {
		e, err := scanEpisode(rows)
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

// EpisodeCount returns the total number of recorded episodes.
func (s *Store) EpisodeCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM episodes").Scan(&count); err != nil {
		return 0, fmt.Errorf("storage: cannot count episodes: %w", err)
	}
	return count, nil
}

// StatsByOutcome retrieves aggregated statistics grouped by outcome.
func (s *Store) StatsByOutcome() ([]OutcomeStats, error) {
	rows, err := s.db.Query(
		`SELECT outcome, COUNT(*), AVG(steps), AVG(reward), MAX(reward)
		 FROM episodes
		 GROUP BY outcome
		 ORDER BY outcome`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get outcome stats: %w", err)
	}
	defer rows.Close()

	var stats []OutcomeStats
	for rows.Next() {
		var o OutcomeStats
		if err := rows.Scan(&o.Outcome, &o.Episodes, &o.AvgSteps, &o.AvgReward, &o.MaxReward); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		stats = append(stats, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearEpisodes deletes all recorded episodes.
func (s *Store) ClearEpisodes() error {
	_, err := s.db.Exec("DELETE FROM episodes")
	if err != nil {
		return fmt.Errorf("storage: cannot clear episodes: %w", err)
	}
	return nil
}

func scanEpisode(rows *sql.Rows) (EpisodeEntry, error) {
	var e EpisodeEntry
	var seed int64
	var createdAt any
	if err := rows.Scan(&e.ID, &e.GameID, &seed, &e.Steps, &e.Reward, &e.Outcome, &createdAt); err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.LevelSeed = uint32(seed)

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
