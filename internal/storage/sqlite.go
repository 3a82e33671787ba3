// Package storage provides SQLite-based persistence for puzzle solve times.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for solve-time persistence.
type Store struct {
	db *sql.DB
}

// SolveEntry represents one completed puzzle run. Runs are keyed by the
// tessellation strategy and piece count so a 12-piece grid and a 48-piece
// organic puzzle keep separate leaderboards.
type SolveEntry struct {
	ID        int64
	Strategy  string
	Pieces    int
	Elapsed   time.Duration
	CreatedAt time.Time
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
		CREATE TABLE IF NOT EXISTS solves (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			strategy TEXT NOT NULL,
			pieces INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solves_puzzle ON solves(strategy, pieces);
		CREATE INDEX IF NOT EXISTS idx_solves_top ON solves(strategy, pieces, elapsed_ms ASC);
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

// SaveSolve records a completed run for the given puzzle shape.
// Returns the ID of the inserted record.
func (s *Store) SaveSolve(strategy string, pieces int, elapsed time.Duration) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO solves (strategy, pieces, elapsed_ms) VALUES (?, ?, ?)",
		strategy, pieces, elapsed.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solve: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopSolves retrieves the N fastest runs for the given puzzle shape.
// Results are ordered by elapsed time ascending.
func (s *Store) TopSolves(strategy string, pieces, limit int) ([]SolveEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, strategy, pieces, elapsed_ms, created_at
		 FROM solves
		 WHERE strategy = ? AND pieces = ?
		 ORDER BY elapsed_ms ASC
		 LIMIT ?`,
		strategy, pieces, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	entries, err := scanSolves(rows)
	if err != nil {
		return nil, err
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// AllSolves retrieves every recorded run, fastest first, across all puzzle
// shapes.
func (s *Store) AllSolves() ([]SolveEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, strategy, pieces, elapsed_ms, created_at
		 FROM solves
		 ORDER BY elapsed_ms ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solves: %w", err)
	}
	defer rows.Close()

	return scanSolves(rows)
}

func scanSolves(rows *sql.Rows) ([]SolveEntry, error) {
	var entries []SolveEntry
	for rows.Next() {
		var e SolveEntry
		var elapsedMs int64
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Strategy, &e.Pieces, &elapsedMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Elapsed = time.Duration(elapsedMs) * time.Millisecond

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// BestSolve returns the fastest recorded time for the given puzzle shape.
// Returns 0 if no runs exist.
func (s *Store) BestSolve(strategy string, pieces int) (time.Duration, error) {
	var elapsedMs sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(elapsed_ms) FROM solves WHERE strategy = ? AND pieces = ?",
		strategy, pieces,
	).Scan(&elapsedMs)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best solve: %w", err)
	}

	if !elapsedMs.Valid {
		return 0, nil
	}

	return time.Duration(elapsedMs.Int64) * time.Millisecond, nil
}

// ClearSolves deletes all runs for the given puzzle shape.
func (s *Store) ClearSolves(strategy string, pieces int) error {
	_, err := s.db.Exec("DELETE FROM solves WHERE strategy = ? AND pieces = ?", strategy, pieces)
	if err != nil {
		return fmt.Errorf("storage: cannot clear solves: %w", err)
	}
	return nil
}
