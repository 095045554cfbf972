// Package storage provides SQLite-based persistence for level progress.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// Completion is a single solved-level record.
type Completion struct {
	ID        int64
	Player    string
	PackID    string
	LevelID   int
	Moves     int  // zero when HasMoves is false
	HasMoves  bool // imported completions carry no move count
	CreatedAt time.Time
}

// LevelRecord aggregates the completions of one level.
type LevelRecord struct {
	LevelID       int
	BestMoves     int
	HasBest       bool
	Plays         int
	LastCompleted time.Time
}

// PackStats contains aggregated statistics for one pack.
type PackStats struct {
	PackID     string
	Completed  int // distinct levels solved
	Plays      int // total completions
	BestTotal  int // sum of best move counts over levels that have one
	LastPlayed time.Time
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
	// SSH sessions share one store; a single connection serializes writers.
	db.SetMaxOpenConns(1)

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
		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			pack_id TEXT NOT NULL,
			level_id INTEGER NOT NULL,
			moves INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_pack ON completions(player, pack_id, level_id);
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

// MarkCompleted records that player solved a level in the given number of moves.
// Returns the ID of the inserted record.
func (s *Store) MarkCompleted(player, packID string, levelID, moves int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO completions (player, pack_id, level_id, moves) VALUES (?, ?, ?, ?)",
		player, packID, levelID, moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// CompletedLevels returns the set of level IDs player has solved in a pack.
func (s *Store) CompletedLevels(player, packID string) (map[int]bool, error) {
	rows, err := s.db.Query(
		"SELECT DISTINCT level_id FROM completions WHERE player = ? AND pack_id = ?",
		player, packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completed levels: %w", err)
	}
	defer rows.Close()

	done := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		done[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return done, nil
}

// IsCompleted reports whether player has solved the level.
func (s *Store) IsCompleted(player, packID string, levelID int) (bool, error) {
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM completions WHERE player = ? AND pack_id = ? AND level_id = ?",
		player, packID, levelID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query completion: %w", err)
	}
	return n > 0, nil
}

// BestMoves returns the fewest moves player needed for the level.
// The second result is false when no completion with a move count exists.
func (s *Store) BestMoves(player, packID string, levelID int) (int, bool, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MIN(moves) FROM completions WHERE player = ? AND pack_id = ? AND level_id = ?",
		player, packID, levelID,
	).Scan(&best)

	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query best moves: %w", err)
	}

	if !best.Valid {
		return 0, false, nil
	}

	return int(best.Int64), true, nil
}

// LevelProgress returns one record per solved level, ordered by level ID.
func (s *Store) LevelProgress(player, packID string) ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT level_id, MIN(moves), COUNT(*), MAX(created_at)
		 FROM completions
		 WHERE player = ? AND pack_id = ?
		 GROUP BY level_id
		 ORDER BY level_id`,
		player, packID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level progress: %w", err)
	}
	defer rows.Close()

	var records []LevelRecord
	for rows.Next() {
		var r LevelRecord
		var best sql.NullInt64
		var last any
		if err := rows.Scan(&r.LevelID, &best, &r.Plays, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if best.Valid {
			r.BestMoves = int(best.Int64)
			r.HasBest = true
		}
		r.LastCompleted = parseTime(last)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// RecentCompletions returns the latest completions of player across packs.
func (s *Store) RecentCompletions(player string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, pack_id, level_id, moves, created_at
		 FROM completions
		 WHERE player = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		var c Completion
		var moves sql.NullInt64
		var createdAt any
		if err := rows.Scan(&c.ID, &c.Player, &c.PackID, &c.LevelID, &moves, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if moves.Valid {
			c.Moves = int(moves.Int64)
			c.HasMoves = true
		}
		c.CreatedAt = parseTime(createdAt)
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ResetProgress deletes every completion of player in a pack.
func (s *Store) ResetProgress(player, packID string) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE player = ? AND pack_id = ?", player, packID)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// ExportCompleted returns the solved level IDs as a sorted JSON array,
// e.g. [1,2,5].
func (s *Store) ExportCompleted(player, packID string) ([]byte, error) {
	done, err := s.CompletedLevels(player, packID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(done))
	for id := range done {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot encode progress: %w", err)
	}
	return data, nil
}

// ImportCompleted marks the level IDs of a JSON array as solved. Only IDs
// listed in levelIDs are imported; the others are counted as skipped.
// Levels already solved are left alone and imported rows have no move count.
func (s *Store) ImportCompleted(player, packID string, data []byte, levelIDs []int) (added, skipped int, err error) {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return 0, 0, fmt.Errorf("storage: cannot decode progress: %w", err)
	}

	done, err := s.CompletedLevels(player, packID)
	if err != nil {
		return 0, 0, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("storage: cannot begin import: %w", err)
	}

	for _, id := range ids {
		if !slices.Contains(levelIDs, id) {
			skipped++
			continue
		}
		if done[id] {
			continue
		}
		if _, err := tx.Exec(
			"INSERT INTO completions (player, pack_id, level_id, moves) VALUES (?, ?, ?, NULL)",
			player, packID, id,
		); err != nil {
			return 0, 0, errors.Join(fmt.Errorf("storage: cannot import level %d: %w", id, err), tx.Rollback())
		}
		done[id] = true
		added++
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("storage: cannot commit import: %w", err)
	}
	return added, skipped, nil
}

// PackStats retrieves aggregated statistics for the given levels of a pack.
// Completions of level IDs not in levelIDs are ignored.
func (s *Store) PackStats(player, packID string, levelIDs []int) (*PackStats, error) {
	stats := &PackStats{PackID: packID}
	if len(levelIDs) == 0 {
		return stats, nil
	}

	in, args := levelFilter(player, packID, levelIDs)

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(DISTINCT level_id), COUNT(*), MAX(created_at)
		 FROM completions WHERE player = ? AND pack_id = ? AND level_id IN (`+in+`)`,
		args...,
	).Scan(&stats.Completed, &stats.Plays, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	err = s.db.QueryRow(
		`SELECT COALESCE(SUM(best), 0) FROM (
			SELECT MIN(moves) AS best FROM completions
			WHERE player = ? AND pack_id = ? AND level_id IN (`+in+`) AND moves IS NOT NULL
			GROUP BY level_id
		 )`,
		args...,
	).Scan(&stats.BestTotal)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get best totals: %w", err)
	}

	return stats, nil
}

// levelFilter returns the placeholders of an IN clause over levelIDs and the
// query arguments starting with player and packID.
func levelFilter(player, packID string, levelIDs []int) (string, []any) {
	args := make([]any, 0, len(levelIDs)+2)
	args = append(args, player, packID)
	for _, id := range levelIDs {
		args = append(args, id)
	}
	return strings.TrimSuffix(strings.Repeat("?,", len(levelIDs)), ","), args
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.DateTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
