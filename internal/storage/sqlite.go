// Package storage provides SQLite-based persistence for state snapshots.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-drmario/internal/games/drmario/history"
)

// ErrNotFound is returned when no snapshot has the requested ID.
var ErrNotFound = errors.New("storage: snapshot not found")

// Store manages the SQLite database connection for snapshot persistence.
type Store struct {
	db *sql.DB
}

// SnapshotRecord is one stored snapshot. Payload holds the serialized
// JSON form; Frame, Seed and Checksum are copied out for listing.
type SnapshotRecord struct {
	ID        int64
	GameID    string
	Label     string
	Frame     int
	Seed      int64
	Checksum  string
	TakenAt   int64 // snapshot timestamp, ms since epoch
	Payload   string
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
		CREATE TABLE IF NOT EXISTS snapshots (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			frame INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			checksum TEXT NOT NULL,
			taken_at INTEGER NOT NULL,
			payload TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_snapshots_game_id ON snapshots(game_id);
		CREATE INDEX IF NOT EXISTS idx_snapshots_checksum ON snapshots(checksum);
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

// SaveSnapshot serializes and records a snapshot for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveSnapshot(gameID, label string, snap history.Snapshot) (int64, error) {
	payload, err := history.Serialize(snap)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot serialize snapshot: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO snapshots (game_id, label, frame, seed, checksum, taken_at, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID, label, snap.Frame, snap.Seed, history.ComputeChecksum(snap.GameState), snap.Timestamp, payload,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const recordColumns = `id, game_id, label, frame, seed, checksum, taken_at, payload, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (SnapshotRecord, error) {
	var r SnapshotRecord
	var createdAt any
	if err := row.Scan(&r.ID, &r.GameID, &r.Label, &r.Frame, &r.Seed, &r.Checksum, &r.TakenAt, &r.Payload, &createdAt); err != nil {
		return SnapshotRecord{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string DATETIME values.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// RecentSnapshots retrieves the newest N snapshots for the given game.
func (s *Store) RecentSnapshots(gameID string, limit int) ([]SnapshotRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+recordColumns+`
		 FROM snapshots
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	records := []SnapshotRecord{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// SnapshotByID retrieves one stored record.
func (s *Store) SnapshotByID(id int64) (SnapshotRecord, error) {
	r, err := scanRecord(s.db.QueryRow(`SELECT `+recordColumns+` FROM snapshots WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return SnapshotRecord{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return SnapshotRecord{}, fmt.Errorf("storage: cannot query snapshot: %w", err)
	}
	return r, nil
}

// LoadSnapshot retrieves and deserializes one stored snapshot.
func (s *Store) LoadSnapshot(id int64) (history.Snapshot, error) {
	r, err := s.SnapshotByID(id)
	if err != nil {
		return history.Snapshot{}, err
	}
	snap, err := history.Deserialize(r.Payload)
	if err != nil {
		return history.Snapshot{}, fmt.Errorf("storage: snapshot %d: %w", id, err)
	}
	return snap, nil
}

// DeleteSnapshot removes one stored snapshot.
func (s *Store) DeleteSnapshot(id int64) error {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete snapshot: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return nil
}

// ClearSnapshots deletes all snapshots for the given game.
func (s *Store) ClearSnapshots(gameID string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear snapshots: %w", err)
	}
	return nil
}

// SnapshotStats contains aggregated statistics for a game's snapshots.
type SnapshotStats struct {
	GameID     string
	Count      int
	FirstFrame int
	LastFrame  int
	LastSaved  time.Time
}

// Stats retrieves aggregated statistics for a specific game.
func (s *Store) Stats(gameID string) (SnapshotStats, error) {
	stats := SnapshotStats{GameID: gameID}

	var lastSaved any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(frame), 0), COALESCE(MAX(frame), 0), MAX(created_at)
		 FROM snapshots WHERE game_id = ?`,
		gameID,
	).Scan(&stats.Count, &stats.FirstFrame, &stats.LastFrame, &lastSaved)
	if err != nil {
		return SnapshotStats{}, fmt.Errorf("storage: cannot get snapshot stats: %w", err)
	}
	stats.LastSaved = parseTime(lastSaved)

	return stats, nil
}

// AllStats retrieves statistics for every game with stored snapshots.
func (s *Store) AllStats() (map[string]SnapshotStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MIN(frame), MAX(frame), MAX(created_at)
		 FROM snapshots
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all snapshot stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]SnapshotStats)
	for rows.Next() {
		var st SnapshotStats
		var lastSaved any
		if err := rows.Scan(&st.GameID, &st.Count, &st.FirstFrame, &st.LastFrame, &lastSaved); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastSaved = parseTime(lastSaved)
		stats[st.GameID] = st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
