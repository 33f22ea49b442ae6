package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/lowaak/flowlift/internal/workout"
)

const currentSlot = "current"

// SQLiteStore keeps the snapshot as a JSON payload in a SQLite database.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *log.Logger
}

// OpenSQLiteStore opens (or creates) the database at path.
func OpenSQLiteStore(path string, logger *log.Logger) (*SQLiteStore, error) {
	if logger == nil {
		panic("SQLiteStore: logger cannot be nil")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store dir %s: %w", filepath.Dir(path), err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		slot       TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		saved_at   TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshots table: %w", err)
	}

	logger.Printf("SQLiteStore: opened %s", path)
	return &SQLiteStore{db: db, path: path, logger: logger}, nil
}

func (s *SQLiteStore) Load() (workout.Snapshot, bool, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM snapshots WHERE slot = ?`, currentSlot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return workout.Snapshot{}, false, nil
	}
	if err != nil {
		return workout.Snapshot{}, false, fmt.Errorf("querying snapshot: %w", err)
	}

	var snap workout.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return workout.Snapshot{}, false, fmt.Errorf("parsing snapshot: %w", err)
	}
	return snap, true, nil
}

func (s *SQLiteStore) Save(snap workout.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO snapshots (slot, payload, saved_at) VALUES (?, ?, CURRENT_TIMESTAMP)`,
		currentSlot, string(payload),
	)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	s.logger.Printf("SQLiteStore: save %s (exercise %d)", s.path, snap.CurrentExerciseIndex)
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
