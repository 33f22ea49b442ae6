package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/lowaak/flowlift/internal/workout"
)

// FileStore keeps the snapshot as an indented JSON document.
type FileStore struct {
	mu       sync.Mutex
	filePath string
	logger   *log.Logger
}

func NewFileStore(filePath string, logger *log.Logger) *FileStore {
	if logger == nil {
		panic("FileStore: logger cannot be nil")
	}
	return &FileStore{filePath: filePath, logger: logger}
}

func (s *FileStore) Path() string {
	return s.filePath
}

func (s *FileStore) Load() (workout.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Printf("FileStore: load %s (no existing file)", s.filePath)
		return workout.Snapshot{}, false, nil
	}
	if err != nil {
		return workout.Snapshot{}, false, fmt.Errorf("reading snapshot %s: %w", s.filePath, err)
	}

	var snap workout.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return workout.Snapshot{}, false, fmt.Errorf("parsing snapshot %s: %w", s.filePath, err)
	}
	s.logger.Printf("FileStore: load %s -> %d selected programs, active=%t", s.filePath, len(snap.SelectedPrograms), snap.HasActiveSession())
	return snap, true, nil
}

func (s *FileStore) Save(snap workout.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return fmt.Errorf("creating snapshot dir: %w", err)
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	if err := os.WriteFile(s.filePath, raw, 0644); err != nil {
		return fmt.Errorf("writing snapshot %s: %w", s.filePath, err)
	}
	s.logger.Printf("FileStore: save %s (exercise %d)", s.filePath, snap.CurrentExerciseIndex)
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
