// Package store persists the application snapshot between runs.
package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lowaak/flowlift/internal/workout"
)

// SnapshotStore loads and saves the single current snapshot.
type SnapshotStore interface {
	// Load returns the saved snapshot. ok is false when nothing was saved yet.
	Load() (snap workout.Snapshot, ok bool, err error)
	Save(snap workout.Snapshot) error
	Close() error
}

// Backend names a SnapshotStore implementation.
type Backend string

const (
	BackendJSON   Backend = "json"
	BackendSQLite Backend = "sqlite"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown store backend")

const dirName = ".flowlift"

// DefaultDir is ~/.flowlift, or ./.flowlift when there is no home directory.
func DefaultDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, dirName)
}

// DefaultPath is the default location of the given backend's data.
func DefaultPath(backend Backend) string {
	if backend == BackendSQLite {
		return filepath.Join(DefaultDir(), "state.db")
	}
	return filepath.Join(DefaultDir(), "state.json")
}

func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendJSON, BackendSQLite:
		return b, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownBackend, s)
	}
}

// Open creates the store for backend at path. An empty path selects
// DefaultPath.
func Open(backend Backend, path string, logger *log.Logger) (SnapshotStore, error) {
	if logger == nil {
		panic("store: logger cannot be nil")
	}
	if path == "" {
		path = DefaultPath(backend)
	}
	switch backend {
	case BackendJSON:
		return NewFileStore(path, logger), nil
	case BackendSQLite:
		return OpenSQLiteStore(path, logger)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownBackend, backend)
	}
}
