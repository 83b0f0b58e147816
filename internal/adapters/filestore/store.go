// internal/adapters/filestore/store.go
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/avasquez/stitchstock-be/internal/core/ports"
)

// Store is a single-file blob store for running without external services.
// All blobs live in one JSON document; writes go to a tmp file first and are
// renamed into place, so a crash mid-write never corrupts the previous state.
type Store struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	blobs map[string]string
}

// Statically assert that *Store implements the BlobStore interface.
var _ ports.BlobStore = (*Store)(nil)

// New opens (or initializes) the blob file at path.
func New(path string, logger *slog.Logger) (*Store, error) {
	s := &Store{
		path:   path,
		logger: logger.With(slog.String("component", "filestore")),
		blobs:  make(map[string]string),
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// First run.
	case err != nil:
		return nil, fmt.Errorf("read blob file: %w", err)
	default:
		if err := json.Unmarshal(data, &s.blobs); err != nil {
			s.logger.Warn("unparsable blob file, starting empty",
				slog.String("path", path),
				slog.String("error", err.Error()))
			s.blobs = make(map[string]string)
		}
	}

	return s, nil
}

// Get returns the blob at key, or found=false when it was never written.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.blobs[key]
	return value, ok, nil
}

// Set writes the blob at key and flushes the whole document to disk.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, had := s.blobs[key]
	s.blobs[key] = value

	if err := s.flush(); err != nil {
		// Roll the in-memory copy back so it keeps mirroring the file.
		if had {
			s.blobs[key] = previous
		} else {
			delete(s.blobs, key)
		}
		s.logger.ErrorContext(ctx, "failed to write blob file",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return fmt.Errorf("write blob file: %w", err)
	}

	return nil
}

// Ping checks that the blob file's directory is writable.
func (s *Store) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat blob dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("blob dir %s is not a directory", dir)
	}
	return nil
}

// flush writes the document atomically. Callers hold the mutex.
func (s *Store) flush() error {
	data, err := json.MarshalIndent(s.blobs, "", "  ")
	if err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
