package db

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
)

// FileStorage keeps the container as an indented JSON document. Every
// Persist writes a sibling temp file and renames it over the target.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) (*FileStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}
	return &FileStorage{path: path}, nil
}

func (s *FileStorage) Path() string {
	return s.path
}

func (s *FileStorage) Load() (*Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoData, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store: %w", err)
	}

	data, err := decodeData(raw)
	var corrupt *CorruptError
	if errors.As(err, &corrupt) {
		corrupt.Backup = s.quarantine(raw)
	}
	return data, err
}

// quarantine keeps a copy of unreadable content before it gets replaced.
func (s *FileStorage) quarantine(raw []byte) string {
	backup := fmt.Sprintf("%s.corrupt-%s", s.path, uuid.NewString())
	if err := os.WriteFile(backup, raw, 0600); err != nil {
		return ""
	}
	return backup
}

func (s *FileStorage) Persist(data *Data) error {
	raw, err := encodeData(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write store: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace store: %w", err)
	}
	return nil
}
