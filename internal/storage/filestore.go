package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists all keys as one JSON document, written atomically
// via a temp file and rename so a crash mid-write never corrupts state.
type FileStore struct {
	filePath string
	mu       sync.RWMutex
	values   map[string]json.RawMessage
}

// NewFileStore loads (or initializes) the JSON document at filePath.
func NewFileStore(filePath string) (*FileStore, error) {
	s := &FileStore{
		filePath: filePath,
		values:   make(map[string]json.RawMessage),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Load returns the raw value stored under key.
func (s *FileStore) Load(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Save stores value under key and rewrites the backing file.
func (s *FileStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make(json.RawMessage, len(value))
	copy(v, value)
	s.values[key] = v
	return s.persistLocked()
}

// Close is a no-op; every Save already hit disk.
func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if values == nil {
		values = make(map[string]json.RawMessage)
	}
	s.values = values
	return nil
}

func (s *FileStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}
