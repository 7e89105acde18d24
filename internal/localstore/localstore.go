// Package localstore persists reminders created client-side before the
// backend has confirmed them. Records stay here until a poll cycle
// prunes them (expired unobserved) or a successful promotion moves them
// to the backend; a failed promotion leaves the record in place, which
// is the accepted degraded mode.
package localstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brokerdesk/reminders/internal/storage"
	"github.com/brokerdesk/reminders/internal/types"
)

// storageKey is the stable key the local records live under.
const storageKey = "local_reminders"

// Store owns the persisted list of local reminder records.
type Store struct {
	store storage.Store

	mu      sync.Mutex
	records []types.LocalRecord
}

// Load reads local records from store; a missing key yields an empty store.
func Load(store storage.Store) (*Store, error) {
	s := &Store{store: store}

	data, err := store.Load(storageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load local reminders: %w", err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("decode local reminders: %w", err)
	}
	return s, nil
}

// Add stores rec, synthesizing an id and creation timestamp when absent,
// and returns the stored record.
func (s *Store) Add(rec types.LocalRecord) (types.LocalRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = "local-" + uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.IsLocal = true

	s.records = append(s.records, rec)
	if err := s.persistLocked(); err != nil {
		return types.LocalRecord{}, err
	}
	return rec, nil
}

// List returns a snapshot of all local records.
func (s *Store) List() []types.LocalRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.LocalRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Remove deletes the record with id. Removing an absent id is a no-op.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

// Len returns the number of local records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func (s *Store) persistLocked() error {
	records := s.records
	if records == nil {
		records = []types.LocalRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode local reminders: %w", err)
	}
	if err := s.store.Save(storageKey, data); err != nil {
		return fmt.Errorf("persist local reminders: %w", err)
	}
	return nil
}
