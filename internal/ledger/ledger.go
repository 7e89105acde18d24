// Package ledger tracks which reminder ids have already been delivered
// so a reminder fires at most once across poll cycles and restarts.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/brokerdesk/reminders/internal/storage"
)

// storageKey is the stable key the delivered set lives under.
const storageKey = "delivered_reminders"

// DefaultRetention bounds the set: only the most recent N delivered ids
// are kept, which is plenty to suppress redelivery while preventing
// unbounded growth.
const DefaultRetention = 500

// Ledger is a persisted, insertion-ordered set of delivered reminder
// ids. Membership is monotonic: an id leaves only through Remove (used
// when a reminder is re-armed) or Reset.
type Ledger struct {
	store     storage.Store
	retention int

	mu    sync.Mutex
	ids   []string // insertion order, oldest first
	index map[string]struct{}
}

// Load reads the delivered set from store. A missing key yields an
// empty ledger. retention <= 0 falls back to DefaultRetention.
func Load(store storage.Store, retention int) (*Ledger, error) {
	if retention <= 0 {
		retention = DefaultRetention
	}
	l := &Ledger{
		store:     store,
		retention: retention,
		index:     make(map[string]struct{}),
	}

	data, err := store.Load(storageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	for _, id := range ids {
		if _, dup := l.index[id]; dup {
			continue
		}
		l.ids = append(l.ids, id)
		l.index[id] = struct{}{}
	}
	l.pruneLocked()
	return l, nil
}

// Contains reports whether id has already been delivered.
func (l *Ledger) Contains(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.index[id]
	return ok
}

// Add marks id as delivered and persists the set. Adding a present id
// is a no-op, which keeps overlapping poll cycles harmless.
func (l *Ledger) Add(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.index[id]; ok {
		return nil
	}
	l.ids = append(l.ids, id)
	l.index[id] = struct{}{}
	l.pruneLocked()
	return l.persistLocked()
}

// Remove clears id from the set so the next due occurrence can be
// delivered again. Used when a reminder is snoozed or re-armed.
func (l *Ledger) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.index[id]; !ok {
		return nil
	}
	delete(l.index, id)
	for i, v := range l.ids {
		if v == id {
			l.ids = append(l.ids[:i], l.ids[i+1:]...)
			break
		}
	}
	return l.persistLocked()
}

// Reset empties the set. Debug/testing affordance.
func (l *Ledger) Reset() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ids = nil
	l.index = make(map[string]struct{})
	return l.persistLocked()
}

// Len returns the number of delivered ids currently retained.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}

func (l *Ledger) pruneLocked() {
	if len(l.ids) <= l.retention {
		return
	}
	drop := l.ids[:len(l.ids)-l.retention]
	for _, id := range drop {
		delete(l.index, id)
	}
	l.ids = append([]string(nil), l.ids[len(l.ids)-l.retention:]...)
}

func (l *Ledger) persistLocked() error {
	ids := l.ids
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := l.store.Save(storageKey, data); err != nil {
		return fmt.Errorf("persist ledger: %w", err)
	}
	return nil
}
