// Package storage abstracts the client-local persistence the reminder
// engine needs: a small key-value surface the ledger and local store sit
// on, so their logic stays storage-agnostic and testable with the
// in-memory engine.
package storage

import "errors"

// ErrNotFound is returned by Load when a key has never been saved.
var ErrNotFound = errors.New("storage: key not found")

// Store is the durability layer. Values are opaque byte blobs; callers
// own the encoding. Implementations must be safe for concurrent use.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, value []byte) error
	Close() error
}
