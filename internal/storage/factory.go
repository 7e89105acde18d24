package storage

import (
	"errors"
	"strings"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
	EngineMemory = "memory"
)

// NewByEngine builds a Store for the configured engine. The memory
// engine ignores path.
func NewByEngine(engine string, path string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineJSON:
		return NewFileStore(path)
	case EngineSQLite:
		return NewSQLiteStore(path)
	case EngineMemory:
		return NewMemStore(), nil
	default:
		return nil, errors.New("unsupported storage engine: " + engine)
	}
}
