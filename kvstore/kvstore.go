// Package kvstore defines the opaque persistent key-value backend
// spec.md §6 describes: a row-keyed store supporting atomic batch
// writes/deletes, plus an in-memory implementation for tests and a
// LevelDB-backed implementation for a real backing store.
package kvstore

import "errors"

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("kvstore: not found")

// Database is the opaque persistent key-value store AccountDB's overlays
// sit on top of. Keys are caller-namespaced (kind ++ key, see Namespace).
type Database interface {
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)
	NewBatch() Batch
	Close() error
}

// Batch collects a set of writes/deletes to be applied atomically.
type Batch interface {
	Put(key, value []byte)
	Delete(key []byte)
	Write() error
}

// Namespace prefixes a key with a row kind, matching spec.md §6's
// "(kind, key) -> value" addressing (kind ∈ {account_info,
// account_storage(address), code}).
func Namespace(kind, key []byte) []byte {
	out := make([]byte, 0, len(kind)+1+len(key))
	out = append(out, kind...)
	out = append(out, ':')
	out = append(out, key...)
	return out
}
