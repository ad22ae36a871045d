package state

import (
	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/kvstore"
	"github.com/cancunvm/engine/state/overlay"
)

// TransientDB implements EIP-1153 transient storage: a (address, key) ->
// word map scoped to a single top-level transaction (spec.md §4.6). It
// reuses the same layer-stack checkpoint machinery as AccountDB's
// overlays, but with no backing store — it is never persisted, and is
// reset to empty at top-level commit or revert.
type TransientDB struct {
	ov *overlay.Overlay
}

// discardedBackend is an always-empty Database, giving TransientDB's
// overlay something to "fall through" to that never yields a value.
type discardedBackend struct{}

func (discardedBackend) Get(key []byte) ([]byte, error) { return nil, kvstore.ErrNotFound }
func (discardedBackend) Has(key []byte) (bool, error)    { return false, nil }
func (discardedBackend) NewBatch() kvstore.Batch         { return discardedBatch{} }
func (discardedBackend) Close() error                    { return nil }

type discardedBatch struct{}

func (discardedBatch) Put(key, value []byte) {}
func (discardedBatch) Delete(key []byte)     {}
func (discardedBatch) Write() error          { return nil }

// NewTransientDB returns an empty TransientDB.
func NewTransientDB() *TransientDB {
	return &TransientDB{ov: overlay.New(discardedBackend{}, []byte("transient"))}
}

func transientKey(addr common.Address, slot common.Hash) []byte {
	k := make([]byte, 0, len(addr)+len(slot))
	k = append(k, addr[:]...)
	k = append(k, slot[:]...)
	return k
}

// Get returns the transient value at (addr, slot), or the zero hash.
func (t *TransientDB) Get(addr common.Address, slot common.Hash) common.Hash {
	raw, ok := t.ov.Get(transientKey(addr, slot))
	if !ok {
		return common.Hash{}
	}
	return common.BytesToHash(raw)
}

// Set writes value at (addr, slot). A zero value deletes the entry,
// mirroring AccountDB.SetStorage's convention.
func (t *TransientDB) Set(addr common.Address, slot, value common.Hash) {
	if value.IsZero() {
		t.ov.Delete(transientKey(addr, slot))
		return
	}
	t.ov.Set(transientKey(addr, slot), value[:])
}

// Checkpoint/Commit/Discard mirror AccountDB's, scoped to the single
// transient overlay.
func (t *TransientDB) Checkpoint() int {
	return int(t.ov.Checkpoint())
}

func (t *TransientDB) Commit(id int) {
	t.ov.Commit(overlay.CheckpointID(id))
}

func (t *TransientDB) Discard(id int) {
	t.ov.Discard(overlay.CheckpointID(id))
}

// Reset drops every layer and returns TransientDB to empty, as happens
// at top-level transaction commit or revert (spec.md §4.6).
func (t *TransientDB) Reset() {
	t.ov = overlay.New(discardedBackend{}, []byte("transient"))
}
