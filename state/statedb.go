// Package state implements spec.md §4.5–§4.7: AccountDB, TransientDB,
// and the State that bundles them with the block context, the
// transaction's logs, and the set of addresses created within the
// current transaction (needed by Cancun's SELFDESTRUCT rule).
package state

import (
	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/kvstore"
	mapset "github.com/deckarep/golang-set/v2"
)

// checkpointID bundles the per-database ids returned by a single
// top-level Checkpoint call.
type checkpointID struct {
	accounts  int
	transient int
	logLen    int
}

// State bundles the block context with the journaled account and
// transient databases, and the bookkeeping a single transaction needs:
// its log list and the set of addresses created in this transaction
// (spec.md §4.7, §4.8 SELFDESTRUCT).
type State struct {
	Block *BlockContext

	Accounts  *AccountDB
	Transient *TransientDB

	logs []Log

	createdThisTx mapset.Set[common.Address]
	// touched tracks every address/slot observed via a state-reading or
	// state-writing opcode in this transaction. Supplemented feature
	// (SPEC_FULL.md "Access list tracking") — no gas effect is derived
	// from it, it is only exposed for inspection/testing.
	touchedAddrs mapset.Set[common.Address]
	touchedSlots mapset.Set[[2]common.Hash]

	checkpoints []checkpointID
}

// New returns a fresh State over backend for the given block context.
func New(backend kvstore.Database, block *BlockContext) *State {
	return &State{
		Block:         block,
		Accounts:      NewAccountDB(backend),
		Transient:     NewTransientDB(),
		createdThisTx: mapset.NewThreadUnsafeSet[common.Address](),
		touchedAddrs:  mapset.NewThreadUnsafeSet[common.Address](),
		touchedSlots:  mapset.NewThreadUnsafeSet[[2]common.Hash](),
	}
}

// AddLog appends a log entry in execution order.
func (s *State) AddLog(l Log) { s.logs = append(s.logs, l) }

// Logs returns every log recorded so far. LOG opcodes call AddLog as
// they execute; logs added after a checkpoint that is later reverted are
// dropped by Revert, which truncates the list back to its length at
// that Checkpoint.
func (s *State) Logs() []Log { return s.logs }

// MarkCreated records that addr was created (via CREATE/CREATE2) within
// the current transaction, which is what Cancun's SELFDESTRUCT consults
// to decide whether to delete the account or merely zero its balance.
func (s *State) MarkCreated(addr common.Address) { s.createdThisTx.Add(addr) }

// WasCreatedThisTx reports whether addr was created in the current
// transaction.
func (s *State) WasCreatedThisTx(addr common.Address) bool {
	return s.createdThisTx.Contains(addr)
}

// TouchAddress records that addr was observed by a BALANCE/EXTCODE*/CALL
// family opcode this transaction.
func (s *State) TouchAddress(addr common.Address) { s.touchedAddrs.Add(addr) }

// TouchSlot records that (addr, slot) was observed by SLOAD/SSTORE this
// transaction.
func (s *State) TouchSlot(addr common.Address, slot common.Hash) {
	s.touchedAddrs.Add(addr)
	s.touchedSlots.Add([2]common.Hash{addr.Hash(), slot})
}

// AddressTouched reports whether addr has been observed this transaction.
func (s *State) AddressTouched(addr common.Address) bool {
	return s.touchedAddrs.Contains(addr)
}

// SlotTouched reports whether (addr, slot) has been observed this
// transaction.
func (s *State) SlotTouched(addr common.Address, slot common.Hash) bool {
	return s.touchedSlots.Contains([2]common.Hash{addr.Hash(), slot})
}

// TouchedAddresses returns every address observed this transaction, in
// no particular order. Used to build a post-execution state diff.
func (s *State) TouchedAddresses() []common.Address {
	return s.touchedAddrs.ToSlice()
}

// TouchedSlots returns every (address, slot) pair observed this
// transaction, in no particular order.
func (s *State) TouchedSlots() [][2]common.Hash {
	return s.touchedSlots.ToSlice()
}

// Checkpoint opens a nested savepoint spanning both AccountDB and
// TransientDB, per spec.md §4.7's unified checkpoint/commit/revert API.
func (s *State) Checkpoint() int {
	id := checkpointID{
		accounts:  s.Accounts.Checkpoint(),
		transient: s.Transient.Checkpoint(),
		logLen:    len(s.logs),
	}
	s.checkpoints = append(s.checkpoints, id)
	return len(s.checkpoints) - 1
}

// Commit merges the checkpoint named by id into its parent.
func (s *State) Commit(id int) {
	cp := s.popCheckpoint(id)
	s.Accounts.Commit(cp.accounts)
	s.Transient.Commit(cp.transient)
}

// Revert discards every state change made since the matching Checkpoint,
// including logs appended after it (spec.md §3 "Invariants": reverted
// frames drop their logs).
func (s *State) Revert(id int) {
	cp := s.popCheckpoint(id)
	s.Accounts.Discard(cp.accounts)
	s.Transient.Discard(cp.transient)
	s.logs = s.logs[:cp.logLen]
}

func (s *State) popCheckpoint(id int) checkpointID {
	if id != len(s.checkpoints)-1 {
		panic("state: commit/revert on non-topmost checkpoint")
	}
	cp := s.checkpoints[id]
	s.checkpoints = s.checkpoints[:id]
	return cp
}

// PersistTx flushes all committed state to the backend and resets
// transient storage and the created-this-tx set, as happens once at the
// end of a top-level transaction that succeeded.
func (s *State) PersistTx() error {
	if err := s.Accounts.Persist(); err != nil {
		return err
	}
	s.Transient.Reset()
	s.createdThisTx = mapset.NewThreadUnsafeSet[common.Address]()
	return nil
}

// DiscardTx resets transient storage and the created-this-tx set without
// persisting, as happens when a top-level transaction fails entirely
// (spec.md §7: "state is entirely discarded").
func (s *State) DiscardTx() {
	s.Transient.Reset()
	s.createdThisTx = mapset.NewThreadUnsafeSet[common.Address]()
}
