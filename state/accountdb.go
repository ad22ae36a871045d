package state

import (
	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/crypto"
	"github.com/cancunvm/engine/kvstore"
	"github.com/cancunvm/engine/state/overlay"
	"github.com/holiman/uint256"
)

var (
	kindAccountInfo = []byte("account_info")
	kindCode        = []byte("code")
)

func storageKind(addr common.Address) []byte {
	return append([]byte("account_storage:"), addr[:]...)
}

// AccountDB composes the three overlays spec.md §4.5 describes: account
// records, code by hash, and one storage overlay per touched address.
// checkpoint/commit/discard fan out to all three kinds atomically under
// a single root id, exactly as §4.5's last paragraph requires.
type AccountDB struct {
	backend kvstore.Database
	info    *overlay.Overlay
	code    *overlay.Overlay
	storage map[common.Address]*overlay.Overlay
}

// NewAccountDB returns an AccountDB overlaying backend.
func NewAccountDB(backend kvstore.Database) *AccountDB {
	return &AccountDB{
		backend: backend,
		info:    overlay.New(backend, kindAccountInfo),
		code:    overlay.New(backend, kindCode),
		storage: make(map[common.Address]*overlay.Overlay),
	}
}

// storageOverlay returns (creating if necessary) the per-address storage
// overlay for addr, backfilling its checkpoint stack to the current
// depth so it moves in lock-step with info/code from here on.
func (db *AccountDB) storageOverlay(addr common.Address) *overlay.Overlay {
	ov, ok := db.storage[addr]
	if ok {
		return ov
	}
	ov = overlay.New(db.backend, storageKind(addr))
	for i := 0; i < db.info.Depth()-1; i++ {
		ov.Checkpoint()
	}
	db.storage[addr] = ov
	return ov
}

func (db *AccountDB) record(addr common.Address) AccountRecord {
	raw, ok := db.info.Get(addr[:])
	if !ok {
		return NewAccountRecord()
	}
	rec, err := DecodeAccountRecord(raw)
	if err != nil {
		return NewAccountRecord()
	}
	return rec
}

func (db *AccountDB) putRecord(addr common.Address, rec AccountRecord) {
	db.info.Set(addr[:], rec.EncodeRLP())
}

// AccountExists reports whether addr has ever been written (has a
// record in the overlay/backend), regardless of emptiness.
func (db *AccountDB) AccountExists(addr common.Address) bool {
	_, ok := db.info.Get(addr[:])
	return ok
}

// AccountIsEmpty reports whether addr is absent or empty per spec.md §3.
func (db *AccountDB) AccountIsEmpty(addr common.Address) bool {
	if !db.AccountExists(addr) {
		return true
	}
	return db.record(addr).IsEmpty()
}

// GetBalance returns addr's balance (zero if the account does not exist).
func (db *AccountDB) GetBalance(addr common.Address) *uint256.Int {
	return db.record(addr).Balance.Clone()
}

// SetBalance lazily instantiates the account if needed and sets its
// balance.
func (db *AccountDB) SetBalance(addr common.Address, balance *uint256.Int) {
	rec := db.record(addr)
	rec.Balance = balance.Clone()
	db.putRecord(addr, rec)
}

// AddBalance adds delta to addr's balance.
func (db *AccountDB) AddBalance(addr common.Address, delta *uint256.Int) {
	rec := db.record(addr)
	rec.Balance = new(uint256.Int).Add(rec.Balance, delta)
	db.putRecord(addr, rec)
}

// SubBalance subtracts delta from addr's balance.
func (db *AccountDB) SubBalance(addr common.Address, delta *uint256.Int) {
	rec := db.record(addr)
	rec.Balance = new(uint256.Int).Sub(rec.Balance, delta)
	db.putRecord(addr, rec)
}

// GetNonce returns addr's nonce (zero if the account does not exist).
func (db *AccountDB) GetNonce(addr common.Address) uint64 {
	return db.record(addr).Nonce
}

// SetNonce lazily instantiates the account if needed and sets its nonce.
func (db *AccountDB) SetNonce(addr common.Address, nonce uint64) {
	rec := db.record(addr)
	rec.Nonce = nonce
	db.putRecord(addr, rec)
}

// IncrementNonce increments addr's nonce by one.
func (db *AccountDB) IncrementNonce(addr common.Address) {
	rec := db.record(addr)
	rec.Nonce++
	db.putRecord(addr, rec)
}

// GetCodeHash returns addr's code_hash (the empty-code hash if the
// account does not exist or has no code).
func (db *AccountDB) GetCodeHash(addr common.Address) common.Hash {
	return db.record(addr).CodeHash
}

// GetCode returns addr's code bytes, or nil if it has none.
func (db *AccountDB) GetCode(addr common.Address) []byte {
	hash := db.GetCodeHash(addr)
	if hash == EmptyCodeHash {
		return nil
	}
	raw, ok := db.code.Get(hash[:])
	if !ok {
		return nil
	}
	return raw
}

// GetCodeSize returns len(GetCode(addr)) without copying the code.
func (db *AccountDB) GetCodeSize(addr common.Address) int {
	return len(db.GetCode(addr))
}

// SetCode lazily instantiates the account if needed, stores code in the
// code table keyed by its keccak256 hash, and points the account's
// code_hash at it. Writing code is expected to happen exactly once, on
// successful CREATE (spec.md §3 "Lifecycles").
func (db *AccountDB) SetCode(addr common.Address, code []byte) {
	hash := crypto.Keccak256Hash(code)
	db.code.Set(hash[:], code)
	rec := db.record(addr)
	rec.CodeHash = hash
	db.putRecord(addr, rec)
}

// GetStorage returns the value stored at (addr, key), or the zero hash
// if absent (spec.md §3: zero-valued entries are semantically absent).
func (db *AccountDB) GetStorage(addr common.Address, key common.Hash) common.Hash {
	raw, ok := db.storageOverlay(addr).Get(key[:])
	if !ok {
		return common.Hash{}
	}
	return common.BytesToHash(raw)
}

// SetStorage writes value at (addr, key). Writing the zero value deletes
// the entry so that it both reads back as zero and is committed to the
// backend as a deletion (spec.md §4.5). A write that does not change the
// stored value is still recorded, to preserve checkpoint structure.
func (db *AccountDB) SetStorage(addr common.Address, key, value common.Hash) {
	ov := db.storageOverlay(addr)
	if value.IsZero() {
		ov.Delete(key[:])
		return
	}
	ov.Set(key[:], value[:])
}

// DeleteAccount clears balance, nonce, and code_hash for addr, and drops
// every storage slot the overlay has observed for it. There is no trie
// to enumerate remaining backend-resident slots (spec.md §1 places the
// trie out of scope); any slot never touched in this process simply
// becomes unreachable once the account record is gone.
func (db *AccountDB) DeleteAccount(addr common.Address) {
	db.info.Delete(addr[:])
	ov := db.storageOverlay(addr)
	for _, k := range ov.PendingKeys() {
		ov.DeleteRaw(k)
	}
}

// Checkpoint pushes a new layer on every composed overlay (info, code,
// and every storage overlay touched so far) and returns the root id,
// which is exactly the id overlay.Overlay.Checkpoint itself returns for
// info (code and every storage overlay move in lock-step with it, so
// their own ids are always identical and can be safely discarded).
func (db *AccountDB) Checkpoint() int {
	id := db.info.Checkpoint()
	db.code.Checkpoint()
	for _, ov := range db.storage {
		ov.Checkpoint()
	}
	return int(id)
}

// Commit merges the checkpoint named by id into its parent across all
// composed overlays.
func (db *AccountDB) Commit(id int) {
	cid := overlay.CheckpointID(id)
	db.info.Commit(cid)
	db.code.Commit(cid)
	for _, ov := range db.storage {
		ov.Commit(cid)
	}
}

// Discard reverts the checkpoint named by id across all composed
// overlays, dropping every write made since the matching Checkpoint.
func (db *AccountDB) Discard(id int) {
	cid := overlay.CheckpointID(id)
	db.info.Discard(cid)
	db.code.Discard(cid)
	for _, ov := range db.storage {
		ov.Discard(cid)
	}
}

// Persist flushes every composed overlay's root layer to the backend.
// Only valid with no checkpoints open.
func (db *AccountDB) Persist() error {
	if err := db.info.Persist(); err != nil {
		return err
	}
	if err := db.code.Persist(); err != nil {
		return err
	}
	for _, ov := range db.storage {
		if err := ov.Persist(); err != nil {
			return err
		}
	}
	return nil
}
