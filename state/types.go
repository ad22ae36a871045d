package state

import (
	"math/big"

	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/crypto"
	"github.com/cancunvm/engine/rlp"
	"github.com/holiman/uint256"
)

// AccountRecord is the canonical account row spec.md §3 defines:
// {nonce, balance, storage_root (opaque placeholder), code_hash}.
type AccountRecord struct {
	Nonce       uint64
	Balance     *uint256.Int
	StorageRoot common.Hash
	CodeHash    common.Hash
}

// emptyRootHash is the keccak256 of the empty RLP list, the fixed
// storage_root placeholder spec.md §6 calls for since no trie is
// maintained here.
var emptyRootHash = crypto.Keccak256Hash(rlp.EncodeList())

// EmptyCodeHash re-exports crypto.EmptyCodeHash for convenience.
var EmptyCodeHash = crypto.EmptyCodeHash

// NewAccountRecord returns a fresh, zero-valued account record with the
// placeholder storage root and the empty-code hash.
func NewAccountRecord() AccountRecord {
	return AccountRecord{
		Balance:     new(uint256.Int),
		StorageRoot: emptyRootHash,
		CodeHash:    EmptyCodeHash,
	}
}

// IsEmpty implements spec.md §3's account-emptiness rule:
// nonce=0 ∧ balance=0 ∧ code_hash=empty.
func (a AccountRecord) IsEmpty() bool {
	return a.Nonce == 0 && a.Balance.IsZero() && a.CodeHash == EmptyCodeHash
}

// EncodeRLP renders the record as the canonical RLP list
// [nonce, balance, storage_root, code_hash] (spec.md §6).
func (a AccountRecord) EncodeRLP() []byte {
	return rlp.EncodeList(
		rlp.EncodeUint64(a.Nonce),
		rlp.EncodeBytes(a.Balance.Bytes()),
		rlp.EncodeBytes(a.StorageRoot[:]),
		rlp.EncodeBytes(a.CodeHash[:]),
	)
}

// DecodeAccountRecord parses the RLP encoding produced by EncodeRLP.
func DecodeAccountRecord(b []byte) (AccountRecord, error) {
	items, err := rlp.DecodeList(b)
	if err != nil {
		return AccountRecord{}, err
	}
	if len(items) != 4 {
		return AccountRecord{}, rlp.ErrMalformed
	}
	return AccountRecord{
		Nonce:       new(big.Int).SetBytes(items[0]).Uint64(),
		Balance:     new(uint256.Int).SetBytes(items[1]),
		StorageRoot: common.BytesToHash(items[2]),
		CodeHash:    common.BytesToHash(items[3]),
	}, nil
}

// Log is an EVM event, appended to State in execution order; logs
// created within a reverted checkpoint are dropped along with it.
type Log struct {
	Address common.Address
	Topics  []common.Hash
	Data    []byte
}

// BlockContext is the read-only block information the BLOCK* opcode
// family and a handful of system opcodes observe (spec.md §3).
type BlockContext struct {
	Number       uint64
	Timestamp    uint64
	Coinbase     common.Address
	BaseFee      *big.Int
	ChainID      *big.Int
	GasLimit     uint64
	PrevRandao   common.Hash
	BlobBaseFee  *big.Int
	BlobHashes   []common.Hash
}
