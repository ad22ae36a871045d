// Package word supplies the byte/hash conversions that
// github.com/holiman/uint256 does not itself provide. All arithmetic
// (Add, Sub, Mul, Div, SDiv, Mod, SMod, AddMod, MulMod, Exp, ExtendSign,
// Lt, Gt, Slt, Sgt, Eq, IsZero, And, Or, Xor, Not, Byte, Lsh, Rsh, SRsh)
// lives on *uint256.Int itself and is used directly by the interpreter;
// this package only bridges to the engine's Address/Hash types.
package word

import (
	"github.com/cancunvm/engine/common"
	"github.com/holiman/uint256"
)

// Word is the 256-bit machine word the interpreter operates on.
type Word = uint256.Int

// New returns a zero-valued Word.
func New() *Word { return new(uint256.Int) }

// FromHash interprets a Hash's bytes as a big-endian Word.
func FromHash(h common.Hash) *Word {
	return new(uint256.Int).SetBytes(h[:])
}

// ToHash renders w as a big-endian, zero-padded 32-byte Hash.
func ToHash(w *Word) common.Hash {
	return common.Hash(w.Bytes32())
}

// FromAddress left-pads an Address into a Word, the representation used
// when an address is pushed onto the stack.
func FromAddress(a common.Address) *Word {
	return new(uint256.Int).SetBytes(a[:])
}

// ToAddress truncates w to its low 20 bytes, the representation used when
// an address is popped off the stack.
func ToAddress(w *Word) common.Address {
	b := w.Bytes20()
	return common.Address(b)
}

// FromUint64 returns a Word holding the given uint64.
func FromUint64(v uint64) *Word { return new(uint256.Int).SetUint64(v) }
