package vm

import (
	"sync"

	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/crypto"
)

// bitvec maps bytes in code: an unset bit means the byte is an opcode,
// a set bit means it's PUSHxx immediate data. Ported from the teacher's
// core/vm/analysis_legacy.go legacy (non-EOF) code bitmap.
type bitvec []byte

const (
	set2BitsMask = uint16(0b11)
	set3BitsMask = uint16(0b111)
	set4BitsMask = uint16(0b1111)
	set5BitsMask = uint16(0b1_1111)
	set6BitsMask = uint16(0b11_1111)
	set7BitsMask = uint16(0b111_1111)
)

func (bits bitvec) set1(pos uint64) {
	bits[pos/8] |= 1 << (pos % 8)
}

func (bits bitvec) setN(flag uint16, pos uint64) {
	a := flag << (pos % 8)
	bits[pos/8] |= byte(a)
	if b := byte(a >> 8); b != 0 {
		bits[pos/8+1] = b
	}
}

func (bits bitvec) set8(pos uint64) {
	a := byte(0xFF << (pos % 8))
	bits[pos/8] |= a
	bits[pos/8+1] = ^a
}

func (bits bitvec) set16(pos uint64) {
	a := byte(0xFF << (pos % 8))
	bits[pos/8] |= a
	bits[pos/8+1] = 0xFF
	bits[pos/8+2] = ^a
}

// isCode reports whether pos is an opcode byte (as opposed to PUSHxx
// immediate data).
func (bits bitvec) isCode(pos uint64) bool {
	return ((bits[pos/8] >> (pos % 8)) & 1) == 0
}

// codeBitmap computes the bitvec for code. The result is 4 bytes longer
// than strictly necessary, so a trailing PUSH32 can set bits past the
// end of the actual code without a bounds check.
func codeBitmap(code []byte) bitvec {
	bits := make(bitvec, len(code)/8+1+4)
	for pc := uint64(0); pc < uint64(len(code)); {
		op := OpCode(code[pc])
		pc++
		if op < PUSH1 || op > PUSH32 {
			continue
		}
		numbits := op - PUSH1 + 1
		if numbits >= 8 {
			for ; numbits >= 16; numbits -= 16 {
				bits.set16(pc)
				pc += 16
			}
			for ; numbits >= 8; numbits -= 8 {
				bits.set8(pc)
				pc += 8
			}
		}
		switch numbits {
		case 1:
			bits.set1(pc)
			pc++
		case 2:
			bits.setN(set2BitsMask, pc)
			pc += 2
		case 3:
			bits.setN(set3BitsMask, pc)
			pc += 3
		case 4:
			bits.setN(set4BitsMask, pc)
			pc += 4
		case 5:
			bits.setN(set5BitsMask, pc)
			pc += 5
		case 6:
			bits.setN(set6BitsMask, pc)
			pc += 6
		case 7:
			bits.setN(set7BitsMask, pc)
			pc += 7
		}
	}
	return bits
}

// jumpdestCache memoizes codeBitmap results per code hash, since the
// same deployed code is analyzed on every CALL into it.
var jumpdestCache sync.Map // common.Hash -> bitvec

func analysis(codeHash common.Hash, code []byte) bitvec {
	if v, ok := jumpdestCache.Load(codeHash); ok {
		return v.(bitvec)
	}
	bits := codeBitmap(code)
	jumpdestCache.Store(codeHash, bits)
	return bits
}

// validJumpDest reports whether dest is a JUMPDEST opcode byte (not
// PUSHxx immediate data) within code, per spec.md §4.2's JUMP/JUMPI rule.
func validJumpDest(codeHash common.Hash, code []byte, dest uint64) bool {
	if dest >= uint64(len(code)) {
		return false
	}
	if OpCode(code[dest]) != JUMPDEST {
		return false
	}
	return analysis(codeHash, code).isCode(dest)
}

// codeHashOf is a convenience wrapper so callers that only have raw code
// (e.g. the top-level init code of a CREATE) can still use the cache.
func codeHashOf(code []byte) common.Hash {
	return crypto.Keccak256Hash(code)
}
