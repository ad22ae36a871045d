package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

var memoryPool = sync.Pool{
	New: func() any { return &Memory{} },
}

// Memory is the EVM's linear, byte-addressed, zero-initialized scratch
// space. It only ever grows, in 32-byte words, and callers are expected
// to call Resize before any Set/GetPtr/Copy that touches new ground
// (spec.md §3's memory model).
type Memory struct {
	store []byte
}

func newMemory() *Memory { return memoryPool.Get().(*Memory) }

func (m *Memory) free() {
	const maxBufferSize = 16 << 10
	if cap(m.store) <= maxBufferSize {
		m.store = m.store[:0]
		memoryPool.Put(m)
	}
}

// Set writes value into [offset, offset+size). The region must already
// be inside the memory bounds (call Resize first).
func (m *Memory) Set(offset, size uint64, value []byte) {
	if size > 0 {
		if offset+size > uint64(len(m.store)) {
			panic("vm: memory write out of bounds")
		}
		copy(m.store[offset:offset+size], value)
	}
}

// Set32 writes val, left-padded with zeroes to 32 bytes, at offset.
func (m *Memory) Set32(offset uint64, val *uint256.Int) {
	if offset+32 > uint64(len(m.store)) {
		panic("vm: memory write out of bounds")
	}
	val.PutUint256(m.store[offset:])
}

// Resize grows memory to at least size bytes, rounded up to the next
// 32-byte word (spec.md §4.2: size() is always a multiple of 32),
// zero-filling the new tail. It never shrinks.
func (m *Memory) Resize(size uint64) {
	size = toWordSize(size) * 32
	if uint64(m.Len()) < size {
		m.store = append(m.store, make([]byte, size-uint64(m.Len()))...)
	}
}

// GetCopy returns a freshly allocated copy of [offset, offset+size).
func (m *Memory) GetCopy(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	cpy := make([]byte, size)
	copy(cpy, m.store[offset:offset+size])
	return cpy
}

// GetPtr returns a slice aliasing [offset, offset+size) directly.
func (m *Memory) GetPtr(offset, size uint64) []byte {
	if size == 0 {
		return nil
	}
	return m.store[offset : offset+size]
}

// Len returns the current memory size in bytes.
func (m *Memory) Len() int { return len(m.store) }

// Data returns the backing slice.
func (m *Memory) Data() []byte { return m.store }

// Copy moves len bytes from src to dst within memory; src and dst may
// overlap (MCOPY, EIP-5656).
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	copy(m.store[dst:], m.store[src:src+length])
}
