package vm

import (
	"bytes"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemorySetAndGet(t *testing.T) {
	m := newMemory()
	defer m.free()

	m.Resize(64)
	m.Set(0, 4, []byte{1, 2, 3, 4})
	if got := m.GetCopy(0, 4); !bytes.Equal(got, []byte{1, 2, 3, 4}) {
		t.Errorf("GetCopy(0,4) = %x, want 01020304", got)
	}
	if m.Len() != 64 {
		t.Errorf("Len() = %d, want 64", m.Len())
	}
}

func TestMemoryResizeNeverShrinks(t *testing.T) {
	m := newMemory()
	defer m.free()

	m.Resize(32)
	m.Resize(8)
	if m.Len() != 32 {
		t.Errorf("Len() = %d, want 32 (Resize must not shrink)", m.Len())
	}
}

func TestMemorySet32(t *testing.T) {
	m := newMemory()
	defer m.free()

	m.Resize(32)
	v := uint256.NewInt(0xdeadbeef)
	m.Set32(0, v)
	got := m.GetCopy(0, 32)
	var want [32]byte
	v.PutUint256(want[:])
	if !bytes.Equal(got, want[:]) {
		t.Errorf("Set32 wrote %x, want %x", got, want)
	}
}

func TestMemoryCopyOverlapping(t *testing.T) {
	m := newMemory()
	defer m.free()

	m.Resize(16)
	m.Set(0, 8, []byte{0, 1, 2, 3, 4, 5, 6, 7})
	// Copy 8 bytes from offset 1 to offset 0: overlapping shift left.
	// The trailing byte at the old offset 8 was never Set, so it reads
	// back as the zero-fill Resize left there.
	m.Copy(0, 1, 8)
	got := m.GetCopy(0, 8)
	want := []byte{1, 2, 3, 4, 5, 6, 7, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("overlapping Copy = %x, want %x", got, want)
	}
}
