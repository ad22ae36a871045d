package vm

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestStackPushPop(t *testing.T) {
	st := newStack()
	defer st.free()

	a := uint256.NewInt(1)
	b := uint256.NewInt(2)
	if err := st.push(a); err != nil {
		t.Fatalf("push a: %v", err)
	}
	if err := st.push(b); err != nil {
		t.Fatalf("push b: %v", err)
	}
	if st.len() != 2 {
		t.Fatalf("len = %d, want 2", st.len())
	}

	got, err := st.pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if !got.Eq(b) {
		t.Errorf("pop = %s, want %s", got.Hex(), b.Hex())
	}

	got, err = st.pop()
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if !got.Eq(a) {
		t.Errorf("pop = %s, want %s", got.Hex(), a.Hex())
	}
}

func TestStackUnderflow(t *testing.T) {
	st := newStack()
	defer st.free()

	if _, err := st.pop(); err != ErrStackUnderflow {
		t.Errorf("pop on empty stack = %v, want ErrStackUnderflow", err)
	}
	if err := st.require(1); err != ErrStackUnderflow {
		t.Errorf("require(1) on empty stack = %v, want ErrStackUnderflow", err)
	}
}

func TestStackOverflow(t *testing.T) {
	st := newStack()
	defer st.free()

	one := uint256.NewInt(1)
	for i := 0; i < maxStackSize; i++ {
		if err := st.push(one); err != nil {
			t.Fatalf("push %d: %v", i, err)
		}
	}
	if err := st.push(one); err != ErrStackOverflow {
		t.Errorf("push past limit = %v, want ErrStackOverflow", err)
	}
}

func TestStackDupAndSwap(t *testing.T) {
	st := newStack()
	defer st.free()

	st.push(uint256.NewInt(1))
	st.push(uint256.NewInt(2))
	st.push(uint256.NewInt(3))

	if err := st.dup(2); err != nil {
		t.Fatalf("dup(2): %v", err)
	}
	// stack is now [1,2,3,2] bottom to top.
	if top := st.peek(); !top.Eq(uint256.NewInt(2)) {
		t.Errorf("after dup(2), top = %s, want 2", top.Hex())
	}

	if err := st.swap(3); err != nil {
		t.Fatalf("swap(3): %v", err)
	}
	// top (2) swaps with the item 3 below it (the bottom 1).
	if top := st.peek(); !top.Eq(uint256.NewInt(1)) {
		t.Errorf("after swap(3), top = %s, want 1", top.Hex())
	}
	if bottom := st.back(3); !bottom.Eq(uint256.NewInt(2)) {
		t.Errorf("after swap(3), bottom = %s, want 2", bottom.Hex())
	}
}
