package vm

import (
	"sync"

	"github.com/holiman/uint256"
)

// maxStackSize is the Cancun stack depth limit (spec.md §3 "Invariants").
const maxStackSize = 1024

var stackPool = sync.Pool{
	New: func() any {
		return &Stack{data: make([]uint256.Int, 0, 16)}
	},
}

// Stack is the EVM's 256-bit word stack. Unlike the teacher's Stack,
// push/pop here enforce the depth limit themselves and report
// ErrStackUnderflow/ErrStackOverflow, since this package has no
// separate "baseCheck" validation pass ahead of execution.
type Stack struct {
	data []uint256.Int
}

func newStack() *Stack {
	return stackPool.Get().(*Stack)
}

func (st *Stack) free() {
	st.data = st.data[:0]
	stackPool.Put(st)
}

// Data returns the underlying word array, bottom first.
func (st *Stack) Data() []uint256.Int { return st.data }

func (st *Stack) push(d *uint256.Int) error {
	if len(st.data) >= maxStackSize {
		return ErrStackOverflow
	}
	st.data = append(st.data, *d)
	return nil
}

func (st *Stack) pop() (uint256.Int, error) {
	if len(st.data) == 0 {
		return uint256.Int{}, ErrStackUnderflow
	}
	ret := st.data[len(st.data)-1]
	st.data = st.data[:len(st.data)-1]
	return ret, nil
}

func (st *Stack) len() int { return len(st.data) }

// require reports whether at least n items are present.
func (st *Stack) require(n int) error {
	if st.len() < n {
		return ErrStackUnderflow
	}
	return nil
}

// swap exchanges the top item with the item n below it (swap(1) is SWAP1).
func (st *Stack) swap(n int) error {
	if err := st.require(n + 1); err != nil {
		return err
	}
	top := st.len() - 1
	st.data[top-n], st.data[top] = st.data[top], st.data[top-n]
	return nil
}

// dup pushes a copy of the n'th item from the top (dup(1) is DUP1).
func (st *Stack) dup(n int) error {
	if err := st.require(n); err != nil {
		return err
	}
	return st.push(&st.data[st.len()-n])
}

// peek returns a pointer to the top item without popping it.
func (st *Stack) peek() *uint256.Int {
	return &st.data[st.len()-1]
}

// back returns a pointer to the n'th item from the top (back(0) is the top).
func (st *Stack) back(n int) *uint256.Int {
	return &st.data[st.len()-n-1]
}
