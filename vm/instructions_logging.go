package vm

import (
	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/state"
)

// makeLog builds a LOG0..LOG4 handler for the given topic count, ported
// from the teacher's core/vm/iinstructions.go makeLog.
func makeLog(n int) executionFunc {
	return func(c *Computation) (*uint64, []byte, error) {
		if err := c.requireMutable(); err != nil {
			return nil, nil, err
		}
		if err := c.stack.require(2 + n); err != nil {
			return nil, nil, err
		}
		mStart, _ := c.stack.pop()
		mSize, _ := c.stack.pop()
		topics := make([]common.Hash, n)
		for i := 0; i < n; i++ {
			t, _ := c.stack.pop()
			topics[i] = t.Bytes32()
		}
		off, sz := mStart.Uint64(), mSize.Uint64()
		c.memory.Resize(off + sz)
		data := c.memory.GetCopy(off, sz)
		c.state.AddLog(state.Log{
			Address: c.msg.Target,
			Topics:  topics,
			Data:    data,
		})
		return nil, nil, nil
	}
}
