package vm

import "github.com/cancunvm/engine/crypto"

// opKeccak256 implements the KECCAK256 (SHA3) opcode, ported from the
// teacher's core/vm/iinstructions.go.opKeccak256 — pop the offset, peek
// the size slot, and overwrite it in place with the hash.
func opKeccak256(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	offset, _ := c.stack.pop()
	size := c.stack.peek()
	off, sz := offset.Uint64(), size.Uint64()
	c.memory.Resize(off + sz)
	data := c.memory.GetPtr(off, sz)
	hash := crypto.Keccak256(data)
	size.SetBytes(hash)
	return nil, nil, nil
}
