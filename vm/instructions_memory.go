package vm

import "github.com/holiman/uint256"

// Stack, memory, storage, and control-flow opcode bodies, ported from
// the teacher's core/vm/iinstructions.go and core/vm/eips.go.

func opPop(c *Computation) (*uint64, []byte, error) {
	_, err := c.stack.pop()
	return nil, nil, err
}

func opMload(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	v := c.stack.peek()
	offset := v.Uint64()
	c.memory.Resize(offset + 32)
	v.SetBytes(c.memory.GetPtr(offset, 32))
	return nil, nil, nil
}

func opMstore(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	mStart, _ := c.stack.pop()
	val, _ := c.stack.pop()
	off := mStart.Uint64()
	c.memory.Resize(off + 32)
	c.memory.Set32(off, &val)
	return nil, nil, nil
}

func opMstore8(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	off, _ := c.stack.pop()
	val, _ := c.stack.pop()
	offset := off.Uint64()
	c.memory.Resize(offset + 1)
	c.memory.Data()[offset] = byte(val.Uint64())
	return nil, nil, nil
}

func opMsize(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(uint64(c.memory.Len()))
	return nil, nil, c.stack.push(&v)
}

// opMcopy implements MCOPY (EIP-5656); overlap is handled by Memory.Copy.
func opMcopy(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(3); err != nil {
		return nil, nil, err
	}
	dst, _ := c.stack.pop()
	src, _ := c.stack.pop()
	length, _ := c.stack.pop()
	d, s, l := dst.Uint64(), src.Uint64(), length.Uint64()
	if l == 0 {
		return nil, nil, nil
	}
	need := d
	if s > need {
		need = s
	}
	c.memory.Resize(need + l)
	c.memory.Copy(d, s, l)
	return nil, nil, nil
}

func opSload(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	loc := c.stack.peek()
	hash := loc.Bytes32()
	c.state.TouchSlot(c.msg.Target, hash)
	val := c.state.Accounts.GetStorage(c.msg.Target, hash)
	loc.SetBytes(val[:])
	return nil, nil, nil
}

func opSstore(c *Computation) (*uint64, []byte, error) {
	if err := c.requireMutable(); err != nil {
		return nil, nil, err
	}
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	loc, _ := c.stack.pop()
	val, _ := c.stack.pop()
	key := loc.Bytes32()
	c.state.TouchSlot(c.msg.Target, key)
	c.state.Accounts.SetStorage(c.msg.Target, key, val.Bytes32())
	return nil, nil, nil
}

func opTload(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	loc := c.stack.peek()
	val := c.state.Transient.Get(c.msg.Target, loc.Bytes32())
	loc.SetBytes(val[:])
	return nil, nil, nil
}

func opTstore(c *Computation) (*uint64, []byte, error) {
	if err := c.requireMutable(); err != nil {
		return nil, nil, err
	}
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	loc, _ := c.stack.pop()
	val, _ := c.stack.pop()
	c.state.Transient.Set(c.msg.Target, loc.Bytes32(), val.Bytes32())
	return nil, nil, nil
}

func opJump(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	pos, _ := c.stack.pop()
	dest := pos.Uint64()
	if !pos.IsUint64() || !validJumpDest(c.codeHash, c.msg.Code, dest) {
		return nil, nil, ErrInvalidJumpDestination
	}
	return &dest, nil, nil
}

func opJumpi(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	pos, _ := c.stack.pop()
	cond, _ := c.stack.pop()
	if cond.IsZero() {
		return nil, nil, nil
	}
	dest := pos.Uint64()
	if !pos.IsUint64() || !validJumpDest(c.codeHash, c.msg.Code, dest) {
		return nil, nil, ErrInvalidJumpDestination
	}
	return &dest, nil, nil
}

func opJumpdest(c *Computation) (*uint64, []byte, error) { return nil, nil, nil }

func opPc(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(c.pc)
	return nil, nil, c.stack.push(&v)
}

func opPush0(c *Computation) (*uint64, []byte, error) {
	return nil, nil, c.stack.push(new(uint256.Int))
}

func makeDup(n int) executionFunc {
	return func(c *Computation) (*uint64, []byte, error) {
		return nil, nil, c.stack.dup(n)
	}
}

func makeSwap(n int) executionFunc {
	return func(c *Computation) (*uint64, []byte, error) {
		return nil, nil, c.stack.swap(n)
	}
}

func opStop(c *Computation) (*uint64, []byte, error) {
	return nil, nil, errStopToken
}

func opInvalid(c *Computation) (*uint64, []byte, error) {
	return nil, nil, ErrInvalidInstruction
}
