package vm

import "github.com/holiman/uint256"

// CREATE/CALL-family opcode bodies, ported from the teacher's
// core/vm/iinstructions.go. Gas is not tracked anywhere in this engine,
// so the gas-stipend/refund bookkeeping the teacher threads through
// every one of these is simply absent; everything else (stack order,
// static-context checks, return-data handling) follows it directly.

func opCreate(c *Computation) (*uint64, []byte, error) {
	if err := c.requireMutable(); err != nil {
		return nil, nil, err
	}
	if err := c.stack.require(3); err != nil {
		return nil, nil, err
	}
	value, _ := c.stack.pop()
	offset, _ := c.stack.pop()
	size, _ := c.stack.pop()
	off, sz := offset.Uint64(), size.Uint64()
	c.memory.Resize(off + sz)
	initcode := c.memory.GetCopy(off, sz)

	ok, addr, _ := c.create(&value, initcode, nil)
	var result uint256.Int
	if ok {
		result.SetBytes(addr.Bytes())
	}
	return nil, nil, c.stack.push(&result)
}

func opCreate2(c *Computation) (*uint64, []byte, error) {
	if err := c.requireMutable(); err != nil {
		return nil, nil, err
	}
	if err := c.stack.require(4); err != nil {
		return nil, nil, err
	}
	value, _ := c.stack.pop()
	offset, _ := c.stack.pop()
	size, _ := c.stack.pop()
	salt, _ := c.stack.pop()
	off, sz := offset.Uint64(), size.Uint64()
	c.memory.Resize(off + sz)
	initcode := c.memory.GetCopy(off, sz)

	ok, addr, _ := c.create(&value, initcode, &salt)
	var result uint256.Int
	if ok {
		result.SetBytes(addr.Bytes())
	}
	return nil, nil, c.stack.push(&result)
}

func opCall(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(7); err != nil {
		return nil, nil, err
	}
	_, _ = c.stack.pop() // gas, unmetered
	addr, _ := c.stack.pop()
	value, _ := c.stack.pop()
	inOffset, _ := c.stack.pop()
	inSize, _ := c.stack.pop()
	retOffset, _ := c.stack.pop()
	retSize, _ := c.stack.pop()

	if c.isStatic() && !value.IsZero() {
		return nil, nil, ErrStaticStateChange
	}

	in := c.memory.GetPtr(inOffset.Uint64(), inSize.Uint64())
	ok, out := c.call(callKindCall, addr.Bytes20(), &value, in)
	return nil, nil, finishCall(c, ok, out, retOffset.Uint64(), retSize.Uint64())
}

func opCallCode(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(7); err != nil {
		return nil, nil, err
	}
	_, _ = c.stack.pop()
	addr, _ := c.stack.pop()
	value, _ := c.stack.pop()
	inOffset, _ := c.stack.pop()
	inSize, _ := c.stack.pop()
	retOffset, _ := c.stack.pop()
	retSize, _ := c.stack.pop()

	in := c.memory.GetPtr(inOffset.Uint64(), inSize.Uint64())
	ok, out := c.call(callKindCallCode, addr.Bytes20(), &value, in)
	return nil, nil, finishCall(c, ok, out, retOffset.Uint64(), retSize.Uint64())
}

func opDelegateCall(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(6); err != nil {
		return nil, nil, err
	}
	_, _ = c.stack.pop()
	addr, _ := c.stack.pop()
	inOffset, _ := c.stack.pop()
	inSize, _ := c.stack.pop()
	retOffset, _ := c.stack.pop()
	retSize, _ := c.stack.pop()

	in := c.memory.GetPtr(inOffset.Uint64(), inSize.Uint64())
	ok, out := c.call(callKindDelegateCall, addr.Bytes20(), new(uint256.Int), in)
	return nil, nil, finishCall(c, ok, out, retOffset.Uint64(), retSize.Uint64())
}

func opStaticCall(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(6); err != nil {
		return nil, nil, err
	}
	_, _ = c.stack.pop()
	addr, _ := c.stack.pop()
	inOffset, _ := c.stack.pop()
	inSize, _ := c.stack.pop()
	retOffset, _ := c.stack.pop()
	retSize, _ := c.stack.pop()

	in := c.memory.GetPtr(inOffset.Uint64(), inSize.Uint64())
	ok, out := c.call(callKindStaticCall, addr.Bytes20(), new(uint256.Int), in)
	return nil, nil, finishCall(c, ok, out, retOffset.Uint64(), retSize.Uint64())
}

// finishCall pushes the CALL family's success flag and copies the
// child's output into the caller's memory, per spec.md §4.8.
func finishCall(c *Computation, ok bool, out []byte, retOffset, retSize uint64) error {
	var result uint256.Int
	if ok {
		result.SetOne()
	}
	if err := c.stack.push(&result); err != nil {
		return err
	}
	c.memory.Resize(retOffset + retSize)
	c.memory.Set(retOffset, retSize, out)
	return nil
}

func opReturn(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	offset, _ := c.stack.pop()
	size, _ := c.stack.pop()
	off, sz := offset.Uint64(), size.Uint64()
	c.memory.Resize(off + sz)
	ret := c.memory.GetCopy(off, sz)
	if ret == nil {
		// The run loop halts on a non-nil res; a zero-size RETURN must
		// still end the frame rather than fall through to the next
		// instruction, so it cannot report its (empty) output as nil.
		ret = []byte{}
	}
	return nil, ret, nil
}

func opRevert(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(2); err != nil {
		return nil, nil, err
	}
	offset, _ := c.stack.pop()
	size, _ := c.stack.pop()
	off, sz := offset.Uint64(), size.Uint64()
	c.memory.Resize(off + sz)
	ret := c.memory.GetCopy(off, sz)
	return nil, ret, ErrExecutionReverted
}

func opSelfdestruct(c *Computation) (*uint64, []byte, error) {
	if err := c.requireMutable(); err != nil {
		return nil, nil, err
	}
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	beneficiary, _ := c.stack.pop()
	c.selfDestruct(beneficiary.Bytes20())
	return nil, nil, errStopToken
}
