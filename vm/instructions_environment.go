package vm

import "github.com/holiman/uint256"

// Environment opcode bodies, ported from the teacher's
// core/vm/iinstructions.go. Everything here reads from c.msg and
// c.state.Accounts rather than a Contract/StateDB pair, since
// Computation fuses both roles.

func opAddress(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetBytes(c.msg.Target.Bytes())
	return nil, nil, c.stack.push(&v)
}

func opBalance(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	slot := c.stack.peek()
	addr := slot.Bytes20()
	c.state.TouchAddress(addr)
	slot.Set(c.state.Accounts.GetBalance(addr))
	return nil, nil, nil
}

func opOrigin(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetBytes(c.msg.Caller.Bytes())
	return nil, nil, c.stack.push(&v)
}

func opCaller(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetBytes(c.msg.Caller.Bytes())
	return nil, nil, c.stack.push(&v)
}

func opCallValue(c *Computation) (*uint64, []byte, error) {
	return nil, nil, c.stack.push(c.msg.Value)
}

func opCallDataLoad(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	x := c.stack.peek()
	if offset, overflow := x.Uint64WithOverflow(); !overflow {
		x.SetBytes(getData(c.msg.Data, offset, 32))
	} else {
		x.Clear()
	}
	return nil, nil, nil
}

func opCallDataSize(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(uint64(len(c.msg.Data)))
	return nil, nil, c.stack.push(&v)
}

func opCallDataCopy(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(3); err != nil {
		return nil, nil, err
	}
	memOffset, _ := c.stack.pop()
	dataOffset, _ := c.stack.pop()
	length, _ := c.stack.pop()
	dataOffset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		dataOffset64 = ^uint64(0)
	}
	memOffset64, length64 := memOffset.Uint64(), length.Uint64()
	c.memory.Resize(memOffset64 + length64)
	c.memory.Set(memOffset64, length64, getData(c.msg.Data, dataOffset64, length64))
	return nil, nil, nil
}

func opCodeSize(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(uint64(len(c.msg.Code)))
	return nil, nil, c.stack.push(&v)
}

func opCodeCopy(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(3); err != nil {
		return nil, nil, err
	}
	memOffset, _ := c.stack.pop()
	codeOffset, _ := c.stack.pop()
	length, _ := c.stack.pop()
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = ^uint64(0)
	}
	memOffset64, length64 := memOffset.Uint64(), length.Uint64()
	c.memory.Resize(memOffset64 + length64)
	c.memory.Set(memOffset64, length64, getData(c.msg.Code, codeOffset64, length64))
	return nil, nil, nil
}

func opExtCodeSize(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	slot := c.stack.peek()
	addr := slot.Bytes20()
	c.state.TouchAddress(addr)
	slot.SetUint64(uint64(c.state.Accounts.GetCodeSize(addr)))
	return nil, nil, nil
}

func opExtCodeCopy(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(4); err != nil {
		return nil, nil, err
	}
	a, _ := c.stack.pop()
	memOffset, _ := c.stack.pop()
	codeOffset, _ := c.stack.pop()
	length, _ := c.stack.pop()
	codeOffset64, overflow := codeOffset.Uint64WithOverflow()
	if overflow {
		codeOffset64 = ^uint64(0)
	}
	c.state.TouchAddress(a.Bytes20())
	code := c.state.Accounts.GetCode(a.Bytes20())
	memOffset64, length64 := memOffset.Uint64(), length.Uint64()
	c.memory.Resize(memOffset64 + length64)
	c.memory.Set(memOffset64, length64, getData(code, codeOffset64, length64))
	return nil, nil, nil
}

// opExtCodeHash follows the teacher's six-case contract: non-existent
// and empty accounts hash to zero, everything else hashes to its real
// code_hash (which is EmptyCodeHash for an existing account with no
// code), with no separate self-destruct bookkeeping: SELFDESTRUCT deletes
// the account record outright, which AccountIsEmpty reports as empty.
func opExtCodeHash(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	slot := c.stack.peek()
	addr := slot.Bytes20()
	c.state.TouchAddress(addr)
	if c.state.Accounts.AccountIsEmpty(addr) {
		slot.Clear()
	} else {
		h := c.state.Accounts.GetCodeHash(addr)
		slot.SetBytes(h[:])
	}
	return nil, nil, nil
}

func opReturnDataSize(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(uint64(c.rdata.size()))
	return nil, nil, c.stack.push(&v)
}

func opReturnDataCopy(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(3); err != nil {
		return nil, nil, err
	}
	memOffset, _ := c.stack.pop()
	dataOffset, _ := c.stack.pop()
	length, _ := c.stack.pop()
	offset64, overflow := dataOffset.Uint64WithOverflow()
	if overflow {
		return nil, nil, ErrOutOfBoundsRead
	}
	data, err := c.rdata.slice(offset64, length.Uint64())
	if err != nil {
		return nil, nil, err
	}
	memOffset64, length64 := memOffset.Uint64(), length.Uint64()
	c.memory.Resize(memOffset64 + length64)
	c.memory.Set(memOffset64, length64, data)
	return nil, nil, nil
}

func opSelfBalance(c *Computation) (*uint64, []byte, error) {
	v := c.state.Accounts.GetBalance(c.msg.Target)
	return nil, nil, c.stack.push(v)
}

func opChainID(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetFromBig(c.state.Block.ChainID)
	return nil, nil, c.stack.push(&v)
}

// opGasprice always pushes zero: this engine executes a bare message
// (spec.md §3), not a signed transaction envelope, so there is no
// gas price to report.
func opGasprice(c *Computation) (*uint64, []byte, error) {
	return nil, nil, c.stack.push(new(uint256.Int))
}
