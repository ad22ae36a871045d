package vm

import (
	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/crypto"
	"github.com/cancunvm/engine/precompiles"
	"github.com/cancunvm/engine/state"
	"github.com/holiman/uint256"
)

const maxCallDepth = 1024
const maxCodeSize = 24576

// Computation is a single call frame: the fusion of the teacher's
// Contract (calling context) and EVMInterpreter.Run (the decode-dispatch
// loop), as spec.md Design Notes §9 suggests — this package has no
// separate EVM orchestrator object, Computation both executes its own
// code and spawns the child Computations CALL/CREATE need.
type Computation struct {
	state *state.State
	msg   ExecutionMessage

	stack  *Stack
	memory *Memory
	rdata  returnData

	pc       uint64
	output   []byte
	err      error
	reverted bool

	codeHash common.Hash

	// onStep is a supplemented tracer-style hook (SPEC_FULL.md "per-step
	// hook"); nil unless set from inside this package, and copied into
	// every child frame.
	onStep func(pc uint64, op OpCode, depth int)
}

// NewComputation constructs a call frame for msg over st. Callers at the
// engine boundary construct the root frame directly; child frames are
// constructed internally by call/create.
func NewComputation(st *state.State, msg ExecutionMessage) *Computation {
	return &Computation{
		state:    st,
		msg:      msg,
		stack:    newStack(),
		memory:   newMemory(),
		codeHash: codeHashOf(msg.Code),
	}
}

func (c *Computation) isStatic() bool { return c.msg.IsStatic }

// requireMutable returns ErrStaticStateChange if this frame is static.
func (c *Computation) requireMutable() error {
	if c.isStatic() {
		return ErrStaticStateChange
	}
	return nil
}

// Run decodes and executes c.msg.Code from pc 0 until a halting
// instruction, an error, or the end of code (implicit STOP), per spec.md
// §4.8's run loop. The returned output is the RETURN/REVERT payload (nil
// for STOP); err is nil on normal success, ErrExecutionReverted on an
// explicit REVERT, or a halting error otherwise.
func (c *Computation) Run() (output []byte, err error) {
	defer func() {
		c.stack.free()
		c.memory.free()
	}()

	code := c.msg.Code
	if len(code) == 0 {
		return nil, nil
	}

	for int(c.pc) < len(code) {
		op := OpCode(code[c.pc])
		if c.onStep != nil {
			c.onStep(c.pc, op, c.msg.Depth)
		}

		if op.IsPush() {
			n := int(op - PUSH0)
			c.pc++
			var buf [32]byte
			end := int(c.pc) + n
			if end > len(code) {
				end = len(code)
			}
			copy(buf[32-n:], code[c.pc:end])
			var w uint256.Int
			w.SetBytes(buf[:])
			if err := c.stack.push(&w); err != nil {
				return c.halt(nil, err)
			}
			c.pc = uint64(end)
			continue
		}

		exec := cancunInstructionSet[op]
		if exec == nil {
			return c.halt(nil, ErrInvalidInstruction)
		}

		next, res, err := exec(c)
		if err != nil {
			if err == errStopToken {
				return c.halt(nil, nil)
			}
			return c.halt(res, err)
		}
		if res != nil {
			// RETURN/REVERT set res and end the frame explicitly.
			return c.halt(res, nil)
		}
		if next != nil {
			c.pc = *next
		} else {
			c.pc++
		}
	}
	return c.halt(nil, nil)
}

func (c *Computation) halt(output []byte, err error) ([]byte, error) {
	c.output = output
	c.err = err
	c.reverted = err == ErrExecutionReverted
	return output, err
}

// call implements CALL/CALLCODE/DELEGATECALL/STATICCALL per spec.md
// §4.8 "Sub-calls". Returns ok=false on any recoverable failure (depth
// exceeded, insufficient balance, child error/revert) — the caller pushes
// 0 and continues; it never itself returns an error.
func (c *Computation) call(kind callKind, addr common.Address, value *uint256.Int, input []byte) (ok bool, out []byte) {
	st := c.state
	newDepth := c.msg.Depth + 1
	if newDepth > maxCallDepth {
		c.rdata.set(nil)
		return false, nil
	}

	self := c.msg.Target
	transferValue := value
	if kind == callKindDelegateCall {
		transferValue = nil
	}
	if transferValue != nil && !transferValue.IsZero() {
		if st.Accounts.GetBalance(self).Lt(transferValue) {
			c.rdata.set(nil)
			return false, nil
		}
	}

	cp := st.Checkpoint()
	ok = c.runCall(kind, self, addr, transferValue, value, input, newDepth, &out)
	if ok {
		st.Commit(cp)
	} else {
		st.Revert(cp)
	}
	c.rdata.set(out)
	return ok, out
}

func (c *Computation) runCall(kind callKind, self, addr common.Address, transferValue, callValue *uint256.Int, input []byte, newDepth int, out *[]byte) bool {
	st := c.state
	if transferValue != nil && !transferValue.IsZero() {
		dest := addr
		if kind == callKindCallCode {
			dest = self
		}
		st.Accounts.SubBalance(self, transferValue)
		st.Accounts.AddBalance(dest, transferValue)
	}
	st.TouchAddress(addr)

	if precompiles.IsPrecompile(addr) {
		res, err := precompiles.Run(addr, input)
		if err != nil {
			return false
		}
		*out = res
		return true
	}

	var childAddress, codeAddress, childCaller common.Address
	childValue := callValue
	switch kind {
	case callKindCall, callKindStaticCall:
		childAddress, codeAddress, childCaller = addr, addr, self
	case callKindCallCode:
		childAddress, codeAddress, childCaller = self, addr, self
	case callKindDelegateCall:
		childAddress, codeAddress, childCaller = self, addr, c.msg.Caller
		childValue = c.msg.Value
	}

	code := st.Accounts.GetCode(codeAddress)
	childMsg := ExecutionMessage{
		Caller:      childCaller,
		Target:      childAddress,
		CodeAddress: codeAddress,
		Value:       childValue,
		Data:        input,
		Code:        code,
		Depth:       newDepth,
		IsStatic:    c.msg.IsStatic || kind == callKindStaticCall,
	}
	child := NewComputation(st, childMsg)
	child.onStep = c.onStep
	res, err := child.Run()
	*out = res
	return err == nil
}

// create implements CREATE/CREATE2 per spec.md §4.8. salt is nil for
// CREATE. Like call, it never returns an error: ok=false means the
// caller pushes the zero address.
func (c *Computation) create(value *uint256.Int, initcode []byte, salt *uint256.Int) (ok bool, newAddr common.Address, out []byte) {
	st := c.state
	newDepth := c.msg.Depth + 1
	if newDepth > maxCallDepth {
		c.rdata.set(nil)
		return false, common.Address{}, nil
	}
	sender := c.msg.Target
	if !value.IsZero() && st.Accounts.GetBalance(sender).Lt(value) {
		c.rdata.set(nil)
		return false, common.Address{}, nil
	}

	nonce := st.Accounts.GetNonce(sender)
	st.Accounts.SetNonce(sender, nonce+1)

	var addr common.Address
	if salt != nil {
		saltHash := common.Hash(salt.Bytes32())
		addr = crypto.CreateAddress2(sender, saltHash, crypto.Keccak256(initcode))
	} else {
		addr = crypto.CreateAddress(sender, nonce)
	}
	st.TouchAddress(addr)

	if st.Accounts.GetNonce(addr) != 0 || len(st.Accounts.GetCode(addr)) != 0 {
		c.rdata.set(nil)
		return false, common.Address{}, nil
	}

	cp := st.Checkpoint()
	ok, out = c.runCreate(sender, addr, value, initcode, newDepth)
	if ok {
		st.Commit(cp)
		c.rdata.set(nil)
		return true, addr, nil
	}
	st.Revert(cp)
	c.rdata.set(out)
	return false, common.Address{}, out
}

func (c *Computation) runCreate(sender, addr common.Address, value *uint256.Int, initcode []byte, newDepth int) (bool, []byte) {
	st := c.state
	if !value.IsZero() {
		st.Accounts.SubBalance(sender, value)
		st.Accounts.AddBalance(addr, value)
	}
	st.MarkCreated(addr)

	childMsg := ExecutionMessage{
		Caller:      sender,
		Target:      addr,
		CodeAddress: addr,
		Value:       value,
		Code:        initcode,
		Depth:       newDepth,
		IsStatic:    c.msg.IsStatic,
		IsCreate:    true,
	}
	child := NewComputation(st, childMsg)
	child.onStep = c.onStep
	out, err := child.Run()
	if err != nil {
		return false, out
	}
	if len(out) > maxCodeSize {
		return false, out
	}
	if len(out) > 0 && out[0] == 0xEF {
		return false, out
	}
	st.Accounts.SetCode(addr, out)
	return true, out
}

// selfDestruct implements SELFDESTRUCT per spec.md §4.8: if addr was
// created in this transaction, its balance moves to beneficiary and the
// account is deleted; otherwise only the balance moves.
func (c *Computation) selfDestruct(beneficiary common.Address) {
	st := c.state
	self := c.msg.Target
	balance := st.Accounts.GetBalance(self)
	if !balance.IsZero() {
		st.Accounts.SubBalance(self, balance)
		st.Accounts.AddBalance(beneficiary, balance)
	}
	if st.WasCreatedThisTx(self) {
		st.Accounts.DeleteAccount(self)
	}
}

type callKind int

const (
	callKindCall callKind = iota
	callKindCallCode
	callKindDelegateCall
	callKindStaticCall
)
