package vm

// executionFunc is an opcode handler. next is non-nil only for JUMP/
// JUMPI (it sets pc directly); output is non-nil only for RETURN/REVERT
// (it halts the frame with that data); err == errStopToken signals a
// clean STOP, any other non-nil err halts the frame with that error.
//
// The teacher's own jump_table.go (the operation struct and the
// frontier..cancun instruction-set ladder) is missing from this copy —
// only core/vm/jump_table_export.go's thin accessors survive. This
// table is built directly from the opcode handlers in
// core/vm/iinstructions.go and core/vm/eips.go instead, collapsed to a
// single Cancun-only set since gas accounting and historical forks are
// out of scope.
type executionFunc func(c *Computation) (next *uint64, output []byte, err error)

// cancunInstructionSet maps every opcode this engine supports to its
// handler. PUSH1..PUSH32 are handled specially in Run's decode loop and
// have no entry here; PUSH0 does, since it carries no immediate bytes.
var cancunInstructionSet [256]executionFunc

func init() {
	set := func(op OpCode, fn executionFunc) { cancunInstructionSet[op] = fn }

	set(STOP, opStop)
	set(ADD, opAdd)
	set(MUL, opMul)
	set(SUB, opSub)
	set(DIV, opDiv)
	set(SDIV, opSdiv)
	set(MOD, opMod)
	set(SMOD, opSmod)
	set(ADDMOD, opAddmod)
	set(MULMOD, opMulmod)
	set(EXP, opExp)
	set(SIGNEXTEND, opSignExtend)

	set(LT, opLt)
	set(GT, opGt)
	set(SLT, opSlt)
	set(SGT, opSgt)
	set(EQ, opEq)
	set(ISZERO, opIszero)
	set(AND, opAnd)
	set(OR, opOr)
	set(XOR, opXor)
	set(NOT, opNot)
	set(BYTE, opByte)
	set(SHL, opSHL)
	set(SHR, opSHR)
	set(SAR, opSAR)

	set(KECCAK256, opKeccak256)

	set(ADDRESS, opAddress)
	set(BALANCE, opBalance)
	set(ORIGIN, opOrigin)
	set(CALLER, opCaller)
	set(CALLVALUE, opCallValue)
	set(CALLDATALOAD, opCallDataLoad)
	set(CALLDATASIZE, opCallDataSize)
	set(CALLDATACOPY, opCallDataCopy)
	set(CODESIZE, opCodeSize)
	set(CODECOPY, opCodeCopy)
	set(GASPRICE, opGasprice)
	set(EXTCODESIZE, opExtCodeSize)
	set(EXTCODECOPY, opExtCodeCopy)
	set(RETURNDATASIZE, opReturnDataSize)
	set(RETURNDATACOPY, opReturnDataCopy)
	set(EXTCODEHASH, opExtCodeHash)

	set(BLOCKHASH, opBlockhash)
	set(COINBASE, opCoinbase)
	set(TIMESTAMP, opTimestamp)
	set(NUMBER, opNumber)
	set(PREVRANDAO, opPrevRandao)
	set(GASLIMIT, opGasLimit)
	set(CHAINID, opChainID)
	set(SELFBALANCE, opSelfBalance)
	set(BASEFEE, opBaseFee)
	set(BLOBHASH, opBlobHash)
	set(BLOBBASEFEE, opBlobBaseFee)

	set(POP, opPop)
	set(MLOAD, opMload)
	set(MSTORE, opMstore)
	set(MSTORE8, opMstore8)
	set(SLOAD, opSload)
	set(SSTORE, opSstore)
	set(JUMP, opJump)
	set(JUMPI, opJumpi)
	set(PC, opPc)
	set(MSIZE, opMsize)
	set(GAS, opGas)
	set(JUMPDEST, opJumpdest)
	set(TLOAD, opTload)
	set(TSTORE, opTstore)
	set(MCOPY, opMcopy)
	set(PUSH0, opPush0)

	for n := 1; n <= 16; n++ {
		set(DUP1+OpCode(n-1), makeDup(n))
		set(SWAP1+OpCode(n-1), makeSwap(n))
	}
	for n := 0; n <= 4; n++ {
		set(LOG0+OpCode(n), makeLog(n))
	}

	set(CREATE, opCreate)
	set(CALL, opCall)
	set(CALLCODE, opCallCode)
	set(RETURN, opReturn)
	set(DELEGATECALL, opDelegateCall)
	set(CREATE2, opCreate2)
	set(STATICCALL, opStaticCall)
	set(REVERT, opRevert)
	set(INVALID, opInvalid)
	set(SELFDESTRUCT, opSelfdestruct)
}
