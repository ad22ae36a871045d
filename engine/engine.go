// Package engine is the top-level entry point spec.md §6 describes:
// execute_bytecode(sender, to, value, data, code, block_ctx) -> result.
// It wires together state.State and the root vm.Computation the way
// the teacher's core/state_transition.go wires together StateDB and
// EVMInterpreter for a single transaction, minus the gas-purchase and
// refund bookkeeping a Non-goal removes.
package engine

import (
	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/crypto"
	"github.com/cancunvm/engine/log"
	"github.com/cancunvm/engine/state"
	"github.com/cancunvm/engine/vm"
	"github.com/holiman/uint256"
)

// AccountDiff is the observable change to a single touched account:
// its current balance/nonce/code hash (zero balance and nonce and the
// empty-code hash if the account does not exist, e.g. after a
// SELFDESTRUCT deletion) plus any storage slots of that account touched
// during execution.
type AccountDiff struct {
	Address  common.Address
	Exists   bool
	Balance  *uint256.Int
	Nonce    uint64
	CodeHash common.Hash
	Storage  map[common.Hash]common.Hash
}

// StateDiff is the set of accounts observed (read or written) during
// one execute_bytecode call, keyed by address. spec.md §6 calls for a
// "state_diff" in the result without prescribing its shape; this one
// follows from State's existing touched-address/slot bookkeeping
// (spec.md §3's supplemented access-list tracking) rather than
// introducing a second, redundant change-tracking mechanism.
type StateDiff map[common.Address]*AccountDiff

// Result is execute_bytecode's return value.
type Result struct {
	Success bool
	Output  []byte
	Logs    []state.Log
	Diff    StateDiff
	Err     error
}

// Execute runs code as the recipient of a call from sender carrying
// value and data, against st, and returns the outcome. to == the zero
// address means contract creation: code is treated as initcode and the
// new contract's address is computed from sender's nonce.
//
// On success, st's root-level changes are left committed (callers that
// want them durable still need to call st.Accounts.Persist()). On
// failure, every change this call made is rolled back before Execute
// returns, per spec.md §7 ("state is entirely discarded").
func Execute(st *state.State, sender, to common.Address, value *uint256.Int, data, code []byte) Result {
	st.TouchAddress(sender)
	st.TouchAddress(to)

	log.Debug("engine: executing", "sender", sender, "to", to, "value", value, "create", to.IsZero())

	isCreate := to.IsZero()
	msg := vm.ExecutionMessage{
		Caller:      sender,
		Target:      to,
		CodeAddress: to,
		Value:       value,
		Data:        data,
		Code:        code,
		Depth:       0,
		IsStatic:    false,
		IsCreate:    isCreate,
	}

	cp := st.Checkpoint()

	var deployedTo common.Address
	if isCreate {
		// The sender's nonce increment happens inside cp, so a collision
		// below rolls it back together with every other change.
		nonce := st.Accounts.GetNonce(sender)
		st.Accounts.SetNonce(sender, nonce+1)
		deployedTo = crypto.CreateAddress(sender, nonce)
		msg.Target = deployedTo
		msg.CodeAddress = deployedTo
		st.TouchAddress(deployedTo)

		if st.Accounts.GetNonce(deployedTo) != 0 || len(st.Accounts.GetCode(deployedTo)) != 0 {
			st.Revert(cp)
			return Result{Success: false, Err: vm.ErrCreationCollision, Diff: buildDiff(st)}
		}
	}

	if isCreate {
		st.MarkCreated(deployedTo)
		if !value.IsZero() {
			st.Accounts.SubBalance(sender, value)
			st.Accounts.AddBalance(deployedTo, value)
		}
	} else if !value.IsZero() {
		st.Accounts.SubBalance(sender, value)
		st.Accounts.AddBalance(to, value)
	}

	comp := vm.NewComputation(st, msg)
	out, err := comp.Run()

	res := Result{Output: out, Err: err}
	if err != nil {
		log.Debug("engine: execution failed, reverting", "err", err)
		st.Revert(cp)
		res.Success = false
		res.Diff = buildDiff(st)
		return res
	}

	if isCreate {
		if err := finalizeCreatedCode(st, deployedTo, out); err != nil {
			log.Debug("engine: deployment rejected, reverting", "err", err)
			st.Revert(cp)
			res.Success = false
			res.Err = err
			res.Diff = buildDiff(st)
			return res
		}
		res.Output = deployedTo.Bytes()
	}

	st.Commit(cp)
	res.Success = true
	res.Logs = st.Logs()
	res.Diff = buildDiff(st)
	log.Debug("engine: execution succeeded", "logs", len(res.Logs))
	return res
}

const maxCodeSize = 24576

// finalizeCreatedCode applies EIP-3541/code-size validation and, on
// success, installs out as deployedTo's code. Mirrors vm.Computation's
// own child-CREATE path, duplicated here for the root-level creation
// spec.md §6's entry point handles directly (no parent frame exists to
// delegate to).
func finalizeCreatedCode(st *state.State, deployedTo common.Address, out []byte) error {
	if len(out) > maxCodeSize {
		return vm.ErrCodeTooLarge
	}
	if len(out) > 0 && out[0] == 0xEF {
		return vm.ErrInvalidCodeFirstByte
	}
	st.Accounts.SetCode(deployedTo, out)
	return nil
}

func buildDiff(st *state.State) StateDiff {
	diff := make(StateDiff)
	for _, addr := range st.TouchedAddresses() {
		diff[addr] = &AccountDiff{
			Address:  addr,
			Exists:   st.Accounts.AccountExists(addr),
			Balance:  st.Accounts.GetBalance(addr),
			Nonce:    st.Accounts.GetNonce(addr),
			CodeHash: st.Accounts.GetCodeHash(addr),
			Storage:  make(map[common.Hash]common.Hash),
		}
	}
	for _, pair := range st.TouchedSlots() {
		addrHash, slot := pair[0], pair[1]
		for addr, ad := range diff {
			if addr.Hash() == addrHash {
				ad.Storage[slot] = st.Accounts.GetStorage(addr, slot)
			}
		}
	}
	return diff
}
