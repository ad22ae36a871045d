package engine

import (
	"testing"

	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/crypto"
	"github.com/cancunvm/engine/kvstore"
	"github.com/cancunvm/engine/state"
	"github.com/cancunvm/engine/vm"
	"github.com/holiman/uint256"
)

func newTestState() *state.State {
	return state.New(kvstore.NewMemoryDB(), &state.BlockContext{})
}

var (
	sender = common.HexToAddress("0x1111111111111111111111111111111111111111")
	target = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func TestExecuteSimpleReturn(t *testing.T) {
	st := newTestState()
	// PUSH1 0x2a PUSH1 0x00 MSTORE8 PUSH1 0x01 PUSH1 0x00 RETURN -> returns [0x2a]
	code := []byte{
		byte(vm.PUSH1), 0x2a,
		byte(vm.PUSH1), 0x00,
		byte(vm.MSTORE8),
		byte(vm.PUSH1), 0x01,
		byte(vm.PUSH1), 0x00,
		byte(vm.RETURN),
	}
	st.Accounts.SetCode(target, code)

	res := Execute(st, sender, target, new(uint256.Int), nil, code)
	if !res.Success {
		t.Fatalf("Execute failed: %v", res.Err)
	}
	if len(res.Output) != 1 || res.Output[0] != 0x2a {
		t.Errorf("Output = %x, want [2a]", res.Output)
	}
}

func TestExecuteCreateDeploysCode(t *testing.T) {
	st := newTestState()
	// Runtime body is a single STOP byte; initcode returns it via MSTORE8+RETURN.
	initcode := []byte{
		byte(vm.PUSH1), byte(vm.STOP),
		byte(vm.PUSH1), 0x00,
		byte(vm.MSTORE8),
		byte(vm.PUSH1), 0x01,
		byte(vm.PUSH1), 0x00,
		byte(vm.RETURN),
	}

	res := Execute(st, sender, common.Address{}, new(uint256.Int), nil, initcode)
	if !res.Success {
		t.Fatalf("Execute (create) failed: %v", res.Err)
	}
	deployed := common.BytesToAddress(res.Output)

	code := st.Accounts.GetCode(deployed)
	if len(code) != 1 || code[0] != byte(vm.STOP) {
		t.Errorf("deployed code = %x, want [00]", code)
	}
	if got := st.Accounts.GetNonce(sender); got != 1 {
		t.Errorf("sender nonce after create = %d, want 1", got)
	}
}

func TestExecuteRevertDiscardsState(t *testing.T) {
	st := newTestState()
	st.Accounts.SetBalance(sender, uint256.NewInt(100))

	// SSTORE a nonzero value, then REVERT: the write must not survive.
	code := []byte{
		byte(vm.PUSH1), 0x05,
		byte(vm.PUSH1), 0x00,
		byte(vm.SSTORE),
		byte(vm.PUSH1), 0x00,
		byte(vm.PUSH1), 0x00,
		byte(vm.REVERT),
	}
	st.Accounts.SetCode(target, code)

	value := uint256.NewInt(10)
	res := Execute(st, sender, target, value, nil, code)
	if res.Success {
		t.Fatal("Execute succeeded, want failure from REVERT")
	}

	slot := common.Hash{}
	if got := st.Accounts.GetStorage(target, slot); !got.IsZero() {
		t.Errorf("storage after reverted SSTORE = %s, want zero", got.Hex())
	}
	if got := st.Accounts.GetBalance(sender); got.Uint64() != 100 {
		t.Errorf("sender balance after reverted call = %d, want unchanged 100", got.Uint64())
	}
	if got := st.Accounts.GetBalance(target); !got.IsZero() {
		t.Errorf("target balance after reverted call = %d, want 0", got.Uint64())
	}
}

func TestExecuteValueTransfer(t *testing.T) {
	st := newTestState()
	st.Accounts.SetBalance(sender, uint256.NewInt(100))
	st.Accounts.SetCode(target, []byte{byte(vm.STOP)})

	res := Execute(st, sender, target, uint256.NewInt(30), nil, []byte{byte(vm.STOP)})
	if !res.Success {
		t.Fatalf("Execute failed: %v", res.Err)
	}
	if got := st.Accounts.GetBalance(sender); got.Uint64() != 70 {
		t.Errorf("sender balance = %d, want 70", got.Uint64())
	}
	if got := st.Accounts.GetBalance(target); got.Uint64() != 30 {
		t.Errorf("target balance = %d, want 30", got.Uint64())
	}
}

func TestExecuteDiffIncludesTouchedStorage(t *testing.T) {
	st := newTestState()
	code := []byte{
		byte(vm.PUSH1), 0x07,
		byte(vm.PUSH1), 0x00,
		byte(vm.SSTORE),
		byte(vm.STOP),
	}
	st.Accounts.SetCode(target, code)

	res := Execute(st, sender, target, new(uint256.Int), nil, code)
	if !res.Success {
		t.Fatalf("Execute failed: %v", res.Err)
	}

	ad, ok := res.Diff[target]
	if !ok {
		t.Fatalf("Diff missing entry for target %s", target.Hex())
	}
	got, ok := ad.Storage[common.Hash{}]
	if !ok {
		t.Fatal("Diff's target storage missing the written slot")
	}
	if got.Bytes()[31] != 7 {
		t.Errorf("Diff storage slot = %x, want last byte 7", got.Bytes())
	}
}

func TestExecuteCreateCollision(t *testing.T) {
	st := newTestState()
	nonce := st.Accounts.GetNonce(sender)
	collided := crypto.CreateAddress(sender, nonce)
	st.Accounts.SetCode(collided, []byte{byte(vm.STOP)})

	res := Execute(st, sender, common.Address{}, new(uint256.Int), nil, []byte{byte(vm.STOP)})
	if res.Success {
		t.Fatal("Execute succeeded despite a pre-existing account at the derived address")
	}
	if res.Err != vm.ErrCreationCollision {
		t.Errorf("Err = %v, want ErrCreationCollision", res.Err)
	}
}
