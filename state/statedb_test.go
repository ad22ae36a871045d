package state

import (
	"testing"

	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/kvstore"
	"github.com/holiman/uint256"
)

func newTestState() *State {
	return New(kvstore.NewMemoryDB(), &BlockContext{})
}

var addrA = common.HexToAddress("0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")

func TestCheckpointCommit(t *testing.T) {
	st := newTestState()
	st.Accounts.SetBalance(addrA, uint256.NewInt(10))

	cp := st.Checkpoint()
	st.Accounts.SetBalance(addrA, uint256.NewInt(20))
	st.Commit(cp)

	if got := st.Accounts.GetBalance(addrA); got.Uint64() != 20 {
		t.Errorf("balance after commit = %d, want 20", got.Uint64())
	}
}

func TestCheckpointRevert(t *testing.T) {
	st := newTestState()
	st.Accounts.SetBalance(addrA, uint256.NewInt(10))

	cp := st.Checkpoint()
	st.Accounts.SetBalance(addrA, uint256.NewInt(20))
	st.Revert(cp)

	if got := st.Accounts.GetBalance(addrA); got.Uint64() != 10 {
		t.Errorf("balance after revert = %d, want 10 (unchanged)", got.Uint64())
	}
}

func TestRevertDropsLogs(t *testing.T) {
	st := newTestState()
	st.AddLog(Log{Address: addrA})

	cp := st.Checkpoint()
	st.AddLog(Log{Address: addrA})
	if len(st.Logs()) != 2 {
		t.Fatalf("len(Logs()) = %d, want 2 before revert", len(st.Logs()))
	}
	st.Revert(cp)

	if len(st.Logs()) != 1 {
		t.Errorf("len(Logs()) = %d, want 1 after revert", len(st.Logs()))
	}
}

// TestSstoreZeroDeletes checks that writing the zero value to a storage
// slot that held a nonzero value makes it read back as zero, per
// AccountDB.SetStorage's deletion convention.
func TestSstoreZeroDeletes(t *testing.T) {
	st := newTestState()
	slot := common.Hash{31: 1}

	st.Accounts.SetStorage(addrA, slot, common.Hash{31: 5})
	if got := st.Accounts.GetStorage(addrA, slot); got.IsZero() {
		t.Fatal("GetStorage after a nonzero write returned zero")
	}

	st.Accounts.SetStorage(addrA, slot, common.Hash{})
	if got := st.Accounts.GetStorage(addrA, slot); !got.IsZero() {
		t.Errorf("GetStorage after a zero write = %s, want zero", got.Hex())
	}
}

func TestCreatedThisTxTracking(t *testing.T) {
	st := newTestState()
	if st.WasCreatedThisTx(addrA) {
		t.Fatal("fresh state reports an untouched address as created")
	}
	st.MarkCreated(addrA)
	if !st.WasCreatedThisTx(addrA) {
		t.Error("MarkCreated did not take effect")
	}

	st.DiscardTx()
	if st.WasCreatedThisTx(addrA) {
		t.Error("DiscardTx should reset the created-this-tx set")
	}
}

func TestTouchedAddressesAndSlots(t *testing.T) {
	st := newTestState()
	slot := common.Hash{31: 9}

	st.TouchAddress(addrA)
	st.TouchSlot(addrA, slot)

	if !st.AddressTouched(addrA) {
		t.Error("AddressTouched(addrA) = false, want true")
	}
	if !st.SlotTouched(addrA, slot) {
		t.Error("SlotTouched(addrA, slot) = false, want true")
	}

	found := false
	for _, a := range st.TouchedAddresses() {
		if a == addrA {
			found = true
		}
	}
	if !found {
		t.Error("TouchedAddresses() does not include addrA")
	}
}

func TestDeleteAccountClearsStorage(t *testing.T) {
	st := newTestState()
	slot := common.Hash{31: 1}
	st.Accounts.SetBalance(addrA, uint256.NewInt(5))
	st.Accounts.SetStorage(addrA, slot, common.Hash{31: 7})

	st.Accounts.DeleteAccount(addrA)

	if st.Accounts.AccountExists(addrA) {
		t.Error("AccountExists(addrA) = true after DeleteAccount")
	}
	if got := st.Accounts.GetStorage(addrA, slot); !got.IsZero() {
		t.Errorf("GetStorage after DeleteAccount = %s, want zero", got.Hex())
	}
}
