package vm

import (
	"bytes"
	"testing"

	"github.com/cancunvm/engine/common"
	"github.com/cancunvm/engine/kvstore"
	"github.com/cancunvm/engine/state"
	"github.com/holiman/uint256"
)

func newTestState() *state.State {
	return state.New(kvstore.NewMemoryDB(), &state.BlockContext{})
}

func push1(v byte) []byte { return []byte{byte(PUSH1), v} }

var (
	testSender = common.HexToAddress("0x1111111111111111111111111111111111111111")
	testTarget = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func runCode(t *testing.T, st *state.State, code []byte, isStatic bool) ([]byte, error) {
	t.Helper()
	msg := ExecutionMessage{
		Caller:   testSender,
		Target:   testTarget,
		Value:    new(uint256.Int),
		Code:     code,
		IsStatic: isStatic,
	}
	return NewComputation(st, msg).Run()
}

// TestAddmodAndReturn runs ADDMOD (10+10) mod 8 == 4 through the decode
// loop, via PUSH1/MSTORE/RETURN, end to end.
func TestAddmodAndReturn(t *testing.T) {
	code := []byte{}
	code = append(code, push1(8)...)  // N
	code = append(code, push1(10)...) // b
	code = append(code, push1(10)...) // a
	code = append(code, byte(ADDMOD))
	code = append(code, push1(0)...)
	code = append(code, byte(MSTORE))
	code = append(code, push1(32)...)
	code = append(code, push1(0)...)
	code = append(code, byte(RETURN))

	out, err := runCode(t, newTestState(), code, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 32 || out[31] != 4 {
		t.Errorf("ADDMOD(10,10,8) result = %x, want ...04", out)
	}
}

// TestJumpiTaken builds PUSH1 1, PUSH1 dest, JUMPI, INVALID, JUMPDEST,
// PUSH1 1, PUSH1 0, MSTORE, PUSH1 32, PUSH1 0, RETURN. dest points past
// the INVALID opcode, so a truthy condition must skip straight over it.
func TestJumpiTaken(t *testing.T) {
	const dest = 6 // len(PUSH1 cond) + len(PUSH1 dest) + len(JUMPI) + len(INVALID)
	code := append(push1(1), push1(dest)...)
	code = append(code, byte(JUMPI), byte(INVALID))
	code = append(code, byte(JUMPDEST))
	code = append(code, push1(1)...)
	code = append(code, push1(0)...)
	code = append(code, byte(MSTORE))
	code = append(code, push1(32)...)
	code = append(code, push1(0)...)
	code = append(code, byte(RETURN))

	out, err := runCode(t, newTestState(), code, false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(out) != 32 || out[31] != 1 {
		t.Errorf("jump-taken output = %x, want ...01", out)
	}
}

// TestJumpiNotTaken reuses the same layout with a falsy condition: the
// frame should fall through into INVALID instead of jumping.
func TestJumpiNotTaken(t *testing.T) {
	const dest = 6
	code := append(push1(0), push1(dest)...)
	code = append(code, byte(JUMPI), byte(INVALID))
	code = append(code, byte(JUMPDEST))
	code = append(code, push1(1)...)

	_, err := runCode(t, newTestState(), code, false)
	if err != ErrInvalidInstruction {
		t.Errorf("Run with falsy JUMPI condition = %v, want ErrInvalidInstruction", err)
	}
}

func TestJumpToInvalidDestination(t *testing.T) {
	// PUSH1 0xff JUMP -- 0xff is out of bounds.
	code := append(push1(0xff), byte(JUMP))
	_, err := runCode(t, newTestState(), code, false)
	if err != ErrInvalidJumpDestination {
		t.Errorf("jump past code end = %v, want ErrInvalidJumpDestination", err)
	}
}

// TestRevertPropagation checks that REVERT halts the frame with
// ErrExecutionReverted and surfaces the revert payload as output.
func TestRevertPropagation(t *testing.T) {
	// PUSH1 0xAA PUSH1 0 MSTORE8 PUSH1 1 PUSH1 0 REVERT
	code := append(push1(0xAA), push1(0)...)
	code = append(code, byte(MSTORE8))
	code = append(code, push1(1)...)
	code = append(code, push1(0)...)
	code = append(code, byte(REVERT))

	out, err := runCode(t, newTestState(), code, false)
	if err != ErrExecutionReverted {
		t.Fatalf("Run: err = %v, want ErrExecutionReverted", err)
	}
	if !bytes.Equal(out, []byte{0xAA}) {
		t.Errorf("revert payload = %x, want aa", out)
	}
}

// TestStaticViolation checks that SSTORE inside a static frame is
// rejected before any state change happens, and that the same bytecode
// succeeds outside a static frame.
func TestStaticViolation(t *testing.T) {
	// PUSH1 1 PUSH1 0 SSTORE (store 1 at slot 0)
	code := append(push1(1), push1(0)...)
	code = append(code, byte(SSTORE))

	st := newTestState()
	if _, err := runCode(t, st, code, true); err != ErrStaticStateChange {
		t.Errorf("SSTORE under static = %v, want ErrStaticStateChange", err)
	}
	if got := st.Accounts.GetStorage(testTarget, common.Hash{}); !got.IsZero() {
		t.Errorf("static SSTORE must not have written anything, got %s", got.Hex())
	}

	if _, err := runCode(t, st, code, false); err != nil {
		t.Fatalf("SSTORE outside static: %v", err)
	}
	want := common.BytesToHash([]byte{1})
	if got := st.Accounts.GetStorage(testTarget, common.Hash{}); got != want {
		t.Errorf("SSTORE outside static wrote %s, want %s", got.Hex(), want.Hex())
	}
}

// TestCreate2Deterministic checks that CREATE2's address depends only
// on sender, salt, and init code -- not on any mutable state -- by
// deriving it twice from independent states and expecting equality.
func TestCreate2Deterministic(t *testing.T) {
	// Deploys a single STOP byte as runtime code, so the created account
	// ends up with non-empty code (an empty RETURN would leave it with
	// no code at all, which GetCode can't distinguish from "nonexistent").
	initcode := append(push1(0x00), push1(0x00)...)
	initcode = append(initcode, byte(MSTORE8))
	initcode = append(initcode, push1(0x01)...)
	initcode = append(initcode, push1(0x00)...)
	initcode = append(initcode, byte(RETURN))
	salt := uint256.NewInt(42)

	msg := ExecutionMessage{Caller: testSender, Target: testSender, Value: new(uint256.Int), Depth: 0}

	st1 := newTestState()
	c1 := NewComputation(st1, msg)
	ok1, addr1, _ := c1.create(new(uint256.Int), initcode, salt)

	st2 := newTestState()
	c2 := NewComputation(st2, msg)
	ok2, addr2, _ := c2.create(new(uint256.Int), initcode, salt)

	if !ok1 || !ok2 {
		t.Fatalf("create failed: ok1=%v ok2=%v", ok1, ok2)
	}
	if addr1 != addr2 {
		t.Errorf("CREATE2 addresses differ across independent states: %s vs %s", addr1.Hex(), addr2.Hex())
	}
}

// TestCreate2Collision checks that deploying to the same (sender, salt,
// initcode) twice in the same state fails the second time.
func TestCreate2Collision(t *testing.T) {
	// Deploys a single STOP byte as runtime code, so the created account
	// ends up with non-empty code (an empty RETURN would leave it with
	// no code at all, which GetCode can't distinguish from "nonexistent").
	initcode := append(push1(0x00), push1(0x00)...)
	initcode = append(initcode, byte(MSTORE8))
	initcode = append(initcode, push1(0x01)...)
	initcode = append(initcode, push1(0x00)...)
	initcode = append(initcode, byte(RETURN))
	salt := uint256.NewInt(7)
	msg := ExecutionMessage{Caller: testSender, Target: testSender, Value: new(uint256.Int), Depth: 0}

	st := newTestState()
	c := NewComputation(st, msg)

	ok, addr, _ := c.create(new(uint256.Int), initcode, salt)
	if !ok {
		t.Fatal("first CREATE2 should succeed")
	}
	if len(st.Accounts.GetCode(addr)) == 0 {
		t.Fatal("first CREATE2 did not install any code")
	}

	ok2, _, _ := c.create(new(uint256.Int), initcode, salt)
	if ok2 {
		t.Error("second CREATE2 with the same sender/salt/initcode should collide")
	}
}
