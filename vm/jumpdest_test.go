package vm

import "testing"

func TestValidJumpDest(t *testing.T) {
	// PUSH2 0x5b5b JUMPDEST STOP
	// The two 0x5b bytes right after PUSH2 look like JUMPDEST opcodes but
	// are really push data, and must not validate as jump targets.
	code := []byte{byte(PUSH2), 0x5b, 0x5b, byte(JUMPDEST), byte(STOP)}
	hash := codeHashOf(code)

	if validJumpDest(hash, code, 1) {
		t.Errorf("offset 1 (push data) validated as a jump destination")
	}
	if validJumpDest(hash, code, 2) {
		t.Errorf("offset 2 (push data) validated as a jump destination")
	}
	if !validJumpDest(hash, code, 3) {
		t.Errorf("offset 3 (real JUMPDEST) did not validate")
	}
	if validJumpDest(hash, code, 4) {
		t.Errorf("offset 4 (STOP, not JUMPDEST) validated as a jump destination")
	}
	if validJumpDest(hash, code, 100) {
		t.Errorf("out-of-range offset validated as a jump destination")
	}
}

func TestAnalysisIsCached(t *testing.T) {
	code := []byte{byte(JUMPDEST), byte(STOP)}
	hash := codeHashOf(code)

	first := analysis(hash, code)
	second := analysis(hash, code)
	if &first[0] != &second[0] {
		t.Error("analysis did not return the cached bitvec on the second call")
	}
}
