package vm

import (
	"github.com/cancunvm/engine/common"
	"github.com/holiman/uint256"
)

// ExecutionMessage describes a single call or create request, per
// spec.md §3. Target equals CodeAddress for ordinary calls; DELEGATECALL
// and CALLCODE diverge them.
type ExecutionMessage struct {
	Caller      common.Address
	Target      common.Address
	CodeAddress common.Address
	Value       *uint256.Int
	Data        []byte
	Code        []byte
	Depth       int
	IsStatic    bool
	IsCreate    bool
}
