package precompiles

import "errors"

// ErrUnknownPrecompile is only reachable if a caller invokes Run
// without first checking IsPrecompile.
var ErrUnknownPrecompile = errors.New("precompiles: not a precompiled contract address")
