package vm

import "github.com/holiman/uint256"

// Block-context opcode bodies, ported from the teacher's
// core/vm/iinstructions.go and core/vm/eips.go. All read from
// c.state.Block, which the host fills in once per transaction.

// opBlockhash always returns the zero hash: this engine has no block
// history source (block-context acquisition is a host concern), so
// every BLOCKHASH query is treated as "not among the last 256 blocks".
func opBlockhash(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	c.stack.peek().Clear()
	return nil, nil, nil
}

func opCoinbase(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetBytes(c.state.Block.Coinbase.Bytes())
	return nil, nil, c.stack.push(&v)
}

func opTimestamp(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(c.state.Block.Timestamp)
	return nil, nil, c.stack.push(&v)
}

func opNumber(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(c.state.Block.Number)
	return nil, nil, c.stack.push(&v)
}

// opPrevRandao pushes PrevRandao (the DIFFICULTY opcode's Cancun
// meaning per EIP-4399; there is no real mining difficulty post-merge).
func opPrevRandao(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetBytes(c.state.Block.PrevRandao[:])
	return nil, nil, c.stack.push(&v)
}

func opGasLimit(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetUint64(c.state.Block.GasLimit)
	return nil, nil, c.stack.push(&v)
}

func opBaseFee(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetFromBig(c.state.Block.BaseFee)
	return nil, nil, c.stack.push(&v)
}

func opBlobHash(c *Computation) (*uint64, []byte, error) {
	if err := c.stack.require(1); err != nil {
		return nil, nil, err
	}
	index := c.stack.peek()
	if index.LtUint64(uint64(len(c.state.Block.BlobHashes))) {
		h := c.state.Block.BlobHashes[index.Uint64()]
		index.SetBytes(h[:])
	} else {
		index.Clear()
	}
	return nil, nil, nil
}

func opBlobBaseFee(c *Computation) (*uint64, []byte, error) {
	var v uint256.Int
	v.SetFromBig(c.state.Block.BlobBaseFee)
	return nil, nil, c.stack.push(&v)
}

// opGas returns the unmetered deterministic sentinel spec.md §9
// suggests: the block gas limit minus a flat intrinsic-cost allowance,
// clamped to zero. Gas is not otherwise tracked anywhere in this engine.
func opGas(c *Computation) (*uint64, []byte, error) {
	const intrinsic = 21000
	limit := c.state.Block.GasLimit
	var remaining uint64
	if limit > intrinsic {
		remaining = limit - intrinsic
	}
	var v uint256.Int
	v.SetUint64(remaining)
	return nil, nil, c.stack.push(&v)
}
