// Package precompiles implements the native contracts callable at
// addresses 0x01-0x0a, ported from the teacher's core/vm/contracts.go
// family and filled in against the EIP each address corresponds to.
// RequiredGas is a Non-goal (gas metering in general is out of scope),
// so only Run survives from the teacher's PrecompiledContract interface.
package precompiles

import "github.com/cancunvm/engine/common"

// padRight pads data with zeroes on the right to at least minLen bytes,
// returning data unmodified if it is already long enough.
func padRight(data []byte, minLen int) []byte {
	if len(data) >= minLen {
		return data
	}
	out := make([]byte, minLen)
	copy(out, data)
	return out
}

// getDataSlice reads length bytes starting at offset from data,
// zero-padding past data's end, the way every length-prefixed
// precompile input (MODEXP's base/exp/mod, in particular) is read.
func getDataSlice(data []byte, offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	out := make([]byte, length)
	if offset >= uint64(len(data)) {
		return out
	}
	end := offset + length
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}
	copy(out, data[offset:end])
	return out
}

// leftPad32 returns b left-padded with zeroes to a 32-byte word.
func leftPad32(b []byte) []byte {
	out := make([]byte, 32)
	copy(out[32-len(b):], b)
	return out
}

// addresses of the ten precompiles this engine implements.
var (
	ecrecoverAddr   = common.BytesToAddress([]byte{0x01})
	sha256Addr      = common.BytesToAddress([]byte{0x02})
	ripemd160Addr   = common.BytesToAddress([]byte{0x03})
	identityAddr    = common.BytesToAddress([]byte{0x04})
	modexpAddr      = common.BytesToAddress([]byte{0x05})
	bn256AddAddr    = common.BytesToAddress([]byte{0x06})
	bn256MulAddr    = common.BytesToAddress([]byte{0x07})
	bn256PairAddr   = common.BytesToAddress([]byte{0x08})
	blake2FAddr     = common.BytesToAddress([]byte{0x09})
	kzgEvalAddr     = common.BytesToAddress([]byte{0x0a})
)

// IsPrecompile reports whether addr names one of the ten native
// contracts this engine ships.
func IsPrecompile(addr common.Address) bool {
	switch addr {
	case ecrecoverAddr, sha256Addr, ripemd160Addr, identityAddr, modexpAddr,
		bn256AddAddr, bn256MulAddr, bn256PairAddr, blake2FAddr, kzgEvalAddr:
		return true
	}
	return false
}

// Run dispatches to the precompile at addr. Callers only reach here
// after IsPrecompile has confirmed addr names one.
func Run(addr common.Address, input []byte) ([]byte, error) {
	switch addr {
	case ecrecoverAddr:
		return runEcrecover(input)
	case sha256Addr:
		return runSha256(input)
	case ripemd160Addr:
		return runRipemd160(input)
	case identityAddr:
		return runIdentity(input)
	case modexpAddr:
		return runModexp(input)
	case bn256AddAddr:
		return runBn256Add(input)
	case bn256MulAddr:
		return runBn256ScalarMul(input)
	case bn256PairAddr:
		return runBn256Pairing(input)
	case blake2FAddr:
		return runBlake2F(input)
	case kzgEvalAddr:
		return runKZGPointEvaluation(input)
	}
	return nil, ErrUnknownPrecompile
}
