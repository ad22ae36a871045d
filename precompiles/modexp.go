package precompiles

import (
	"errors"
	"math/big"
)

// runModexp implements the MODEXP precompile (address 0x05, EIP-198):
// input is [baseLen(32) || expLen(32) || modLen(32) || base || exp || mod],
// output is base**exp mod mod, left-padded to modLen bytes. A zero
// modulus yields a modLen-byte zero result rather than an error.
func runModexp(input []byte) ([]byte, error) {
	input = padRight(input, 96)

	baseLen := new(big.Int).SetBytes(input[0:32])
	expLen := new(big.Int).SetBytes(input[32:64])
	modLen := new(big.Int).SetBytes(input[64:96])

	if baseLen.BitLen() > 32 || expLen.BitLen() > 32 || modLen.BitLen() > 32 {
		return nil, errors.New("modexp: length operand overflow")
	}
	bLen, eLen, mLen := baseLen.Uint64(), expLen.Uint64(), modLen.Uint64()

	data := input[96:]
	base := getDataSlice(data, 0, bLen)
	exp := getDataSlice(data, bLen, eLen)
	mod := getDataSlice(data, bLen+eLen, mLen)

	modVal := new(big.Int).SetBytes(mod)
	if modVal.Sign() == 0 {
		return make([]byte, mLen), nil
	}

	result := new(big.Int).Exp(new(big.Int).SetBytes(base), new(big.Int).SetBytes(exp), modVal)
	out := result.Bytes()
	if uint64(len(out)) >= mLen {
		return out[uint64(len(out))-mLen:], nil
	}
	padded := make([]byte, mLen)
	copy(padded[mLen-uint64(len(out)):], out)
	return padded, nil
}
